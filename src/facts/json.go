package facts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/JetBrains/android-sub097/src/core"
)

// JSONSummary is the serialised form of a Summary. It's keyed by package, and within that by target
// name, which keeps it compact and easy to produce from a build tool query.
// Packages in other workspaces are keyed as @workspace//package.
type JSONSummary struct {
	Packages map[string]*JSONPackage `json:"packages"`
}

// JSONPackage is the serialised form of a package.
type JSONPackage struct {
	Files   []string               `json:"files,omitempty" note:"files belonging to this package, relative to it"`
	Targets map[string]*JSONTarget `json:"targets,omitempty"`
}

// JSONTarget is the serialised form of a target. Sources and dependencies may be relative to
// the package (Foo.java, :foo) or absolute labels.
type JSONTarget struct {
	Kind    string   `json:"kind"`
	Sources []string `json:"srcs,omitempty" note:"corresponds to srcs in rule declaration"`
	Deps    []string `json:"deps,omitempty" note:"corresponds to deps in rule declaration"`
	Tags    []string `json:"tags,omitempty" note:"corresponds to tags in rule declaration"`
}

// LoadJSON reads a summary from the given file.
func LoadJSON(filename string) (*Summary, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return s, nil
}

// ReadJSON reads a summary from JSON.
func ReadJSON(r io.Reader) (*Summary, error) {
	js := JSONSummary{}
	if err := json.NewDecoder(r).Decode(&js); err != nil {
		return nil, err
	}
	s := &Summary{}
	var errs *multierror.Error
	for key, pkg := range js.Packages {
		if pkg == nil {
			continue
		}
		workspace, pkgName, err := parsePackageKey(key)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		for _, f := range pkg.Files {
			label, err := resolve(f, workspace, pkgName)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			s.SourceFiles = append(s.SourceFiles, label)
		}
		for name, jt := range pkg.Targets {
			if jt == nil {
				continue
			}
			label, err := core.TryNewLabel(workspace, pkgName, name)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			t := &Target{Label: label, Kind: jt.Kind, Tags: jt.Tags}
			t.Sources, err = resolveAll(jt.Sources, workspace, pkgName)
			errs = multierror.Append(errs, err)
			t.Deps, err = resolveAll(jt.Deps, workspace, pkgName)
			errs = multierror.Append(errs, err)
			s.Targets = append(s.Targets, t)
		}
	}
	s.Sort()
	return s, errs.ErrorOrNil()
}

// WriteJSON writes a summary as JSON.
func WriteJSON(w io.Writer, s *Summary) error {
	js := JSONSummary{Packages: map[string]*JSONPackage{}}
	getPackage := func(label core.Label) *JSONPackage {
		key := packageKey(label)
		pkg, present := js.Packages[key]
		if !present {
			pkg = &JSONPackage{}
			js.Packages[key] = pkg
		}
		return pkg
	}
	for _, f := range s.SourceFiles {
		pkg := getPackage(f)
		pkg.Files = append(pkg.Files, f.Name)
	}
	for _, t := range s.Targets {
		pkg := getPackage(t.Label)
		if pkg.Targets == nil {
			pkg.Targets = map[string]*JSONTarget{}
		}
		jt := &JSONTarget{Kind: t.Kind, Tags: t.Tags}
		for _, src := range t.Sources {
			if sameWorkspaceAndPackage(src, t.Label) {
				jt.Sources = append(jt.Sources, src.Name)
			} else {
				jt.Sources = append(jt.Sources, labelFrom(src, t.Label))
			}
		}
		for _, dep := range t.Deps {
			if sameWorkspaceAndPackage(dep, t.Label) {
				jt.Deps = append(jt.Deps, ":"+dep.Name)
			} else {
				jt.Deps = append(jt.Deps, labelFrom(dep, t.Label))
			}
		}
		pkg.Targets[t.Label.Name] = jt
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	return encoder.Encode(js)
}

// labelFrom returns the string form of label as written from inside owner's package.
// Main workspace labels need an explicit @ when written from an external repo.
func labelFrom(label, owner core.Label) string {
	if label.Workspace == "" && owner.Workspace != "" {
		return "@" + label.String()
	}
	return label.String()
}

func sameWorkspaceAndPackage(a, b core.Label) bool {
	return a.Workspace == b.Workspace && a.Package == b.Package
}

func packageKey(label core.Label) string {
	if label.Workspace == "" {
		return label.Package
	}
	return "@" + label.Workspace + "//" + label.Package
}

func parsePackageKey(key string) (string, string, error) {
	if !strings.HasPrefix(key, "@") {
		return "", key, nil
	}
	idx := strings.Index(key, "//")
	if idx == -1 {
		return "", "", fmt.Errorf("invalid package %s", key)
	}
	return key[1:idx], key[idx+2:], nil
}

// resolve turns a source or dependency string into a label relative to the given package.
func resolve(s, workspace, pkg string) (core.Label, error) {
	if !core.LooksLikeALabel(s) {
		return core.TryNewLabel(workspace, pkg, s)
	}
	label, err := core.TryParseLabel(s, pkg)
	if err != nil {
		return label, err
	}
	// Without an explicit @repo, labels refer to the repo of the package they appear in.
	if !strings.HasPrefix(s, "@") {
		label.Workspace = workspace
	}
	return label, nil
}

func resolveAll(strs []string, workspace, pkg string) ([]core.Label, error) {
	var errs *multierror.Error
	ret := make([]core.Label, 0, len(strs))
	for _, s := range strs {
		label, err := resolve(s, workspace, pkg)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		ret = append(ret, label)
	}
	return ret, errs.ErrorOrNil()
}
