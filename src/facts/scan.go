package facts

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/fs"
)

// ScanWorkspace finds and parses every BUILD file beneath root and returns a summary of the workspace.
// Every BUILD file is recorded as a source file of its package, as is every file named in a srcs attribute.
// Hidden directories and bazel-* output directories are skipped. If a directory has more than one
// BUILD file, the one whose name comes first in buildFileNames is used.
// Errors in individual BUILD files don't stop the scan; they are all returned together alongside
// whatever could be parsed.
func ScanWorkspace(root string, buildFileNames []string) (*Summary, error) {
	buildFiles := map[string]string{} // package -> file name
	if err := fs.Walk(root, func(name string, isDir bool) error {
		base := filepath.Base(name)
		if isDir {
			if name != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "bazel-")) {
				return fs.SkipDir
			}
			return nil
		}
		idx := slices.Index(buildFileNames, base)
		if idx == -1 {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(name))
		if err != nil {
			return err
		}
		pkg := filepath.ToSlash(rel)
		if pkg == "." {
			pkg = ""
		}
		if existing, present := buildFiles[pkg]; !present || idx < slices.Index(buildFileNames, existing) {
			buildFiles[pkg] = base
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	pkgs := make([]string, 0, len(buildFiles))
	for pkg := range buildFiles {
		pkgs = append(pkgs, pkg)
	}
	slices.Sort(pkgs)
	results := make([][]*Target, len(pkgs))
	errs := make([]error, len(pkgs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, pkg := range pkgs {
		i, pkg := i, pkg
		g.Go(func() error {
			filename := path.Join(pkg, buildFiles[pkg])
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(filename)))
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i], errs[i] = ParseBuildFile(pkg, filename, data)
			return nil
		})
	}
	g.Wait()

	s := &Summary{}
	var merr *multierror.Error
	for i, pkg := range pkgs {
		merr = multierror.Append(merr, errs[i])
		s.SourceFiles = append(s.SourceFiles, core.Label{Package: pkg, Name: buildFiles[pkg]})
		for _, t := range results[i] {
			s.Targets = append(s.Targets, t)
			s.SourceFiles = append(s.SourceFiles, t.Sources...)
		}
	}
	s.Sort()
	log.Info("Scanned %d BUILD files under %s, found %d targets", len(pkgs), root, len(s.Targets))
	return s, merr.ErrorOrNil()
}
