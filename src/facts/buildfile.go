package facts

import (
	"fmt"

	"github.com/bazelbuild/buildtools/build"
	"github.com/hashicorp/go-multierror"

	"github.com/JetBrains/android-sub097/src/core"
)

// Attributes whose values are dependency labels.
var depAttributes = []string{"deps", "exports", "runtime_deps"}

// Attributes whose values are a single source file.
var singleSourceAttributes = []string{"manifest"}

// ParseBuildFile parses the contents of a BUILD file in the given package and returns the targets in it.
// Only literal attribute values are understood; globs, selects and the like are ignored, as are
// calls without a name (e.g. load statements and package-level functions).
// In srcs, plain file names are sources and labels are dependencies.
func ParseBuildFile(pkg, filename string, data []byte) ([]*Target, error) {
	f, err := build.ParseBuild(filename, data)
	if err != nil {
		return nil, err
	}
	var errs *multierror.Error
	var targets []*Target
	for _, rule := range f.Rules("") {
		name := rule.Name()
		if name == "" {
			continue
		}
		label, err := core.TryNewLabel("", pkg, name)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", filename, err))
			continue
		}
		t := &Target{
			Label: label,
			Kind:  rule.Kind(),
			Tags:  rule.AttrStrings("tags"),
		}
		addSource := func(s string) {
			if l, err := resolve(s, "", pkg); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %s: %w", filename, label, err))
			} else if core.LooksLikeALabel(s) {
				t.Deps = append(t.Deps, l)
			} else {
				t.Sources = append(t.Sources, l)
			}
		}
		for _, src := range rule.AttrStrings("srcs") {
			addSource(src)
		}
		for _, attr := range singleSourceAttributes {
			if src := rule.AttrString(attr); src != "" {
				addSource(src)
			}
		}
		for _, attr := range depAttributes {
			for _, dep := range rule.AttrStrings(attr) {
				if l, err := resolve(dep, "", pkg); err != nil {
					errs = multierror.Append(errs, fmt.Errorf("%s: %s: %w", filename, label, err))
				} else {
					t.Deps = append(t.Deps, l)
				}
			}
		}
		targets = append(targets, t)
	}
	return targets, errs.ErrorOrNil()
}
