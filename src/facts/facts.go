// Package facts contains the raw facts a build graph snapshot is made from, and the ways of getting them:
// reading a JSON summary written by a build tool query, or scanning the BUILD files of a workspace.
package facts

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/op/go-logging.v1"

	"github.com/JetBrains/android-sub097/src/buildgraph"
	"github.com/JetBrains/android-sub097/src/core"
)

var log = logging.MustGetLogger("facts")

// A Target is the raw description of one rule.
type Target struct {
	Label   core.Label
	Kind    string
	Sources []core.Label
	Deps    []core.Label
	Tags    []string
}

// A Summary is everything known about a workspace: the rules in it and the files that
// belong to each package. A file's package is its owner.
type Summary struct {
	SourceFiles []core.Label
	Targets     []*Target
}

// Sort sorts the summary's contents by label.
func (s *Summary) Sort() {
	slices.SortFunc(s.SourceFiles, core.Label.Compare)
	s.SourceFiles = slices.Compact(s.SourceFiles)
	slices.SortStableFunc(s.Targets, func(a, b *Target) int { return a.Label.Compare(b.Label) })
}

// Validate checks the summary for problems that would make the graph built from it meaningless.
// All problems found are returned together.
func (s *Summary) Validate() error {
	var errs *multierror.Error
	seen := make(map[core.Label]struct{}, len(s.Targets))
	for _, t := range s.Targets {
		if _, present := seen[t.Label]; present {
			errs = multierror.Append(errs, fmt.Errorf("duplicate target %s", t.Label))
		}
		seen[t.Label] = struct{}{}
		if t.Kind == "" {
			errs = multierror.Append(errs, fmt.Errorf("target %s has no kind", t.Label))
		}
		if t.Label.IsPattern() {
			errs = multierror.Append(errs, fmt.Errorf("target %s is a pattern, not a label", t.Label))
		}
	}
	return errs.ErrorOrNil()
}

// Apply feeds the summary into a build graph builder.
func Apply(s *Summary, b *buildgraph.Builder) {
	for _, f := range s.SourceFiles {
		b.AddSourceFile(f)
	}
	for _, t := range s.Targets {
		b.AddRule(t.Label, t.Kind, t.Sources, t.Deps, t.Tags)
	}
	log.Debug("Applied %d source files and %d targets", len(s.SourceFiles), len(s.Targets))
}

// FromGraph recovers a summary from a snapshot. Applying it to a new builder with the same
// configuration gives an equivalent snapshot.
func FromGraph(d *buildgraph.BuildGraphData) *Summary {
	s := &Summary{SourceFiles: d.Storage().AllSourceFiles()}
	for _, t := range d.Storage().Targets() {
		s.Targets = append(s.Targets, &Target{
			Label:   t.Label,
			Kind:    t.Kind,
			Sources: t.Sources,
			Deps:    t.Deps,
			Tags:    t.Tags,
		})
	}
	return s
}
