// Package query implements the qsync query commands. Each one prints its results to the
// given writer, one per line and sorted, so they can be piped into other commands.
package query

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/op/go-logging.v1"

	"github.com/JetBrains/android-sub097/src/buildgraph"
	"github.com/JetBrains/android-sub097/src/cli"
	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/graph"
)

var log = logging.MustGetLogger("query")

// maxSuggestionDistance is how different a label can be from an unknown one to be suggested instead.
const maxSuggestionDistance = 4

// ResolveTargets parses the given labels and checks the graph knows about them.
// Patterns (//java/... or //java/com/foo:all) expand to every target they match; it's an error
// for a pattern to match nothing. Unknown labels are reported with suggestions where there are any.
// The result is sorted and has no duplicates.
func ResolveTargets(d *buildgraph.BuildGraphData, args []string) ([]core.Label, error) {
	ret := graph.Set[core.Label]{}
	var errs *multierror.Error
	var known []string
	for _, arg := range args {
		label, err := core.TryParseLabel(arg, "")
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		} else if label.IsPattern() {
			set := core.NewPatternSet(label)
			matched := false
			for _, l := range d.Storage().TargetLabels() {
				if set.Match(l) {
					ret.Add(l)
					matched = true
				}
			}
			if !matched {
				errs = multierror.Append(errs, fmt.Errorf("%s doesn't match any targets", label))
			}
			continue
		} else if d.Target(label) == nil {
			if known == nil {
				known = core.Labels(d.Storage().TargetLabels()).Strings()
			}
			errs = multierror.Append(errs, fmt.Errorf("unknown target %s%s", label, cli.PrettyPrintSuggestion(label.String(), known, maxSuggestionDistance)))
			continue
		}
		ret.Add(label)
	}
	return ret.SortedItems(core.Label.Compare), errs.ErrorOrNil()
}

func printLabels(w io.Writer, labels []core.Label) {
	for _, l := range labels {
		fmt.Fprintln(w, l)
	}
}

func printSet(w io.Writer, labels graph.Set[core.Label]) {
	printLabels(w, labels.SortedItems(core.Label.Compare))
}
