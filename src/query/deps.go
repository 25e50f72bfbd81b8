package query

import (
	"io"

	"github.com/JetBrains/android-sub097/src/buildgraph"
	"github.com/JetBrains/android-sub097/src/cli"
	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/graph"
)

// ExternalDeps prints the external dependencies of the given targets.
func ExternalDeps(w io.Writer, d *buildgraph.BuildGraphData, targets []core.Label) {
	printSet(w, d.ExternalDependencies(targets))
}

// FileDeps prints the external dependencies of the targets owning the given files.
func FileDeps(w io.Writer, d *buildgraph.BuildGraphData, files []string) {
	deps := graph.Set[core.Label]{}
	for _, f := range files {
		deps.AddAll(d.FileDependencies(f))
	}
	printSet(w, deps)
}

// Redundant prints the subset of the given targets that builds all of them.
func Redundant(w io.Writer, d *buildgraph.BuildGraphData, targets []core.Label) {
	printSet(w, d.FilterRedundantTargets(graph.NewSet(targets...)))
}

// Requested prints what to build for the given targets, followed by the external dependencies
// that build is expected to produce.
func Requested(w io.Writer, d *buildgraph.BuildGraphData, targets []core.Label) {
	r := d.ComputeRequestedTargets(graph.NewSet(targets...))
	cli.Fprintf(w, "${BOLD_WHITE}# Build targets${RESET}\n")
	printSet(w, r.BuildTargets)
	cli.Fprintf(w, "${BOLD_WHITE}# Expected dependencies${RESET}\n")
	printSet(w, r.ExpectedDependencyTargets)
}

// Pending prints the external dependencies of the given targets that are not yet built, along with
// any of the targets themselves that need building. built is the set of labels already built.
func Pending(w io.Writer, d *buildgraph.BuildGraphData, targets, built []core.Label) {
	p := d.PendingExternalDeps(graph.NewSet(built...))
	for _, t := range targets {
		log.Debug("%s tracks %s", t, d.TrackingBehaviors(t))
	}
	printSet(w, p.GetAll(targets...))
}
