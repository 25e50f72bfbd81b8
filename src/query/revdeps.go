package query

import (
	"fmt"
	"io"

	"github.com/JetBrains/android-sub097/src/buildgraph"
	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/graph"
)

// FirstRevDeps prints the nearest targets of the given kinds that depend on the owners of each file.
func FirstRevDeps(w io.Writer, d *buildgraph.BuildGraphData, files []string, kinds []string) {
	ret := graph.Set[core.Label]{}
	for _, f := range files {
		ret.AddAll(d.FirstReverseDepsOfType(f, kinds))
	}
	printSet(w, ret)
}

// PathContains prints true if a dependency path from the owners of one file to the owners of another
// passes through a target of one of the given kinds, and false otherwise. It returns the same.
func PathContains(w io.Writer, d *buildgraph.BuildGraphData, from, to string, kinds []string) bool {
	contains := d.DoesDependencyPathContainRules(from, to, kinds)
	fmt.Fprintln(w, contains)
	return contains
}

// SameLanguage prints the given targets and everything depending on them through targets of the same language.
func SameLanguage(w io.Writer, d *buildgraph.BuildGraphData, targets []core.Label) {
	printSet(w, d.SameLanguageTargetsDependingOn(targets))
}

// Cycle prints a dependency cycle in the graph, if there is one, and returns true if it found one.
func Cycle(w io.Writer, d *buildgraph.BuildGraphData) bool {
	cycle := graph.FindCycle(d.Graph(), core.Label.Compare)
	printLabels(w, cycle)
	return cycle != nil
}
