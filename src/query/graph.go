package query

import (
	"io"

	"github.com/JetBrains/android-sub097/src/buildgraph"
	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/facts"
	"github.com/JetBrains/android-sub097/src/graph"
)

// Graph prints the graph as JSON in the same format it's loaded from.
// If targets are given only they and their source files are included.
func Graph(w io.Writer, d *buildgraph.BuildGraphData, targets []core.Label) error {
	s := facts.FromGraph(d)
	if len(targets) > 0 {
		want := graph.NewSet(targets...)
		srcs := graph.Set[core.Label]{}
		filtered := s.Targets[:0]
		for _, t := range s.Targets {
			if want.Contains(t.Label) {
				filtered = append(filtered, t)
				srcs.AddAll(graph.NewSet(t.Sources...))
			}
		}
		s.Targets = filtered
		s.SourceFiles = srcs.SortedItems(core.Label.Compare)
	}
	return facts.WriteJSON(w, s)
}
