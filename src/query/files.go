package query

import (
	"fmt"
	"io"

	"github.com/JetBrains/android-sub097/src/buildgraph"
	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/graph"
)

// Labels prints the label of each of the given files. Files the graph doesn't know about are
// given the label they'd have in their nearest package.
func Labels(w io.Writer, d *buildgraph.BuildGraphData, files []string) {
	for _, f := range files {
		if label, present := d.SourceFileToLabel(f); present {
			fmt.Fprintln(w, label)
		} else {
			log.Debug("%s is not a known source file", f)
			fmt.Fprintln(w, d.PathToLabel(f))
		}
	}
}

// Owners prints the targets that declare any of the given files as sources.
func Owners(w io.Writer, d *buildgraph.BuildGraphData, files []string) {
	owners := graph.Set[core.Label]{}
	for _, f := range files {
		o := d.TargetOwners(f)
		if o.Len() == 0 {
			log.Warning("No targets own %s", f)
		}
		owners.AddAll(o)
	}
	printSet(w, owners)
}

// Targets prints the targets that should be built to sync the given path.
// It's an error if there aren't any.
func Targets(w io.Writer, d *buildgraph.BuildGraphData, path string) error {
	t := d.ProjectTargets(path)
	if t.IsEmpty() {
		return fmt.Errorf("no targets found for %s", path)
	} else if t.IsAmbiguous() {
		log.Warning("%s is owned by %d targets", t.SourceFile, t.Targets.Len())
	}
	log.Info("%s resolved as a %s", path, t.Type)
	printSet(w, t.Targets)
	return nil
}

// SourceFiles prints the source files of the given types, or all of them if types is zero.
func SourceFiles(w io.Writer, d *buildgraph.BuildGraphData, types core.SourceType) {
	if types == 0 {
		printLabels(w, d.Storage().AllSourceFiles())
		return
	}
	printLabels(w, d.Storage().SourceFiles(types))
}

// Supported prints all the targets the project knows how to build.
func Supported(w io.Writer, d *buildgraph.BuildGraphData) {
	targets := d.AllSupportedTargets()
	log.Info("%d supported targets", len(targets))
	printLabels(w, targets)
}
