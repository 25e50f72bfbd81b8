package buildgraph

import (
	"strings"

	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/graph"
)

// A TargetsType describes how a path was resolved to a set of targets.
type TargetsType int

// Ways a path can be resolved.
const (
	// NoTargets means the path didn't resolve to anything.
	NoTargets TargetsType = iota
	// SourceFileTargets means the path was a source file; the targets are its owners.
	SourceFileTargets
	// PackageTargets means the path was a BUILD file; the targets are those in its package.
	PackageTargets
	// DirectoryTargets means the path was a directory; the targets are all those in packages beneath it.
	DirectoryTargets
)

func (t TargetsType) String() string {
	switch t {
	case SourceFileTargets:
		return "source file"
	case PackageTargets:
		return "package"
	case DirectoryTargets:
		return "directory"
	}
	return "none"
}

// TargetsToBuild is the result of resolving a path to the targets that should be built for it.
type TargetsToBuild struct {
	Type    TargetsType
	Targets graph.Set[core.Label]
	// SourceFile is the label of the file, if Type is SourceFileTargets.
	SourceFile core.Label
}

// IsEmpty returns true if there are no targets.
func (t TargetsToBuild) IsEmpty() bool {
	return t.Targets.Len() == 0
}

// IsAmbiguous returns true if the path was a source file owned by more than one target.
// Callers should decide which of them they want.
func (t TargetsToBuild) IsAmbiguous() bool {
	return t.Type == SourceFileTargets && t.Targets.Len() > 1
}

// UnambiguousTargets returns the targets, or nil if they are ambiguous.
func (t TargetsToBuild) UnambiguousTargets() graph.Set[core.Label] {
	if t.IsAmbiguous() {
		return nil
	}
	return t.Targets
}

// ProjectTargets resolves a workspace-relative path to the targets that should be built for it.
// Source files resolve to their owners, BUILD files to everything in their package, and directories to
// everything in every package at or beneath them; nested BUILD files don't stop the recursion.
func (d *BuildGraphData) ProjectTargets(p string) TargetsToBuild {
	p = cleanPath(p)
	if label, present := d.storage.SourceFileLabel(p); present {
		if d.storage.sourceTypes[label] == core.BuildFile {
			return TargetsToBuild{
				Type:    PackageTargets,
				Targets: graph.NewSet(d.storage.PackageTargets(label.Package)...),
			}
		}
		return TargetsToBuild{
			Type:       SourceFileTargets,
			Targets:    graph.NewSet(d.storage.Owners(label).Items()...),
			SourceFile: label,
		}
	}
	targets := graph.Set[core.Label]{}
	for pkg, labels := range d.storage.packageTargets {
		if p == "" || pkg == p || strings.HasPrefix(pkg, p+"/") {
			for _, l := range labels {
				targets.Add(l)
			}
		}
	}
	if targets.Len() == 0 {
		return TargetsToBuild{Type: NoTargets, Targets: targets}
	}
	return TargetsToBuild{Type: DirectoryTargets, Targets: targets}
}
