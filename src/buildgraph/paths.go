package buildgraph

import (
	"path"

	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/graph"
)

// PathToLabel synthesises a label for a workspace-relative path. The package is the nearest
// ancestor directory that contains a BUILD file, falling back to the root package, and the
// name is the rest of the path. It always succeeds, even for paths the snapshot doesn't know.
func (d *BuildGraphData) PathToLabel(filename string) core.Label {
	filename = cleanPath(filename)
	for dir := path.Dir(filename); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if d.storage.IsPackage(dir) {
			return core.Label{Package: dir, Name: filename[len(dir)+1:]}
		}
	}
	return core.Label{Name: filename}
}

// SourceFileToLabel returns the label of a source file if it has been recorded in the snapshot.
func (d *BuildGraphData) SourceFileToLabel(filename string) (core.Label, bool) {
	return d.storage.SourceFileLabel(filename)
}

// JavaSourceFiles returns all the Java and Kotlin source files.
func (d *BuildGraphData) JavaSourceFiles() []core.Label {
	return d.storage.SourceFiles(core.JavaSource | core.KotlinSource)
}

// AndroidSourceFiles returns all the Android manifests, resources and AIDL files.
func (d *BuildGraphData) AndroidSourceFiles() []core.Label {
	return d.storage.SourceFiles(core.AndroidManifest | core.AndroidResource | core.AidlSource)
}

// ProtoSourceFiles returns all the .proto files.
func (d *BuildGraphData) ProtoSourceFiles() []core.Label {
	return d.storage.SourceFiles(core.ProtoSource)
}

// CcSourceFiles returns all the C/C++ sources and headers.
func (d *BuildGraphData) CcSourceFiles() []core.Label {
	return d.storage.SourceFiles(core.CcSource | core.CcHeader)
}

// BuildFiles returns all the BUILD files.
func (d *BuildGraphData) BuildFiles() []core.Label {
	return d.storage.SourceFiles(core.BuildFile)
}

// SourceFileOwners returns the targets that declare the given source file.
// There may be more than one; it's up to the caller to decide what to do about that.
// The result is a copy and may be modified.
func (d *BuildGraphData) SourceFileOwners(src core.Label) graph.Set[core.Label] {
	return d.storage.Owners(src).Clone()
}

// TargetOwners returns the targets that declare the source file at the given path.
// Files that weren't recorded as sources are looked up by their synthesised label.
// The result is a copy and may be modified.
func (d *BuildGraphData) TargetOwners(filename string) graph.Set[core.Label] {
	label, present := d.storage.SourceFileLabel(filename)
	if !present {
		label = d.PathToLabel(filename)
	}
	return d.storage.Owners(label).Clone()
}
