// Package buildgraph holds the build graph snapshot of a project sync and answers structural
// queries about it: which targets own a file, what external dependencies they need, which targets
// depend on them and so forth.
//
// A snapshot is built once per sync and is immutable thereafter, so it can be shared freely
// between goroutines. Lookups of things the snapshot doesn't know about return empty results.
package buildgraph

import (
	"path"
	"slices"
	"strings"

	"gopkg.in/op/go-logging.v1"

	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/graph"
)

var log = logging.MustGetLogger("buildgraph")

// Storage is the frozen aggregate of target and source file metadata for one snapshot.
type Storage struct {
	// allSupportedTargets are the targets the project knows how to build.
	allSupportedTargets graph.Set[core.Label]
	// sourceFileLabels maps workspace-relative paths of every recorded source file to its label.
	sourceFileLabels map[string]core.Label
	sourceTypes      map[core.Label]core.SourceType
	// packages are the directories that contain a BUILD file.
	packages graph.Set[string]
	// projectDeps are project targets whose own outputs must be treated as external dependencies.
	projectDeps graph.Set[core.Label]
	targetMap   map[core.Label]*core.ProjectTarget
	// packageTargets indexes the main workspace targets by package.
	packageTargets map[string][]core.Label
	// owners is the reverse index of source file -> the targets that declare it.
	owners map[core.Label]graph.Set[core.Label]
}

// A StorageBuilder accumulates the contents of a Storage. It is not safe for concurrent use.
type StorageBuilder struct {
	buildFileNames []string
	storage        *Storage
}

// NewStorageBuilder returns a new StorageBuilder. buildFileNames are the file names that
// identify BUILD files; a directory containing one is a package.
func NewStorageBuilder(buildFileNames []string) *StorageBuilder {
	return &StorageBuilder{
		buildFileNames: buildFileNames,
		storage: &Storage{
			allSupportedTargets: graph.Set[core.Label]{},
			sourceFileLabels:    map[string]core.Label{},
			sourceTypes:         map[core.Label]core.SourceType{},
			packages:            graph.Set[string]{},
			projectDeps:         graph.Set[core.Label]{},
			targetMap:           map[core.Label]*core.ProjectTarget{},
			packageTargets:      map[string][]core.Label{},
			owners:              map[core.Label]graph.Set[core.Label]{},
		},
	}
}

// AddSourceFile records a source file. Its package is implicitly its owning package.
// BUILD files make their directory a package.
func (sb *StorageBuilder) AddSourceFile(label core.Label) *StorageBuilder {
	s := sb.storage
	p := label.Path()
	if existing, present := s.sourceFileLabels[p]; present && existing != label {
		// The same path can be named from two packages; the deeper one is the real owner.
		if len(existing.Package) >= len(label.Package) {
			log.Warning("Source file %s is already recorded as %s", label, existing)
			return sb
		}
		log.Warning("Source file %s replaces %s", label, existing)
		delete(s.sourceTypes, existing)
	}
	s.sourceFileLabels[p] = label
	t := core.ClassifySource(p, sb.buildFileNames)
	s.sourceTypes[label] = t
	if t == core.BuildFile {
		s.packages.Add(label.Package)
	}
	return sb
}

// AddTarget records a target and indexes its sources. Adding the same label twice replaces the first.
func (sb *StorageBuilder) AddTarget(target *core.ProjectTarget) *StorageBuilder {
	s := sb.storage
	if existing, present := s.targetMap[target.Label]; present {
		log.Warning("Target %s added twice, replacing %s", target.Label, existing.Kind)
		for _, src := range existing.Sources {
			delete(s.owners[src], target.Label)
		}
	} else if target.Label.InMainWorkspace() {
		s.packageTargets[target.Label.Package] = append(s.packageTargets[target.Label.Package], target.Label)
	}
	s.targetMap[target.Label] = target
	for _, src := range target.Sources {
		owners, present := s.owners[src]
		if !present {
			owners = graph.Set[core.Label]{}
			s.owners[src] = owners
		}
		owners.Add(target.Label)
	}
	return sb
}

// AddSupportedTarget marks a target as one the project knows how to build.
func (sb *StorageBuilder) AddSupportedTarget(label core.Label) *StorageBuilder {
	sb.storage.allSupportedTargets.Add(label)
	return sb
}

// AddProjectDep marks a target as one whose outputs are treated as an external dependency.
func (sb *StorageBuilder) AddProjectDep(label core.Label) *StorageBuilder {
	sb.storage.projectDeps.Add(label)
	return sb
}

// Build returns the finished Storage. The builder must not be used afterwards.
func (sb *StorageBuilder) Build() *Storage {
	s := sb.storage
	sb.storage = nil
	for _, labels := range s.packageTargets {
		slices.SortFunc(labels, core.Label.Compare)
	}
	return s
}

// AllSupportedTargets returns the targets the project knows how to build.
func (s *Storage) AllSupportedTargets() graph.Set[core.Label] {
	return s.allSupportedTargets
}

// ProjectDeps returns the project targets whose outputs are treated as external dependencies.
func (s *Storage) ProjectDeps() graph.Set[core.Label] {
	return s.projectDeps
}

// Target returns the target with the given label, or nil if there isn't one.
func (s *Storage) Target(label core.Label) *core.ProjectTarget {
	return s.targetMap[label]
}

// Targets returns all the targets, sorted by label.
func (s *Storage) Targets() []*core.ProjectTarget {
	ret := make([]*core.ProjectTarget, 0, len(s.targetMap))
	for _, t := range s.targetMap {
		ret = append(ret, t)
	}
	slices.SortFunc(ret, func(a, b *core.ProjectTarget) int { return a.Label.Compare(b.Label) })
	return ret
}

// TargetLabels returns the labels of all targets, unsorted.
func (s *Storage) TargetLabels() []core.Label {
	ret := make([]core.Label, 0, len(s.targetMap))
	for l := range s.targetMap {
		ret = append(ret, l)
	}
	return ret
}

// SourceFileLabel returns the label of a recorded source file, given its workspace-relative path.
func (s *Storage) SourceFileLabel(filename string) (core.Label, bool) {
	l, present := s.sourceFileLabels[cleanPath(filename)]
	return l, present
}

// SourceFileCount returns the number of recorded source files.
func (s *Storage) SourceFileCount() int {
	return len(s.sourceFileLabels)
}

// SourceFiles returns the labels of all recorded source files with any of the given types, sorted.
func (s *Storage) SourceFiles(types core.SourceType) []core.Label {
	var ret []core.Label
	for l, t := range s.sourceTypes {
		if t.Has(types) {
			ret = append(ret, l)
		}
	}
	slices.SortFunc(ret, core.Label.Compare)
	return ret
}

// AllSourceFiles returns the labels of every recorded source file, whatever their type, sorted.
func (s *Storage) AllSourceFiles() []core.Label {
	ret := make([]core.Label, 0, len(s.sourceTypes))
	for l := range s.sourceTypes {
		ret = append(ret, l)
	}
	slices.SortFunc(ret, core.Label.Compare)
	return ret
}

// IsSourceFile returns true if the label is a recorded source file.
func (s *Storage) IsSourceFile(label core.Label) bool {
	_, present := s.sourceTypes[label]
	return present
}

// IsPackage returns true if the given directory contains a BUILD file.
func (s *Storage) IsPackage(dir string) bool {
	return s.packages.Contains(dir)
}

// Owners returns the targets declaring the given source file.
// The returned set is shared with the storage and must not be modified.
func (s *Storage) Owners(src core.Label) graph.Set[core.Label] {
	return s.owners[src]
}

// PackageTargets returns the main workspace targets in the given package, sorted.
// The returned slice is shared with the storage and must not be modified.
func (s *Storage) PackageTargets(pkg string) []core.Label {
	return s.packageTargets[pkg]
}

// cleanPath normalises a workspace-relative path. The workspace root is the empty string.
func cleanPath(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	return p
}
