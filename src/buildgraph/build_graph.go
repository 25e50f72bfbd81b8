package buildgraph

import (
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/graph"
	"github.com/JetBrains/android-sub097/src/metrics"
)

// BuildGraphData is one immutable snapshot of the build graph.
type BuildGraphData struct {
	storage  *Storage
	graph    *graph.DepsGraph[core.Label]
	external graph.Set[core.Label]
	closure  *graph.ExternalTransitiveClosure[core.Label]
	config   *core.Configuration
}

// A Builder accumulates the facts that make up a BuildGraphData.
// It is not safe for concurrent use.
type Builder struct {
	config  *core.Configuration
	storage *StorageBuilder
	deps    *graph.Builder[core.Label]
	rules   int
}

// NewBuilder returns a new Builder. The config defines the project boundary and language classification.
func NewBuilder(config *core.Configuration) *Builder {
	return &Builder{
		config:  config,
		storage: NewStorageBuilder(config.Project.BuildFileName),
		deps:    graph.NewBuilder[core.Label](),
	}
}

// AddSourceFile records a source file (including BUILD files) belonging to the package in its label.
func (b *Builder) AddSourceFile(label core.Label) *Builder {
	b.storage.AddSourceFile(label)
	return b
}

// AddRule records a rule with its kind, declared sources, dependencies and tags.
// If it's called more than once for the same rule the dependencies accumulate and the rest is replaced.
func (b *Builder) AddRule(label core.Label, kind string, srcs, deps []core.Label, tags []string) *Builder {
	tags = slices.Clone(tags)
	slices.Sort(tags)
	target := &core.ProjectTarget{
		Label:     label,
		Kind:      kind,
		Languages: b.config.LanguagesForKind(kind),
		Tags:      slices.Compact(tags),
		Sources:   srcs,
		Deps:      deps,
	}
	b.storage.AddTarget(target)
	b.deps.Add(label, deps...)
	b.rules++
	if b.config.IsProjectTarget(label) {
		if target.Languages.Intersects(b.config.EnabledLanguages()) {
			b.storage.AddSupportedTarget(label)
		}
		if b.config.IsProjectDepKind(kind) {
			b.storage.AddProjectDep(label)
		}
	}
	return b
}

// Build freezes the builder and returns the snapshot. The builder can't be used afterwards.
func (b *Builder) Build() *BuildGraphData {
	start := time.Now()
	storage := b.storage.Build()
	g := b.deps.Build()
	external := graph.Set[core.Label]{}
	for node := range g.Nodes() {
		if !b.config.IsProjectTarget(node) && !storage.IsSourceFile(node) {
			external.Add(node)
		}
	}
	external.AddAll(storage.ProjectDeps())
	if cycle := graph.FindCycle(g, core.Label.Compare); cycle != nil {
		log.Warning("Dependency cycle found:\n%s", strings.Join(core.Labels(cycle).Strings(), "\n -> "))
	}
	data := &BuildGraphData{
		storage:  storage,
		graph:    g,
		external: external,
		closure:  graph.NewExternalTransitiveClosure(g, external, core.HashLabel),
		config:   b.config,
	}
	duration := time.Since(start)
	metrics.RecordGraphBuild(duration)
	log.Info("Built graph of %s rules, %s source files and %s edges in %s; %s supported targets, %s external dependencies",
		humanize.Comma(int64(b.rules)), humanize.Comma(int64(storage.SourceFileCount())), humanize.Comma(int64(g.EdgeCount())),
		duration.Round(time.Millisecond), humanize.Comma(int64(storage.AllSupportedTargets().Len())), humanize.Comma(int64(external.Len())))
	return data
}

// Storage returns the target and source file metadata of this snapshot.
func (d *BuildGraphData) Storage() *Storage {
	return d.storage
}

// Graph returns the dependency graph of this snapshot.
func (d *BuildGraphData) Graph() *graph.DepsGraph[core.Label] {
	return d.graph
}

// Config returns the configuration this snapshot was built with.
func (d *BuildGraphData) Config() *core.Configuration {
	return d.config
}

// External returns the set of labels treated as external dependencies.
func (d *BuildGraphData) External() graph.Set[core.Label] {
	return d.external
}

// Target returns the target with the given label, or nil if there isn't one.
func (d *BuildGraphData) Target(label core.Label) *core.ProjectTarget {
	return d.storage.Target(label)
}

// AllSupportedTargets returns the targets the project knows how to build, sorted.
func (d *BuildGraphData) AllSupportedTargets() []core.Label {
	return d.storage.AllSupportedTargets().SortedItems(core.Label.Compare)
}

// TrackingBehaviors classifies a label for PendingExternalDeps.
// Labels outside the project have no behaviours; project targets track their external dependencies,
// and additionally themselves if they are project deps or of a self-tracked kind.
func (d *BuildGraphData) TrackingBehaviors(label core.Label) core.DependencyTrackingBehavior {
	target := d.storage.Target(label)
	if target == nil || !d.config.IsProjectTarget(label) {
		return 0
	}
	behavior := core.TrackExternalDependencies
	if d.storage.ProjectDeps().Contains(label) || d.config.IsSelfTrackedKind(target.Kind) {
		behavior |= core.TrackSelf
	}
	return behavior
}

// PendingExternalDeps returns a PendingExternalDeps over this snapshot for the given set of already built labels.
func (d *BuildGraphData) PendingExternalDeps(built graph.Set[core.Label]) *graph.PendingExternalDeps[core.Label] {
	return graph.NewPendingExternalDeps(d.closure, built, d.TrackingBehaviors)
}
