package graph

import (
	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/metrics"
)

// A Classifier returns the tracking behaviours of a node.
// Nodes it doesn't know about should return 0.
type Classifier[T comparable] func(node T) core.DependencyTrackingBehavior

// PendingExternalDeps computes which external dependencies of a node haven't been built yet.
// It's a snapshot over one built set; when more gets built, make a new one.
type PendingExternalDeps[T comparable] struct {
	closure    *ExternalTransitiveClosure[T]
	built      Set[T]
	classifier Classifier[T]
}

// NewPendingExternalDeps returns a new PendingExternalDeps over the given closure.
// built may contain nodes that aren't in the graph at all.
func NewPendingExternalDeps[T comparable](closure *ExternalTransitiveClosure[T], built Set[T], classifier Classifier[T]) *PendingExternalDeps[T] {
	return &PendingExternalDeps[T]{
		closure:    closure,
		built:      built,
		classifier: classifier,
	}
}

// Get returns the nodes that still have to be built before the given node is ready.
func (p *PendingExternalDeps[T]) Get(node T) Set[T] {
	metrics.PendingQuery()
	behavior := p.classifier(node)
	ret := Set[T]{}
	if behavior.Has(core.TrackSelf) && !p.built.Contains(node) {
		ret.Add(node)
	}
	if behavior.Has(core.TrackExternalDependencies) {
		for dep := range p.closure.Get(node) {
			if !p.built.Contains(dep) {
				ret.Add(dep)
			}
		}
	}
	return ret
}

// GetAll returns the union of Get over all the given nodes.
func (p *PendingExternalDeps[T]) GetAll(nodes ...T) Set[T] {
	ret := Set[T]{}
	for _, node := range nodes {
		ret.AddAll(p.Get(node))
	}
	return ret
}
