package graph

import (
	"gopkg.in/op/go-logging.v1"
)

var log = logging.MustGetLogger("graph")

// A DepsGraph is an immutable directed graph. Every node has a set of direct dependencies and
// a set of reverse dependencies, the latter always being the exact inverse of the former.
// Cycles (including self-edges) are ordinary edges and are kept as given.
//
// A DepsGraph is safe for concurrent use. The sets it returns must not be modified.
type DepsGraph[T comparable] struct {
	nodes Set[T]
	deps  map[T]Set[T]
	rdeps map[T]Set[T]
}

// A Builder accumulates the edges of a DepsGraph. It is not safe for concurrent use.
type Builder[T comparable] struct {
	nodes Set[T]
	deps  map[T]Set[T]
	built bool
}

// NewBuilder returns a new, empty Builder.
func NewBuilder[T comparable]() *Builder[T] {
	return &Builder[T]{
		nodes: Set[T]{},
		deps:  map[T]Set[T]{},
	}
}

// Add adds a node and some of its dependencies to the graph. It can be called repeatedly for the
// same node, in which case the dependencies accumulate.
// It returns the builder to allow chaining.
func (b *Builder[T]) Add(node T, deps ...T) *Builder[T] {
	if b.built {
		panic("Attempted to add to a graph that has already been built")
	}
	b.nodes.Add(node)
	if len(deps) == 0 {
		return b
	}
	existing, present := b.deps[node]
	if !present {
		existing = make(Set[T], len(deps))
		b.deps[node] = existing
	}
	for _, dep := range deps {
		b.nodes.Add(dep)
		existing.Add(dep)
	}
	return b
}

// AddSet is like Add but takes its dependencies as a set.
func (b *Builder[T]) AddSet(node T, deps Set[T]) *Builder[T] {
	return b.Add(node, deps.Items()...)
}

// Build freezes the builder and returns the graph. The builder can't be used after this.
func (b *Builder[T]) Build() *DepsGraph[T] {
	b.built = true
	rdeps := make(map[T]Set[T], len(b.deps))
	for node, deps := range b.deps {
		for dep := range deps {
			r, present := rdeps[dep]
			if !present {
				r = Set[T]{}
				rdeps[dep] = r
			}
			r.Add(node)
		}
	}
	return &DepsGraph[T]{
		nodes: b.nodes,
		deps:  b.deps,
		rdeps: rdeps,
	}
}

// Nodes returns every node in the graph, whether it was added directly or only appears as a dependency.
func (g *DepsGraph[T]) Nodes() Set[T] {
	return g.nodes
}

// Contains returns true if the node is in the graph.
func (g *DepsGraph[T]) Contains(node T) bool {
	return g.nodes.Contains(node)
}

// Len returns the number of nodes in the graph.
func (g *DepsGraph[T]) Len() int {
	return len(g.nodes)
}

// Deps returns the direct dependencies of a node. Unknown nodes have none.
func (g *DepsGraph[T]) Deps(node T) Set[T] {
	return g.deps[node]
}

// RDeps returns the direct reverse dependencies of a node, i.e. the nodes that depend on it.
// Unknown nodes have none.
func (g *DepsGraph[T]) RDeps(node T) Set[T] {
	return g.rdeps[node]
}

// EdgeCount returns the number of edges in the graph.
func (g *DepsGraph[T]) EdgeCount() int {
	n := 0
	for _, deps := range g.deps {
		n += len(deps)
	}
	return n
}
