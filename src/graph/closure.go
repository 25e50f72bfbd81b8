package graph

import (
	"github.com/JetBrains/android-sub097/src/cmap"
	"github.com/JetBrains/android-sub097/src/metrics"
)

// An ExternalTransitiveClosure answers, for any node, which of the external nodes are reachable from it.
// Results are computed on first request and memoised; it is safe for concurrent use and each
// node is only ever computed once.
type ExternalTransitiveClosure[T comparable] struct {
	graph    *DepsGraph[T]
	external Set[T]
	memo     *cmap.Map[T, Set[T]]
}

// NewExternalTransitiveClosure returns a new closure over the given graph.
// The hasher is used to shard the memo table.
func NewExternalTransitiveClosure[T comparable](graph *DepsGraph[T], external Set[T], hasher func(T) uint64) *ExternalTransitiveClosure[T] {
	return &ExternalTransitiveClosure[T]{
		graph:    graph,
		external: external,
		memo:     cmap.New[T, Set[T]](cmap.DefaultShardCount, hasher),
	}
}

// Get returns the set of external nodes reachable from the given node, including the node itself
// if it is external. Nodes not in the graph are treated as having no dependencies.
// The returned set must not be modified.
func (c *ExternalTransitiveClosure[T]) Get(node T) Set[T] {
	val, wait, first := c.memo.GetOrWait(node)
	if wait == nil {
		metrics.ClosureCacheHit()
		return val
	} else if !first {
		<-wait
		metrics.ClosureCacheHit()
		return c.memo.Get(node)
	}
	result := c.compute(node)
	c.memo.Set(node, result)
	metrics.ClosureComputed()
	return result
}

// External returns the set of external nodes this closure was built with.
func (c *ExternalTransitiveClosure[T]) External() Set[T] {
	return c.external
}

// Memoised returns the number of nodes whose closure has been computed so far.
func (c *ExternalTransitiveClosure[T]) Memoised() int {
	return c.memo.Len()
}

// Graph returns the underlying graph.
func (c *ExternalTransitiveClosure[T]) Graph() *DepsGraph[T] {
	return c.graph
}

// compute walks everything reachable from node. The walk doesn't stop at external nodes,
// but does stop at any node whose closure has already been memoised since everything below it is known.
func (c *ExternalTransitiveClosure[T]) compute(node T) Set[T] {
	result := Set[T]{}
	visited := Set[T]{node: {}}
	stack := []T{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c.external.Contains(n) {
			result.Add(n)
		}
		for dep := range c.graph.Deps(n) {
			if visited.Contains(dep) {
				continue
			}
			visited.Add(dep)
			if known, present := c.memo.GetOK(dep); present {
				result.AddAll(known)
				continue
			}
			stack = append(stack, dep)
		}
	}
	log.Debug("Closure of %v has %d external nodes out of %d visited", node, len(result), len(visited))
	return result
}
