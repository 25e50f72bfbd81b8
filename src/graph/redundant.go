package graph

// FilterRedundant returns the subset of candidates that aren't reachable (via deps) from any other
// retained candidate, i.e. the candidates that aren't already implied by building another one.
//
// deps may return nil for unknown nodes. Nodes that reach themselves are not considered redundant
// on that basis alone. If several candidates reach each other through a cycle, the first in the
// order given by compare is kept. The result is never empty for a non-empty input.
func FilterRedundant[T comparable](candidates Set[T], deps func(T) Set[T], compare func(a, b T) int) Set[T] {
	removed := Set[T]{}
	for _, start := range candidates.SortedItems(compare) {
		if removed.Contains(start) {
			continue // Anything it reaches has been reached already.
		}
		visited := Set[T]{start: {}}
		stack := []T{start}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for dep := range deps(n) {
				if dep != start && candidates.Contains(dep) {
					removed.Add(dep)
				}
				if !visited.Contains(dep) {
					visited.Add(dep)
					stack = append(stack, dep)
				}
			}
		}
	}
	if len(removed) > 0 {
		log.Debug("Filtered %d redundant nodes out of %d", len(removed), len(candidates))
	}
	return candidates.Difference(removed)
}
