package graph

// FindCycle returns one dependency cycle in the graph, or nil if there isn't one.
// The cycle is returned as a chain that starts and ends with the same node.
// Nodes are visited in the order given by compare so the result is deterministic.
func FindCycle[T comparable](g *DepsGraph[T], compare func(a, b T) int) []T {
	const (
		unvisited = iota
		inProgress
		done
	)
	type frame struct {
		node T
		deps []T
		i    int
	}
	state := make(map[T]int, g.Len())
	for _, root := range g.Nodes().SortedItems(compare) {
		if state[root] != unvisited {
			continue
		}
		state[root] = inProgress
		stack := []frame{{node: root, deps: g.Deps(root).SortedItems(compare)}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.i == len(f.deps) {
				state[f.node] = done
				stack = stack[:len(stack)-1]
				continue
			}
			dep := f.deps[f.i]
			f.i++
			switch state[dep] {
			case inProgress:
				// The stack from dep onwards is the cycle.
				var chain []T
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i].node == dep {
						for _, fr := range stack[i:] {
							chain = append(chain, fr.node)
						}
						break
					}
				}
				return append(chain, dep)
			case unvisited:
				state[dep] = inProgress
				stack = append(stack, frame{node: dep, deps: g.Deps(dep).SortedItems(compare)})
			}
		}
	}
	return nil
}
