package buildgraph

import (
	"slices"

	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/graph"
)

// FirstReverseDepsOfType walks outwards from the owners of the given file through the targets that
// depend on them, and returns the first target of one of the given kinds found along each path.
// Nothing beyond a matching target is explored, and each target is only visited once so a target
// reachable by a shorter path is never revisited through a longer one.
// The owners themselves are returned if they match.
func (d *BuildGraphData) FirstReverseDepsOfType(filename string, kinds []string) graph.Set[core.Label] {
	owners := d.TargetOwners(filename)
	ret := graph.Set[core.Label]{}
	visited := graph.NewSet(owners.Items()...)
	queue := owners.SortedItems(core.Label.Compare)
	for len(queue) > 0 {
		label := queue[0]
		queue = queue[1:]
		if d.isKind(label, kinds) {
			ret.Add(label)
			continue
		}
		for _, rdep := range d.graph.RDeps(label).SortedItems(core.Label.Compare) {
			if !visited.Contains(rdep) {
				visited.Add(rdep)
				queue = append(queue, rdep)
			}
		}
	}
	return ret
}

// DoesDependencyPathContainRules returns true if there is a dependency path from any owner of
// fromFile to any owner of toFile that passes through a target of one of the given kinds.
// The endpoints of the path count. A single target owning both files is a path of length zero.
func (d *BuildGraphData) DoesDependencyPathContainRules(fromFile, toFile string, kinds []string) bool {
	to := d.TargetOwners(toFile)
	if to.Len() == 0 {
		return false
	}
	// Each target can be reached either with or without having passed a matching rule, so
	// we track those states separately.
	type state struct {
		label core.Label
		found bool
	}
	visited := map[state]struct{}{}
	var queue []state
	push := func(s state) {
		if _, present := visited[s]; !present {
			visited[s] = struct{}{}
			queue = append(queue, s)
		}
	}
	for from := range d.TargetOwners(fromFile) {
		push(state{label: from, found: d.isKind(from, kinds)})
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if s.found && to.Contains(s.label) {
			return true
		}
		for dep := range d.graph.Deps(s.label) {
			push(state{label: dep, found: s.found || d.isKind(dep, kinds)})
		}
	}
	return false
}

// SameLanguageTargetsDependingOn returns the given targets plus every target that depends on one of them
// (directly or transitively) through targets that share a language with it. A path is not followed past
// a target that doesn't share a language with the seed it started from.
func (d *BuildGraphData) SameLanguageTargetsDependingOn(seeds []core.Label) graph.Set[core.Label] {
	ret := graph.NewSet(seeds...)
	for _, seed := range seeds {
		target := d.storage.Target(seed)
		if target == nil || target.Languages.Empty() {
			continue
		}
		visited := graph.NewSet(seed)
		queue := []core.Label{seed}
		for len(queue) > 0 {
			label := queue[0]
			queue = queue[1:]
			for rdep := range d.graph.RDeps(label) {
				if visited.Contains(rdep) {
					continue
				}
				visited.Add(rdep)
				if t := d.storage.Target(rdep); t != nil && t.Languages.Intersects(target.Languages) {
					ret.Add(rdep)
					queue = append(queue, rdep)
				}
			}
		}
	}
	return ret
}

func (d *BuildGraphData) isKind(label core.Label, kinds []string) bool {
	target := d.storage.Target(label)
	return target != nil && slices.Contains(kinds, target.Kind)
}
