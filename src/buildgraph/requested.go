package buildgraph

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/JetBrains/android-sub097/src/core"
	"github.com/JetBrains/android-sub097/src/graph"
)

// parallelClosureThreshold is the number of targets above which we compute closures concurrently.
const parallelClosureThreshold = 64

// RequestedTargets is what a build should be asked to build, and what external dependencies
// should be expected to appear once it's done.
type RequestedTargets struct {
	BuildTargets              graph.Set[core.Label]
	ExpectedDependencyTargets graph.Set[core.Label]
}

// ExternalDependencies returns the union of the external dependencies of the given targets.
func (d *BuildGraphData) ExternalDependencies(targets []core.Label) graph.Set[core.Label] {
	ret := graph.Set[core.Label]{}
	if len(targets) > parallelClosureThreshold {
		// Warm the memo table concurrently; the union below is then just lookups.
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for _, target := range targets {
			target := target
			g.Go(func() error {
				d.closure.Get(target)
				return nil
			})
		}
		g.Wait()
	}
	for _, target := range targets {
		ret.AddAll(d.closure.Get(target))
	}
	log.Debug("%d external dependencies for %d targets; %d closures computed so far", ret.Len(), len(targets), d.closure.Memoised())
	return ret
}

// FileDependencies returns the external dependencies of the targets that own the given file.
func (d *BuildGraphData) FileDependencies(filename string) graph.Set[core.Label] {
	return d.ExternalDependencies(d.TargetOwners(filename).Items())
}

// FilterRedundantTargets returns the candidates that aren't dependencies (transitively) of any
// other candidate. Building the result builds everything in candidates.
func (d *BuildGraphData) FilterRedundantTargets(candidates graph.Set[core.Label]) graph.Set[core.Label] {
	return graph.FilterRedundant(candidates, d.graph.Deps, core.Label.Compare)
}

// ComputeRequestedTargets works out what to build for the given targets, and what external
// dependencies that build should produce.
func (d *BuildGraphData) ComputeRequestedTargets(targets graph.Set[core.Label]) RequestedTargets {
	buildTargets := d.FilterRedundantTargets(targets)
	return RequestedTargets{
		BuildTargets:              buildTargets,
		ExpectedDependencyTargets: d.ExternalDependencies(buildTargets.Items()),
	}
}
