package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func chain() *DepsGraph[string] {
	return NewBuilder[string]().Add("A", "B").Add("B", "C").Add("C", "D").Build()
}

func filter(g *DepsGraph[string], candidates ...string) Set[string] {
	return FilterRedundant(NewSet(candidates...), g.Deps, strings.Compare)
}

func TestFilterRedundantTransitive(t *testing.T) {
	assert.Equal(t, NewSet("A"), filter(chain(), "A", "D"))
	assert.Equal(t, NewSet("B"), filter(chain(), "B", "C"))
	assert.Equal(t, NewSet("A"), filter(chain(), "D", "C", "B", "A"))
}

func TestFilterRedundantAntichain(t *testing.T) {
	g := NewBuilder[string]().Add("A").Add("C").Build()
	assert.Equal(t, NewSet("A", "C"), filter(g, "A", "C"))
	// Unrelated branches of the same graph are an antichain too.
	g = NewBuilder[string]().Add("A", "B").Add("C", "D").Build()
	assert.Equal(t, NewSet("A", "C"), filter(g, "A", "C"))
}

func TestFilterRedundantMissingKeys(t *testing.T) {
	assert.Equal(t, NewSet("A", "X", "Y"), filter(chain(), "A", "X", "Y", "C"))
}

func TestFilterRedundantSelfReference(t *testing.T) {
	g := NewBuilder[string]().Add("A", "A").Add("B", "B").Build()
	assert.Equal(t, NewSet("A", "B"), filter(g, "A", "B"))
}

func TestFilterRedundantCycle(t *testing.T) {
	g := NewBuilder[string]().Add("A", "B").Add("B", "C").Add("C", "A").Build()
	assert.Equal(t, NewSet("A"), filter(g, "A", "B", "C"))
	assert.Equal(t, NewSet("B"), filter(g, "C", "B"))
}

func TestFilterRedundantLaterCandidateImpliesEarlier(t *testing.T) {
	g := NewBuilder[string]().Add("Z", "M").Add("M", "A").Build()
	assert.Equal(t, NewSet("Z"), filter(g, "A", "Z"))
}

func TestFilterRedundantEmpty(t *testing.T) {
	assert.Equal(t, 0, filter(chain()).Len())
}
