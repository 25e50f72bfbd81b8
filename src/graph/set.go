// Package graph contains the generic graph structures the build graph is made of:
// an immutable dependency graph, the memoised closure of a node over a set of external nodes,
// pending dependency tracking and redundant node filtering.
package graph

import (
	"cmp"
	"slices"

	"golang.org/x/exp/maps"
)

// A Set is a set of comparable values. The zero value (nil) is a valid empty set for reading.
type Set[T comparable] map[T]struct{}

// NewSet returns a new set containing the given items.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add adds an item to the set.
func (s Set[T]) Add(item T) {
	s[item] = struct{}{}
}

// AddAll adds everything in another set to this one.
func (s Set[T]) AddAll(that Set[T]) {
	for item := range that {
		s[item] = struct{}{}
	}
}

// Contains returns true if the item is in the set.
func (s Set[T]) Contains(item T) bool {
	_, present := s[item]
	return present
}

// Len returns the number of items in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// Clone returns a copy of the set that can be modified independently. It is never nil.
func (s Set[T]) Clone() Set[T] {
	ret := make(Set[T], len(s))
	ret.AddAll(s)
	return ret
}

// Union returns a new set containing everything in either set.
func (s Set[T]) Union(that Set[T]) Set[T] {
	ret := make(Set[T], len(s)+len(that))
	ret.AddAll(s)
	ret.AddAll(that)
	return ret
}

// Intersect returns a new set containing everything in both sets.
func (s Set[T]) Intersect(that Set[T]) Set[T] {
	if len(that) < len(s) {
		s, that = that, s
	}
	ret := Set[T]{}
	for item := range s {
		if that.Contains(item) {
			ret.Add(item)
		}
	}
	return ret
}

// Difference returns a new set containing everything in s that isn't in that.
func (s Set[T]) Difference(that Set[T]) Set[T] {
	ret := Set[T]{}
	for item := range s {
		if !that.Contains(item) {
			ret.Add(item)
		}
	}
	return ret
}

// Equal returns true if the two sets have exactly the same members.
func (s Set[T]) Equal(that Set[T]) bool {
	if len(s) != len(that) {
		return false
	}
	for item := range s {
		if !that.Contains(item) {
			return false
		}
	}
	return true
}

// Items returns the members of the set in no particular order.
func (s Set[T]) Items() []T {
	return maps.Keys(s)
}

// SortedItems returns the members of the set ordered by the given comparison function.
func (s Set[T]) SortedItems(compare func(a, b T) int) []T {
	items := maps.Keys(s)
	slices.SortFunc(items, compare)
	return items
}

// Sorted returns the members of an ordered set in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	return s.SortedItems(cmp.Compare[T])
}
