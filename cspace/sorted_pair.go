package cspace

import (
	"cmp"
	"fmt"

	"go.viam.com/cspace/scene"
)

// SortedPair is an unordered pair stored as (min, max), so it can key a map regardless of argument order.
type SortedPair[T cmp.Ordered] struct {
	first  T
	second T
}

// NewSortedPair returns the pair {a, b}.
func NewSortedPair[T cmp.Ordered](a, b T) SortedPair[T] {
	if b < a {
		a, b = b, a
	}
	return SortedPair[T]{first: a, second: b}
}

// First returns the smaller element.
func (p SortedPair[T]) First() T {
	return p.first
}

// Second returns the larger element.
func (p SortedPair[T]) Second() T {
	return p.second
}

func (p SortedPair[T]) String() string {
	return fmt.Sprintf("(%v, %v)", p.first, p.second)
}

// GeometryPair is an unordered pair of geometry ids.
type GeometryPair = SortedPair[scene.GeometryID]

// FilteredCollisionPairs is a set of geometry pairs to leave out of constraint generation.
type FilteredCollisionPairs map[GeometryPair]struct{}

// NewFilteredCollisionPairs returns a set holding the given pairs.
func NewFilteredCollisionPairs(pairs ...GeometryPair) FilteredCollisionPairs {
	out := make(FilteredCollisionPairs, len(pairs))
	for _, p := range pairs {
		out[p] = struct{}{}
	}
	return out
}

// Add inserts the pair {a, b}.
func (f FilteredCollisionPairs) Add(a, b scene.GeometryID) {
	f[NewSortedPair(a, b)] = struct{}{}
}

// Contains reports whether the pair is in the set.
func (f FilteredCollisionPairs) Contains(pair GeometryPair) bool {
	_, ok := f[pair]
	return ok
}
