// Package collections holds small generic containers.
package collections

import (
	"cmp"
	"maps"
	"slices"
)

// Set is a set of ordered values, such as language ids
type Set[T cmp.Ordered] map[T]struct{}

// NewSet creates a set holding vs
func NewSet[T cmp.Ordered](vs ...T) Set[T] {
	s := make(Set[T], len(vs))
	s.Add(vs...)
	return s
}

// Add adds values to the set
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has reports whether v is in the set. It is safe on a nil set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order
func (s Set[T]) Sorted() []T {
	return slices.Sorted(maps.Keys(s))
}
