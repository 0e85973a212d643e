package types

import (
	"iter"
	"maps"
	"slices"
)

// Set is a generic hash set backed by map[T]struct{}.
//
// It is mutable: Add and Delete modify the set in place.
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set holding the provided elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T], len(data))
	for _, d := range data {
		set[d] = struct{}{}
	}
	return set
}

// Add inserts one or more elements into the set.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// Delete removes one or more elements from the set.
func (s Set[T]) Delete(values ...T) {
	for _, val := range values {
		delete(s, val)
	}
}

// Has reports whether value is a member of the set.
func (s Set[T]) Has(value T) bool {
	_, ok := s[value]
	return ok
}

// ToIter returns an iterator over all elements in the set.
func (s Set[T]) ToIter() iter.Seq[T] {
	return maps.Keys(s)
}

// ToSlice returns a slice containing all elements in the set.
//
// The order of elements is not guaranteed.
func (s Set[T]) ToSlice() []T {
	return slices.Collect(s.ToIter())
}
