package pset

import (
	"iter"

	"github.com/hupe1980/collections/order"
	"github.com/hupe1980/collections/pmap"
)

// Set is a persistent ordered set. The zero value is not usable, call New.
type Set[T any] struct {
	m pmap.Map[T, struct{}]
}

// New returns an empty set ordered by c.
func New[T any](c order.Compare[T]) Set[T] {
	return Set[T]{m: pmap.New[T, struct{}](c)}
}

// Of returns a set ordered by c holding xs.
func Of[T any](c order.Compare[T], xs ...T) Set[T] {
	s := New(c)
	for _, x := range xs {
		s = s.Add(x)
	}

	return s
}

// Collect returns a set ordered by c holding the values of seq.
func Collect[T any](c order.Compare[T], seq iter.Seq[T]) Set[T] {
	s := New(c)
	for x := range seq {
		s = s.Add(x)
	}

	return s
}

// Comparator returns the order of the elements.
func (s Set[T]) Comparator() order.Compare[T] { return s.m.Comparator() }

// Len returns the number of elements.
func (s Set[T]) Len() int { return s.m.Len() }

// IsEmpty reports whether the set has no elements.
func (s Set[T]) IsEmpty() bool { return s.m.IsEmpty() }

// Contains reports whether x is in the set.
func (s Set[T]) Contains(x T) bool { return s.m.Contains(x) }

// Add returns a set that also holds x.
func (s Set[T]) Add(x T) Set[T] {
	return Set[T]{m: s.m.With(x, struct{}{})}
}

// Remove returns a set without x. When x is absent the result shares its
// root with s.
func (s Set[T]) Remove(x T) Set[T] {
	return Set[T]{m: s.m.Without(x)}
}

// Clear returns an empty set with the same comparator.
func (s Set[T]) Clear() Set[T] {
	return Set[T]{m: s.m.Clear()}
}

// Min returns the least element.
func (s Set[T]) Min() (T, bool) {
	x, _, ok := s.m.Min()
	return x, ok
}

// Max returns the greatest element.
func (s Set[T]) Max() (T, bool) {
	x, _, ok := s.m.Max()
	return x, ok
}

// All returns an iterator over the elements in ascending order.
func (s Set[T]) All() iter.Seq[T] { return s.m.Keys() }

// Backward returns an iterator over the elements in descending order.
func (s Set[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range s.m.Backward() {
			if !yield(x) {
				return
			}
		}
	}
}

// From returns an iterator over the elements ≥ x in ascending order.
func (s Set[T]) From(x T) iter.Seq[T] { return keys(s.m.From(x)) }

// BackwardFrom returns an iterator over the elements ≤ x in descending
// order.
func (s Set[T]) BackwardFrom(x T) iter.Seq[T] { return keys(s.m.BackwardFrom(x)) }

func keys[T any](seq iter.Seq2[T, struct{}]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range seq {
			if !yield(x) {
				return
			}
		}
	}
}

// ToSlice returns the elements in ascending order.
func (s Set[T]) ToSlice() []T {
	out := make([]T, 0, s.Len())
	for x := range s.All() {
		out = append(out, x)
	}

	return out
}

// Union returns the elements in s or o.
func (s Set[T]) Union(o Set[T]) Set[T] { return Set[T]{m: s.m.Union(o.m)} }

// Intersect returns the elements in both s and o.
func (s Set[T]) Intersect(o Set[T]) Set[T] { return Set[T]{m: s.m.Intersect(o.m)} }

// Difference returns the elements of s that are not in o.
func (s Set[T]) Difference(o Set[T]) Set[T] { return Set[T]{m: s.m.Difference(o.m)} }

// IsSubset reports whether every element of s is in o.
func (s Set[T]) IsSubset(o Set[T]) bool { return s.m.IsSubmapOf(o.m) }

// Equal reports whether s and o hold the same elements.
func (s Set[T]) Equal(o Set[T]) bool {
	return pmap.Equal(s.m, o.m, func(struct{}, struct{}) bool { return true })
}

// Compare orders s and o lexicographically by their ascending elements.
func (s Set[T]) Compare(o Set[T]) order.Order {
	return pmap.Compare(s.m, o.m, func(struct{}, struct{}) order.Order { return order.Equal })
}

// Every reports whether pred holds for every element.
func (s Set[T]) Every(pred func(T) bool) bool {
	return s.m.Every(func(x T, _ struct{}) bool { return pred(x) })
}

// Any reports whether pred holds for some element.
func (s Set[T]) Any(pred func(T) bool) bool {
	return s.m.Any(func(x T, _ struct{}) bool { return pred(x) })
}

// Filter returns the elements for which keep reports true.
func (s Set[T]) Filter(keep func(T) bool) Set[T] {
	return Set[T]{m: s.m.Filter(func(x T, _ struct{}) bool { return keep(x) })}
}

// Validate checks the invariants of the underlying tree.
func (s Set[T]) Validate() error { return s.m.Validate() }

// Map returns the set of f applied to the elements of s, ordered by c.
func Map[T, U any](s Set[T], c order.Compare[U], f func(T) U) Set[U] {
	out := New(c)
	for x := range s.All() {
		out = out.Add(f(x))
	}

	return out
}

// FoldLeft combines the elements in ascending order, starting with base.
func FoldLeft[T, A any](s Set[T], base A, f func(acc A, x T) A) A {
	return pmap.FoldLeft(s.m, base, func(acc A, x T, _ struct{}) A { return f(acc, x) })
}

// FoldRight combines the elements in descending order, starting with base.
func FoldRight[T, A any](s Set[T], base A, f func(x T, acc A) A) A {
	return pmap.FoldRight(s.m, base, func(x T, _ struct{}, acc A) A { return f(x, acc) })
}
