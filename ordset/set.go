package ordset

import (
	"iter"

	"github.com/hupe1980/collections/ordmap"
	"github.com/hupe1980/collections/order"
)

// Set is a mutable ordered set.
type Set[T any] struct {
	m *ordmap.Map[T, struct{}]
}

// New returns an empty set ordered by c.
func New[T any](c order.Compare[T]) *Set[T] {
	return &Set[T]{m: ordmap.New[T, struct{}](c)}
}

// Of returns a set ordered by c holding xs.
func Of[T any](c order.Compare[T], xs ...T) *Set[T] {
	s := New(c)
	for _, x := range xs {
		s.Add(x)
	}

	return s
}

// Collect returns a set ordered by c holding the values of seq.
func Collect[T any](c order.Compare[T], seq iter.Seq[T]) *Set[T] {
	s := New(c)
	for x := range seq {
		s.Add(x)
	}

	return s
}

// Comparator returns the order of the elements.
func (s *Set[T]) Comparator() order.Compare[T] { return s.m.Comparator() }

// Len returns the number of elements.
func (s *Set[T]) Len() int { return s.m.Len() }

// IsEmpty reports whether the set has no elements.
func (s *Set[T]) IsEmpty() bool { return s.m.IsEmpty() }

// Contains reports whether x is in the set.
func (s *Set[T]) Contains(x T) bool { return s.m.Contains(x) }

// Add inserts x and reports whether it was absent.
func (s *Set[T]) Add(x T) bool {
	_, replaced := s.m.Put(x, struct{}{})
	return !replaced
}

// Remove deletes x and reports whether it was present.
func (s *Set[T]) Remove(x T) bool {
	_, ok := s.m.Delete(x)
	return ok
}

// PopMin removes and returns the least element.
func (s *Set[T]) PopMin() (T, bool) {
	x, _, ok := s.m.DeleteMin()
	return x, ok
}

// PopMax removes and returns the greatest element.
func (s *Set[T]) PopMax() (T, bool) {
	x, _, ok := s.m.DeleteMax()
	return x, ok
}

// Min returns the least element.
func (s *Set[T]) Min() (T, bool) {
	x, _, ok := s.m.Min()
	return x, ok
}

// Max returns the greatest element.
func (s *Set[T]) Max() (T, bool) {
	x, _, ok := s.m.Max()
	return x, ok
}

// Clear removes every element.
func (s *Set[T]) Clear() { s.m.Clear() }

// Clone returns an independent copy of s.
func (s *Set[T]) Clone() *Set[T] { return &Set[T]{m: s.m.Clone()} }

// All returns an iterator over the elements in ascending order.
func (s *Set[T]) All() iter.Seq[T] { return s.m.Keys() }

// Backward returns an iterator over the elements in descending order.
func (s *Set[T]) Backward() iter.Seq[T] { return elements(s.m.Backward()) }

// From returns an iterator over the elements ≥ x in ascending order.
func (s *Set[T]) From(x T) iter.Seq[T] { return elements(s.m.From(x)) }

// BackwardFrom returns an iterator over the elements ≤ x in descending
// order.
func (s *Set[T]) BackwardFrom(x T) iter.Seq[T] { return elements(s.m.BackwardFrom(x)) }

func elements[T any](seq iter.Seq2[T, struct{}]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range seq {
			if !yield(x) {
				return
			}
		}
	}
}

// ToSlice returns the elements in ascending order.
func (s *Set[T]) ToSlice() []T {
	out := make([]T, 0, s.Len())
	for x := range s.All() {
		out = append(out, x)
	}

	return out
}

// Union returns a new set with the elements in s or o.
func (s *Set[T]) Union(o *Set[T]) *Set[T] {
	out := s.Clone()
	for x := range o.All() {
		out.Add(x)
	}

	return out
}

// Intersect returns a new set with the elements in both s and o.
func (s *Set[T]) Intersect(o *Set[T]) *Set[T] {
	return s.Filter(o.Contains)
}

// Difference returns a new set with the elements of s that are not in o.
func (s *Set[T]) Difference(o *Set[T]) *Set[T] {
	return s.Filter(func(x T) bool { return !o.Contains(x) })
}

// IsSubset reports whether every element of s is in o.
func (s *Set[T]) IsSubset(o *Set[T]) bool {
	return s.Len() <= o.Len() && s.Every(o.Contains)
}

// Equal reports whether s and o hold the same elements.
func (s *Set[T]) Equal(o *Set[T]) bool {
	return ordmap.Equal[T, struct{}](s.m, o.m, func(struct{}, struct{}) bool { return true })
}

// Compare orders s and o lexicographically by their ascending elements.
func (s *Set[T]) Compare(o *Set[T]) order.Order {
	return ordmap.Compare[T, struct{}](s.m, o.m, func(struct{}, struct{}) order.Order { return order.Equal })
}

// Every reports whether pred holds for every element.
func (s *Set[T]) Every(pred func(T) bool) bool {
	return s.m.Every(func(x T, _ struct{}) bool { return pred(x) })
}

// Any reports whether pred holds for some element.
func (s *Set[T]) Any(pred func(T) bool) bool {
	return s.m.Any(func(x T, _ struct{}) bool { return pred(x) })
}

// Filter returns a new set with the elements for which keep reports true.
func (s *Set[T]) Filter(keep func(T) bool) *Set[T] {
	return &Set[T]{m: ordmap.Filter[T, struct{}](s.m, func(x T, _ struct{}) bool { return keep(x) })}
}

// Validate checks the invariants of the underlying tree.
func (s *Set[T]) Validate() error { return s.m.Validate() }

// Map returns the set of f applied to the elements of s, ordered by c.
func Map[T, U any](s *Set[T], c order.Compare[U], f func(T) U) *Set[U] {
	out := New(c)
	for x := range s.All() {
		out.Add(f(x))
	}

	return out
}

// FoldLeft combines the elements in ascending order, starting with base.
func FoldLeft[T, A any](s *Set[T], base A, f func(acc A, x T) A) A {
	return ordmap.FoldLeft[T, struct{}](s.m, base, func(acc A, x T, _ struct{}) A { return f(acc, x) })
}

// FoldRight combines the elements in descending order, starting with base.
func FoldRight[T, A any](s *Set[T], base A, f func(x T, acc A) A) A {
	return ordmap.FoldRight[T, struct{}](s.m, base, func(x T, _ struct{}, acc A) A { return f(x, acc) })
}
