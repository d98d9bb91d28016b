package pqueue

import (
	"github.com/hupe1980/collections/ordmap"
	"github.com/hupe1980/collections/order"
)

type stableKey[T any] struct {
	value T
	seq   uint64
}

// Stable is a priority queue that pops elements of equal priority in the
// order they were pushed.
type Stable[T any] struct {
	tree *ordmap.Map[stableKey[T], struct{}]
	seq  uint64
}

// NewStable returns an empty stable queue ordered by c.
func NewStable[T any](c order.Compare[T]) *Stable[T] {
	// Among equal values an earlier sequence number sorts higher, so the
	// maximum of the tree is the oldest element of highest priority.
	byKey := order.Then(
		order.By(func(k stableKey[T]) T { return k.value }, c),
		order.By(func(k stableKey[T]) uint64 { return k.seq }, order.Reverse(order.Natural[uint64]())),
	)

	return &Stable[T]{tree: ordmap.New[stableKey[T], struct{}](byKey)}
}

// Len returns the number of elements.
func (s *Stable[T]) Len() int { return s.tree.Len() }

// IsEmpty reports whether the queue has no elements.
func (s *Stable[T]) IsEmpty() bool { return s.tree.IsEmpty() }

// Clear removes every element and restarts the sequence counter.
func (s *Stable[T]) Clear() {
	s.tree.Clear()
	s.seq = 0
}

// Push inserts x in O(log n).
func (s *Stable[T]) Push(x T) {
	s.tree.Put(stableKey[T]{value: x, seq: s.seq}, struct{}{})
	s.seq++
}

// Peek returns the oldest element of highest priority.
func (s *Stable[T]) Peek() (T, bool) {
	k, _, ok := s.tree.Max()
	return k.value, ok
}

// Pop removes and returns the oldest element of highest priority.
func (s *Stable[T]) Pop() (T, bool) {
	k, _, ok := s.tree.DeleteMax()
	return k.value, ok
}
