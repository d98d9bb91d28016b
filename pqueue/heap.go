package pqueue

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/hupe1980/collections/list"
	"github.com/hupe1980/collections/order"
)

// Heap is a binary max-heap under the comparator given to New: the element
// that compares greatest is popped first.
type Heap[T any] struct {
	items *list.List[T]
	cmp   order.Compare[T]
}

// New returns an empty heap ordered by c.
func New[T any](c order.Compare[T]) *Heap[T] {
	return &Heap[T]{items: list.New[T](), cmp: c}
}

// Singleton returns a heap ordered by c holding only x.
func Singleton[T any](c order.Compare[T], x T) *Heap[T] {
	h := New(c)
	h.items.Add(x)

	return h
}

// FromSlice returns a heap ordered by c holding xs. It builds the heap
// bottom-up in O(len(xs)).
func FromSlice[T any](c order.Compare[T], xs []T) *Heap[T] {
	h := &Heap[T]{items: list.FromSlice(xs), cmp: c}
	for i := h.items.Len()/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}

	return h
}

// Len returns the number of elements.
func (h *Heap[T]) Len() int { return h.items.Len() }

// IsEmpty reports whether the heap has no elements.
func (h *Heap[T]) IsEmpty() bool { return h.items.IsEmpty() }

// Clear removes every element. The backing storage is kept.
func (h *Heap[T]) Clear() { h.items.Reset() }

// Push inserts x in O(log n).
func (h *Heap[T]) Push(x T) {
	h.items.Add(x)
	h.siftUp(h.items.Len() - 1)
}

// Peek returns the element of highest priority.
func (h *Heap[T]) Peek() (T, bool) { return h.items.First() }

// Pop removes and returns the element of highest priority in O(log n).
func (h *Heap[T]) Pop() (T, bool) {
	last, ok := h.items.RemoveLast()
	if !ok || h.items.IsEmpty() {
		return last, ok
	}

	root := h.items.At(0)
	h.items.Put(0, last)
	h.siftDown(0)

	return root, true
}

// higher reports whether the element at i has strictly higher priority than
// the one at j.
func (h *Heap[T]) higher(i, j int) bool {
	return h.cmp(*h.items.Ref(i), *h.items.Ref(j)) == order.Greater
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.higher(i, p) {
			return
		}

		h.items.Swap(i, p)
		i = p
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := h.items.Len()

	for {
		l := 2*i + 1
		if l >= n {
			return
		}

		best := l
		if r := l + 1; r < n && h.higher(r, l) {
			best = r
		}

		if !h.higher(best, i) {
			return
		}

		h.items.Swap(i, best)
		i = best
	}
}

// Values returns an iterator over the elements in heap order, which is not
// priority order.
func (h *Heap[T]) Values() iter.Seq[T] { return h.items.Values() }

// Drain returns an iterator that pops the elements in priority order.
// Stopping early leaves the remaining elements in the heap.
func (h *Heap[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			x, ok := h.Pop()
			if !ok || !yield(x) {
				return
			}
		}
	}
}

// Validate checks that no element has higher priority than its parent.
func (h *Heap[T]) Validate() error {
	for i := 1; i < h.items.Len(); i++ {
		if h.higher(i, (i-1)/2) {
			return errors.AssertionFailedf("pqueue: slot %d outranks its parent", i)
		}
	}

	return nil
}
