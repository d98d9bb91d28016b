package deque

import (
	"iter"
	"slices"
)

// factor bounds the length ratio of the two stacks: neither may hold more
// than factor times the other's elements plus one.
const factor = 3

// Deque is a persistent deque with amortized O(1) operations.
type Deque[T any] struct {
	front, back   *stack[T]
	nfront, nback int
}

// FromSlice returns a deque holding xs with xs[0] at the front.
func FromSlice[T any](xs []T) Deque[T] {
	n := len(xs) / 2

	return Deque[T]{
		front:  pushAll(nil, reversed(xs[:n])),
		back:   pushAll(nil, xs[n:]),
		nfront: n,
		nback:  len(xs) - n,
	}
}

func reversed[T any](xs []T) []T {
	out := slices.Clone(xs)
	slices.Reverse(out)

	return out
}

// Len returns the number of elements.
func (d Deque[T]) Len() int { return d.nfront + d.nback }

// IsEmpty reports whether the deque has no elements.
func (d Deque[T]) IsEmpty() bool { return d.Len() == 0 }

// PushFront returns a deque with x added at the front.
func (d Deque[T]) PushFront(x T) Deque[T] {
	d.front = push(d.front, x)
	d.nfront++

	return d.rebalance()
}

// PushBack returns a deque with x added at the back.
func (d Deque[T]) PushBack(x T) Deque[T] {
	d.back = push(d.back, x)
	d.nback++

	return d.rebalance()
}

// PopFront returns the front element and the deque without it.
func (d Deque[T]) PopFront() (T, Deque[T], bool) {
	if d.nfront == 0 {
		// The balance invariant leaves at most one element at the back.
		if d.nback == 0 {
			var zero T
			return zero, d, false
		}

		return d.back.head, Deque[T]{}, true
	}

	x := d.front.head
	d.front = d.front.tail
	d.nfront--

	return x, d.rebalance(), true
}

// PopBack returns the back element and the deque without it.
func (d Deque[T]) PopBack() (T, Deque[T], bool) {
	if d.nback == 0 {
		if d.nfront == 0 {
			var zero T
			return zero, d, false
		}

		return d.front.head, Deque[T]{}, true
	}

	x := d.back.head
	d.back = d.back.tail
	d.nback--

	return x, d.rebalance(), true
}

// PeekFront returns the front element.
func (d Deque[T]) PeekFront() (T, bool) {
	switch {
	case d.nfront > 0:
		return d.front.head, true
	case d.nback > 0:
		return d.back.head, true
	}

	var zero T

	return zero, false
}

// PeekBack returns the back element.
func (d Deque[T]) PeekBack() (T, bool) {
	switch {
	case d.nback > 0:
		return d.back.head, true
	case d.nfront > 0:
		return d.front.head, true
	}

	var zero T

	return zero, false
}

func (d Deque[T]) rebalance() Deque[T] {
	if d.nfront <= factor*d.nback+1 && d.nback <= factor*d.nfront+1 {
		return d
	}

	return FromSlice(d.ToSlice())
}

// ToSlice returns the elements from front to back.
func (d Deque[T]) ToSlice() []T {
	out := d.front.appendTo(make([]T, 0, d.Len()))
	back := d.back.appendTo(nil)
	slices.Reverse(back)

	return append(out, back...)
}

// All returns an iterator over the elements from front to back.
func (d Deque[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if !d.front.each(yield) {
			return
		}

		back := d.back.appendTo(make([]T, 0, d.nback))
		for i := len(back) - 1; i >= 0; i-- {
			if !yield(back[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over the elements from back to front.
func (d Deque[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if !d.back.each(yield) {
			return
		}

		front := d.front.appendTo(make([]T, 0, d.nfront))
		for i := len(front) - 1; i >= 0; i-- {
			if !yield(front[i]) {
				return
			}
		}
	}
}
