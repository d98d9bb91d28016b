package deque

import (
	"iter"

	"github.com/cockroachdb/errors"
)

// stepsPerOperation is the number of element moves every operation spends on
// a pending rotation. A rotation starts with the long half holding at most
// 3b+4 elements against b. It needs at most 7b+6 moves plus one unwind per
// pop, so it completes within the b+1 operations it takes to exhaust the
// short half.
const stepsPerOperation = 8

// phase is the rotation state of one half.
type phase uint8

const (
	// idle: no rotation is pending for this half.
	idle phase = iota
	// reversing: the half's old elements are walked onto a reversed stack.
	reversing
	// moving: long half only, the elements that change sides are walked
	// onto a second reversed stack.
	moving
	// waiting: short half only, reversed and waiting for the moved elements.
	waiting
	// copying: the reversed stack is popped back to build the new half.
	copying
	// ready: copied, waiting for the other half. Both halves are installed
	// together.
	ready
)

func (p phase) String() string {
	switch p {
	case idle:
		return "idle"
	case reversing:
		return "reversing"
	case moving:
		return "moving"
	case waiting:
		return "waiting"
	case copying:
		return "copying"
	case ready:
		return "ready"
	default:
		return "unknown"
	}
}

// half is one end of a RealTime deque. Its elements, outermost first, are
// extra, then top, then base. extra only receives pushes while the half is
// rotating, so top and base keep describing the snapshot being rebuilt.
type half[T any] struct {
	extra, top, base    *stack[T]
	nextra, ntop, nbase int
}

func (h half[T]) len() int { return h.nextra + h.ntop + h.nbase }

// old returns the number of snapshot elements not popped yet.
func (h half[T]) old() int { return h.ntop + h.nbase }

func (h half[T]) push(x T, rotating bool) half[T] {
	if rotating {
		h.extra = push(h.extra, x)
		h.nextra++
	} else {
		h.top = push(h.top, x)
		h.ntop++
	}

	return h
}

func (h half[T]) pop() (T, half[T], bool) {
	switch {
	case h.nextra > 0:
		x := h.extra.head
		h.extra = h.extra.tail
		h.nextra--

		return x, h, true
	case h.ntop > 0:
		x := h.top.head
		h.top = h.top.tail
		h.ntop--

		return x, h, true
	case h.nbase > 0:
		x := h.base.head
		h.base = h.base.tail
		h.nbase--

		return x, h, true
	}

	var zero T

	return zero, h, false
}

func (h half[T]) peek() (T, bool) {
	switch {
	case h.nextra > 0:
		return h.extra.head, true
	case h.ntop > 0:
		return h.top.head, true
	case h.nbase > 0:
		return h.base.head, true
	}

	var zero T

	return zero, false
}

func (h half[T]) each(yield func(T) bool) bool {
	for _, s := range []struct {
		s *stack[T]
		n int
	}{{h.extra, h.nextra}, {h.top, h.ntop}, {h.base, h.nbase}} {
		for i, p := 0, s.s; i < s.n; i, p = i+1, p.tail {
			if !yield(p.head) {
				return false
			}
		}
	}

	return true
}

func (h half[T]) appendTo(dst []T) []T {
	h.each(func(x T) bool {
		dst = append(dst, x)
		return true
	})

	return dst
}

// rotation is the pending rebuild of one half.
type rotation[T any] struct {
	phase phase
	// remaining counts the elements still to walk while reversing or moving.
	remaining int
	// src is the snapshot of the half being walked.
	src half[T]
	// rev holds the walked elements that stay on this half, reversed.
	rev *stack[T]
	// moved holds the elements that change sides, reversed (long half only).
	moved  *stack[T]
	nmoved int
	// acc is the new half under construction and nacc its length.
	acc  *stack[T]
	nacc int
	// copied counts the elements popped from rev onto acc.
	copied int
	// drop is the number of snapshot elements that leave this half.
	drop int
}

// RealTime is a persistent deque whose operations each do O(1) work in the
// worst case.
type RealTime[T any] struct {
	front, back half[T]
	frot, brot  rotation[T]
	// longFront reports which half was the long one when the pending
	// rotation started.
	longFront bool
}

// RealTimeFromSlice returns a real-time deque holding xs with xs[0] at the
// front.
func RealTimeFromSlice[T any](xs []T) RealTime[T] {
	n := len(xs) / 2

	return RealTime[T]{
		front: half[T]{base: pushAll(nil, reversed(xs[:n])), nbase: n},
		back:  half[T]{base: pushAll(nil, xs[n:]), nbase: len(xs) - n},
	}
}

// Len returns the number of elements.
func (d RealTime[T]) Len() int { return d.front.len() + d.back.len() }

// IsEmpty reports whether the deque has no elements.
func (d RealTime[T]) IsEmpty() bool { return d.Len() == 0 }

// Rotating reports whether a rotation is in progress.
func (d RealTime[T]) Rotating() bool {
	return d.frot.phase != idle || d.brot.phase != idle
}

// PushFront returns a deque with x added at the front.
func (d RealTime[T]) PushFront(x T) RealTime[T] {
	d.front = d.front.push(x, d.frot.phase != idle)
	return d.settle()
}

// PushBack returns a deque with x added at the back.
func (d RealTime[T]) PushBack(x T) RealTime[T] {
	d.back = d.back.push(x, d.brot.phase != idle)
	return d.settle()
}

// PopFront returns the front element and the deque without it.
func (d RealTime[T]) PopFront() (T, RealTime[T], bool) {
	x, h, ok := d.front.pop()
	if ok {
		d.front = h
		return x, d.settle(), true
	}

	return d.popLast(d.back)
}

// PopBack returns the back element and the deque without it.
func (d RealTime[T]) PopBack() (T, RealTime[T], bool) {
	x, h, ok := d.back.pop()
	if ok {
		d.back = h
		return x, d.settle(), true
	}

	return d.popLast(d.front)
}

// popLast handles a pop from an empty half. The balance invariant leaves at
// most one element on the other half, and no rotation can be pending.
func (d RealTime[T]) popLast(other half[T]) (T, RealTime[T], bool) {
	switch n := other.len(); {
	case n == 0:
		var zero T
		return zero, d, false
	case n > 1 || d.Rotating():
		panic(errors.AssertionFailedf("deque: empty half facing %d elements (rotating=%t)", n, d.Rotating()))
	}

	x, _ := other.peek()

	return x, RealTime[T]{}, true
}

// PeekFront returns the front element.
func (d RealTime[T]) PeekFront() (T, bool) {
	if x, ok := d.front.peek(); ok {
		return x, true
	}

	return d.back.peek()
}

// PeekBack returns the back element.
func (d RealTime[T]) PeekBack() (T, bool) {
	if x, ok := d.back.peek(); ok {
		return x, true
	}

	return d.front.peek()
}

// settle advances a pending rotation, or starts one when the halves are out
// of balance.
func (d RealTime[T]) settle() RealTime[T] {
	if !d.Rotating() {
		if !d.unbalanced() {
			return d
		}

		d.start()
	}

	d.advance(stepsPerOperation)

	if !d.Rotating() && d.unbalanced() {
		d.start()
		d.advance(stepsPerOperation)
	}

	return d
}

func (d *RealTime[T]) unbalanced() bool {
	nf, nb := d.front.len(), d.back.len()
	return nf > factor*nb+1 || nb > factor*nf+1
}

// halves returns the long and the short half of the pending rotation.
func (d *RealTime[T]) halves() (long *half[T], lrot *rotation[T], short *half[T], srot *rotation[T]) {
	if d.longFront {
		return &d.front, &d.frot, &d.back, &d.brot
	}

	return &d.back, &d.brot, &d.front, &d.frot
}

func (d *RealTime[T]) start() {
	d.longFront = d.front.len() > d.back.len()
	long, lrot, short, srot := d.halves()

	n := long.len() + short.len()
	keep := n / 2

	*lrot = rotation[T]{
		phase:     reversing,
		remaining: keep,
		src:       *long,
		drop:      long.len() - keep,
	}

	*srot = rotation[T]{
		phase:     reversing,
		remaining: short.len(),
		src:       *short,
	}

	// Both snapshots start with an empty extra stack.
	if long.nextra != 0 || short.nextra != 0 {
		panic(errors.AssertionFailedf("deque: rotation started with pending pushes"))
	}
}

// advance spends up to budget element moves on the pending rotation.
// Phase changes are free.
func (d *RealTime[T]) advance(budget int) {
	long, lrot, short, srot := d.halves()

	for budget > 0 {
		switch {
		case srot.phase == reversing:
			if srot.remaining == 0 {
				srot.phase = waiting
				continue
			}

			srot.walk(&srot.rev)
		case lrot.phase == reversing:
			if lrot.remaining == 0 {
				lrot.phase = moving
				lrot.remaining = lrot.drop

				continue
			}

			lrot.walk(&lrot.rev)
		case lrot.phase == moving:
			if lrot.remaining == 0 {
				// The short half finished reversing before the long one
				// started, so it is waiting for exactly this stack.
				lrot.phase = copying
				srot.phase = copying
				srot.acc, srot.nacc = lrot.moved, lrot.nmoved

				continue
			}

			lrot.walk(&lrot.moved)
			lrot.nmoved++
		case srot.phase == copying:
			budget -= srot.copy(short.old())
			if srot.copied >= short.old() {
				srot.phase = ready
			}

			continue
		case lrot.phase == copying:
			budget -= lrot.copy(long.old() - lrot.drop)
			if lrot.copied >= long.old()-lrot.drop {
				lrot.phase = ready
			}

			continue
		case srot.copied > short.old():
			// Popped from the short half after it was copied.
			srot.unwind()
		case lrot.copied > long.old()-lrot.drop:
			lrot.unwind()
		case lrot.phase == ready:
			// The moved elements become visible on the short half in the
			// same step they leave the long one.
			finish(long, lrot)
			finish(short, srot)

			continue
		default:
			return
		}

		budget--
	}
}

// walk moves one element from the snapshot onto dst.
func (r *rotation[T]) walk(dst **stack[T]) {
	x, src, ok := r.src.pop()
	if !ok {
		panic(errors.AssertionFailedf("deque: rotation walked past its snapshot"))
	}

	r.src = src
	*dst = push(*dst, x)
	r.remaining--
}

// copy moves one element from rev onto acc while fewer than target elements
// were copied, and returns the number of moves made. Pops from the half
// lower target.
func (r *rotation[T]) copy(target int) int {
	if r.copied >= target {
		return 0
	}

	r.acc = push(r.acc, r.rev.head)
	r.rev = r.rev.tail
	r.nacc++
	r.copied++

	return 1
}

// unwind drops the outermost copied element, which was popped from the half
// after being copied.
func (r *rotation[T]) unwind() {
	r.acc = r.acc.tail
	r.nacc--
	r.copied--
}

// finish installs the rebuilt half. Elements pushed during the rotation stay
// on top of it.
func finish[T any](h *half[T], r *rotation[T]) {
	*h = half[T]{
		top:   h.extra,
		ntop:  h.nextra,
		base:  r.acc,
		nbase: r.nacc,
	}
	*r = rotation[T]{}
}

// ToSlice returns the elements from front to back.
func (d RealTime[T]) ToSlice() []T {
	out := d.front.appendTo(make([]T, 0, d.Len()))
	back := d.back.appendTo(nil)

	for i := len(back) - 1; i >= 0; i-- {
		out = append(out, back[i])
	}

	return out
}

// All returns an iterator over the elements from front to back.
func (d RealTime[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if !d.front.each(yield) {
			return
		}

		back := d.back.appendTo(make([]T, 0, d.back.len()))
		for i := len(back) - 1; i >= 0; i-- {
			if !yield(back[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over the elements from back to front.
func (d RealTime[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if !d.back.each(yield) {
			return
		}

		front := d.front.appendTo(make([]T, 0, d.front.len()))
		for i := len(front) - 1; i >= 0; i-- {
			if !yield(front[i]) {
				return
			}
		}
	}
}
