package list

import (
	"fmt"
	"iter"
	"slices"

	"github.com/cockroachdb/errors"
)

// List is a growable array. The zero value is an empty list ready to use.
type List[T any] struct {
	// blocks is the index block. blocks[0] is always nil.
	blocks [][]T
	size   int
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{blocks: make([][]T, 1)}
}

// Repeat returns a list holding n copies of x.
func Repeat[T any](x T, n int) *List[T] {
	if n < 0 {
		panic(errors.Newf("list: negative length %d", n))
	}

	l := New[T]()
	for range n {
		l.Add(x)
	}

	return l
}

// FromSlice returns a list holding the elements of s in order.
func FromSlice[T any](s []T) *List[T] {
	l := New[T]()
	for _, x := range s {
		l.Add(x)
	}

	return l
}

// Collect returns a list holding the values of seq in order.
func Collect[T any](seq iter.Seq[T]) *List[T] {
	l := New[T]()
	l.AddAll(seq)

	return l
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.size }

// IsEmpty reports whether the list holds no elements.
func (l *List[T]) IsEmpty() bool { return l.size == 0 }

// BlockCount returns the length of the index block, including the leading
// empty block.
func (l *List[T]) BlockCount() int {
	if l.blocks == nil {
		return 1
	}

	return len(l.blocks)
}

// Capacity returns the number of element slots currently allocated across
// all data blocks.
func (l *List[T]) Capacity() int {
	n := 0
	for _, b := range l.blocks {
		n += len(b)
	}

	return n
}

// Get returns the element at index i, or false when i is out of range.
func (l *List[T]) Get(i int) (T, bool) {
	if uint(i) >= uint(l.size) {
		var zero T
		return zero, false
	}

	b, o := locate(uint64(i))

	return l.blocks[b][o], true
}

// At returns the element at index i. It panics when i is out of range.
func (l *List[T]) At(i int) T {
	return *l.Ref(i)
}

// Ref returns the address of the element at index i. The address stays
// valid until the element is removed; growing the list never moves it.
func (l *List[T]) Ref(i int) *T {
	if uint(i) >= uint(l.size) {
		panic(outOfRange(i, l.size))
	}

	b, o := locate(uint64(i))

	return &l.blocks[b][o]
}

// Put overwrites the element at index i. It panics when i is out of range.
func (l *List[T]) Put(i int, x T) {
	*l.Ref(i) = x
}

// Swap exchanges the elements at indices i and j.
func (l *List[T]) Swap(i, j int) {
	a, b := l.Ref(i), l.Ref(j)
	*a, *b = *b, *a
}

// Add appends x.
func (l *List[T]) Add(x T) {
	if l.blocks == nil {
		l.blocks = make([][]T, 1)
	}

	b, o := locate(uint64(l.size))
	if o == 0 {
		if int(b) == len(l.blocks) {
			l.growIndex()
		}

		// A spare block left behind by RemoveLast is reused.
		if l.blocks[b] == nil {
			l.blocks[b] = make([]T, dataBlockSize(int(b)))
		}
	}

	l.blocks[b][o] = x
	l.size++
}

// AddAll appends every value of seq.
func (l *List[T]) AddAll(seq iter.Seq[T]) {
	for x := range seq {
		l.Add(x)
	}
}

// RemoveLast removes and returns the last element, or false when the list is
// empty.
func (l *List[T]) RemoveLast() (T, bool) {
	var zero T
	if l.size == 0 {
		return zero, false
	}

	b, o := locate(uint64(l.size))
	if o == 0 {
		// Block b-1 holds the last element. Block b stays as a spare,
		// anything after it goes.
		l.shrinkIndex(int(b))

		if int(b)+1 < len(l.blocks) {
			l.blocks[b+1] = nil
		}

		b--
		o = uint64(len(l.blocks[b]))
	}

	o--
	x := l.blocks[b][o]
	l.blocks[b][o] = zero
	l.size--

	return x, true
}

func (l *List[T]) growIndex() {
	blocks := make([][]T, newIndexLength(len(l.blocks)))
	copy(blocks, l.blocks)
	l.blocks = blocks
}

// shrinkIndex releases index slots once the next free block b sits on a
// boundary of the growth schedule with at least one full step of slots
// after it.
func (l *List[T]) shrinkIndex(b int) {
	if !isIndexBoundary(b) {
		return
	}

	if n := newIndexLength(b); n < len(l.blocks) {
		blocks := make([][]T, n)
		copy(blocks, l.blocks)
		l.blocks = blocks
	}
}

// Insert places x at index i, shifting later elements up by one.
// i may equal Len. It costs O(Len-i).
func (l *List[T]) Insert(i int, x T) {
	if uint(i) > uint(l.size) {
		panic(outOfRange(i, l.size))
	}

	var zero T
	l.Add(zero)

	for j := l.size - 1; j > i; j-- {
		*l.Ref(j) = *l.Ref(j - 1)
	}

	*l.Ref(i) = x
}

// Remove deletes and returns the element at index i, shifting later
// elements down by one. It costs O(Len-i).
func (l *List[T]) Remove(i int) T {
	x := l.At(i)

	for j := i + 1; j < l.size; j++ {
		*l.Ref(j - 1) = *l.Ref(j)
	}

	l.RemoveLast()

	return x
}

// Clear removes all elements and releases the data blocks.
func (l *List[T]) Clear() {
	l.blocks = make([][]T, 1)
	l.size = 0
}

// Reset removes all elements but keeps the data blocks for reuse. Vacated
// slots are zeroed.
func (l *List[T]) Reset() {
	for _, b := range l.blocks {
		clear(b)
	}

	l.size = 0
}

// First returns the first element, or false when the list is empty.
func (l *List[T]) First() (T, bool) { return l.Get(0) }

// Last returns the last element, or false when the list is empty.
func (l *List[T]) Last() (T, bool) { return l.Get(l.size - 1) }

// Clone returns a copy of l with the same block layout. Elements are copied
// by assignment.
func (l *List[T]) Clone() *List[T] {
	c := &List[T]{
		blocks: make([][]T, len(l.blocks)),
		size:   l.size,
	}

	for i, b := range l.blocks {
		c.blocks[i] = slices.Clone(b)
	}

	if len(c.blocks) == 0 {
		c.blocks = make([][]T, 1)
	}

	return c
}

// ToSlice returns the elements in a new slice.
func (l *List[T]) ToSlice() []T {
	out := make([]T, 0, l.size)
	for _, x := range l.All() {
		out = append(out, x)
	}

	return out
}

// All returns an iterator over index-value pairs in ascending index order.
// The list must not be modified during iteration.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0

		for b := 1; i < l.size; b++ {
			blk := l.blocks[b]
			n := min(len(blk), l.size-i)

			for _, x := range blk[:n] {
				if !yield(i, x) {
					return
				}
				i++
			}
		}
	}
}

// Values returns an iterator over the elements in ascending index order.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range l.All() {
			if !yield(x) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs in descending index
// order.
func (l *List[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := l.size - 1; i >= 0; i-- {
			b, o := locate(uint64(i))
			if !yield(i, l.blocks[b][o]) {
				return
			}
		}
	}
}

func (l *List[T]) String() string {
	return fmt.Sprint(l.ToSlice())
}
