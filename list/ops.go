package list

import (
	"slices"

	"github.com/hupe1980/collections/order"
)

// Reverse reverses the order of the elements in place.
func (l *List[T]) Reverse() {
	for i, j := 0, l.size-1; i < j; i, j = i+1, j-1 {
		l.Swap(i, j)
	}
}

// Sort sorts the list in place by c. The sort is stable.
func (l *List[T]) Sort(c order.Compare[T]) {
	s := l.ToSlice()
	slices.SortStableFunc(s, c.Int())

	i := 0
	for b := 1; i < l.size; b++ {
		i += copy(l.blocks[b], s[i:])
	}
}

// BinarySearch searches a list sorted by c for x. It returns the index of an
// element equal to x and true, or the index at which x would be inserted to
// keep the list sorted and false. Among several equal elements it is
// unspecified which index is returned.
func (l *List[T]) BinarySearch(x T, c order.Compare[T]) (int, bool) {
	lo, hi := 0, l.size
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)

		switch c(l.At(mid), x) {
		case order.Less:
			lo = mid + 1
		case order.Greater:
			hi = mid
		default:
			return mid, true
		}
	}

	return lo, false
}

// Max returns the greatest element under c, or false when the list is empty.
// The first of several greatest elements wins.
func (l *List[T]) Max(c order.Compare[T]) (T, bool) {
	return l.extreme(c, order.Greater)
}

// Min returns the least element under c, or false when the list is empty.
// The first of several least elements wins.
func (l *List[T]) Min(c order.Compare[T]) (T, bool) {
	return l.extreme(c, order.Less)
}

func (l *List[T]) extreme(c order.Compare[T], want order.Order) (T, bool) {
	best, ok := l.First()
	if !ok {
		return best, false
	}

	for _, x := range l.All() {
		if c(x, best) == want {
			best = x
		}
	}

	return best, true
}

// IndexFunc returns the first index i satisfying pred(At(i)), or -1.
func (l *List[T]) IndexFunc(pred func(T) bool) int {
	for i, x := range l.All() {
		if pred(x) {
			return i
		}
	}

	return -1
}

// LastIndexFunc returns the last index i satisfying pred(At(i)), or -1.
func (l *List[T]) LastIndexFunc(pred func(T) bool) int {
	for i, x := range l.Backward() {
		if pred(x) {
			return i
		}
	}

	return -1
}

// ContainsFunc reports whether some element satisfies pred.
func (l *List[T]) ContainsFunc(pred func(T) bool) bool {
	return l.IndexFunc(pred) >= 0
}

// Every reports whether all elements satisfy pred. It is true for an empty
// list.
func (l *List[T]) Every(pred func(T) bool) bool {
	return !l.ContainsFunc(func(x T) bool { return !pred(x) })
}

// ForEach calls f for every element in ascending index order.
func (l *List[T]) ForEach(f func(T)) {
	for _, x := range l.All() {
		f(x)
	}
}

// Filter returns a new list holding the elements that satisfy pred, in
// order.
func (l *List[T]) Filter(pred func(T) bool) *List[T] {
	out := New[T]()
	for _, x := range l.All() {
		if pred(x) {
			out.Add(x)
		}
	}

	return out
}

// Retain keeps only the elements that satisfy pred, preserving their order.
func (l *List[T]) Retain(pred func(T) bool) {
	n := 0
	for i := range l.size {
		if x := l.At(i); pred(x) {
			l.Put(n, x)
			n++
		}
	}

	for l.size > n {
		l.RemoveLast()
	}
}

// Equal reports whether a and b have the same length and pairwise equal
// elements under eq.
func Equal[T any](a, b *List[T], eq func(x, y T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}

	for i, x := range a.All() {
		if !eq(x, b.At(i)) {
			return false
		}
	}

	return true
}

// Compare compares a and b lexicographically by c. A proper prefix orders
// before the longer list.
func Compare[T any](a, b *List[T], c order.Compare[T]) order.Order {
	n := min(a.Len(), b.Len())
	for i := range n {
		if o := c(a.At(i), b.At(i)); o != order.Equal {
			return o
		}
	}

	return order.Of(a.Len() - b.Len())
}

// Map returns a new list holding f applied to each element of l.
func Map[T, U any](l *List[T], f func(T) U) *List[U] {
	out := New[U]()
	for _, x := range l.All() {
		out.Add(f(x))
	}

	return out
}

// FilterMap returns a new list holding the results of f for which f
// reports true.
func FilterMap[T, U any](l *List[T], f func(T) (U, bool)) *List[U] {
	out := New[U]()
	for _, x := range l.All() {
		if y, ok := f(x); ok {
			out.Add(y)
		}
	}

	return out
}

// FoldLeft combines the elements from first to last, starting with base.
func FoldLeft[T, A any](l *List[T], base A, f func(acc A, x T) A) A {
	acc := base
	for _, x := range l.All() {
		acc = f(acc, x)
	}

	return acc
}

// FoldRight combines the elements from last to first, starting with base.
func FoldRight[T, A any](l *List[T], base A, f func(x T, acc A) A) A {
	acc := base
	for _, x := range l.Backward() {
		acc = f(x, acc)
	}

	return acc
}
