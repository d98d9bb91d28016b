package ordmap

import (
	"iter"

	"github.com/hupe1980/collections/order"
)

// Sorted is the read side shared by Map and BTree.
type Sorted[K, V any] interface {
	Comparator() order.Compare[K]
	Len() int
	All() iter.Seq2[K, V]
	Backward() iter.Seq2[K, V]
}

var (
	_ Sorted[int, int] = (*Map[int, int])(nil)
	_ Sorted[int, int] = (*BTree[int, int])(nil)
)

// MapValues returns a new Map with the keys of s and f applied to each
// entry as values.
func MapValues[K, V, W any](s Sorted[K, V], f func(K, V) W) *Map[K, W] {
	out := New[K, W](s.Comparator())
	for k, v := range s.All() {
		out.Put(k, f(k, v))
	}

	return out
}

// Filter returns a new Map holding the entries of s for which keep reports
// true.
func Filter[K, V any](s Sorted[K, V], keep func(K, V) bool) *Map[K, V] {
	out := New[K, V](s.Comparator())
	for k, v := range s.All() {
		if keep(k, v) {
			out.Put(k, v)
		}
	}

	return out
}

// FilterMap returns a new Map holding f's results for the entries of s
// where f reports true.
func FilterMap[K, V, W any](s Sorted[K, V], f func(K, V) (W, bool)) *Map[K, W] {
	out := New[K, W](s.Comparator())
	for k, v := range s.All() {
		if w, ok := f(k, v); ok {
			out.Put(k, w)
		}
	}

	return out
}

// FoldLeft combines the entries in ascending key order, starting with base.
func FoldLeft[K, V, A any](s Sorted[K, V], base A, f func(acc A, k K, v V) A) A {
	acc := base
	for k, v := range s.All() {
		acc = f(acc, k, v)
	}

	return acc
}

// FoldRight combines the entries in descending key order, starting with
// base.
func FoldRight[K, V, A any](s Sorted[K, V], base A, f func(k K, v V, acc A) A) A {
	acc := base
	for k, v := range s.Backward() {
		acc = f(k, v, acc)
	}

	return acc
}

// Equal reports whether a and b hold the same keys, under a's comparator,
// with values equal under eq.
func Equal[K, V any](a, b Sorted[K, V], eq func(x, y V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}

	next, stop := iter.Pull2(b.All())
	defer stop()

	c := a.Comparator()

	for ka, va := range a.All() {
		kb, vb, ok := next()
		if !ok || c(ka, kb) != order.Equal || !eq(va, vb) {
			return false
		}
	}

	return true
}

// Compare orders a and b lexicographically by their ascending entries,
// comparing keys with a's comparator and values with cv.
func Compare[K, V any](a, b Sorted[K, V], cv order.Compare[V]) order.Order {
	next, stop := iter.Pull2(b.All())
	defer stop()

	c := a.Comparator()

	for ka, va := range a.All() {
		kb, vb, ok := next()
		if !ok {
			return order.Greater
		}

		if o := c(ka, kb); o != order.Equal {
			return o
		}

		if o := cv(va, vb); o != order.Equal {
			return o
		}
	}

	if _, _, ok := next(); ok {
		return order.Less
	}

	return order.Equal
}
