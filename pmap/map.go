package pmap

import (
	"iter"

	"github.com/hupe1980/collections/order"
)

// Map is a persistent ordered map. Map values are immutable and may be
// copied and shared freely; the zero value is not usable, call New.
type Map[K, V any] struct {
	root *node[K, V]
	cmp  order.Compare[K]
}

// New returns an empty map ordered by c.
func New[K, V any](c order.Compare[K]) Map[K, V] {
	return Map[K, V]{cmp: c}
}

// FromSeq returns a map ordered by c holding the pairs of seq. Later pairs
// replace earlier ones with an equal key.
func FromSeq[K, V any](c order.Compare[K], seq iter.Seq2[K, V]) Map[K, V] {
	m := New[K, V](c)
	for k, v := range seq {
		m, _, _ = m.Put(k, v)
	}

	return m
}

// Comparator returns the order of the keys.
func (m Map[K, V]) Comparator() order.Compare[K] { return m.cmp }

// Len returns the number of entries.
func (m Map[K, V]) Len() int { return size(m.root) }

// IsEmpty reports whether the map has no entries.
func (m Map[K, V]) IsEmpty() bool { return m.root == nil }

// Get returns the value stored under k.
func (m Map[K, V]) Get(k K) (V, bool) {
	if n := lookup(m.cmp, m.root, k); n != nil {
		return n.value, true
	}

	var zero V

	return zero, false
}

// Contains reports whether k is present.
func (m Map[K, V]) Contains(k K) bool {
	return lookup(m.cmp, m.root, k) != nil
}

// Put returns a map with v stored under k, together with the value it
// replaced, if any.
func (m Map[K, V]) Put(k K, v V) (Map[K, V], V, bool) {
	root, old, replaced := insert(m.cmp, m.root, k, v)
	return Map[K, V]{root: root, cmp: m.cmp}, old, replaced
}

// With is Put without the replaced value.
func (m Map[K, V]) With(k K, v V) Map[K, V] {
	m, _, _ = m.Put(k, v)
	return m
}

// Delete returns a map without k, together with the removed value. When k is
// absent the returned map is m itself.
func (m Map[K, V]) Delete(k K) (Map[K, V], V, bool) {
	root, old, ok := remove(m.cmp, m.root, k)
	return Map[K, V]{root: root, cmp: m.cmp}, old, ok
}

// Without is Delete without the removed value.
func (m Map[K, V]) Without(k K) Map[K, V] {
	m, _, _ = m.Delete(k)
	return m
}

// Clear returns an empty map with the same comparator.
func (m Map[K, V]) Clear() Map[K, V] {
	return New[K, V](m.cmp)
}

// Min returns the entry with the least key.
func (m Map[K, V]) Min() (K, V, bool) {
	return entry(minNode(m.root))
}

// Max returns the entry with the greatest key.
func (m Map[K, V]) Max() (K, V, bool) {
	return entry(maxNode(m.root))
}

func entry[K, V any](n *node[K, V]) (K, V, bool) {
	if n == nil {
		var (
			k K
			v V
		)
		return k, v, false
	}

	return n.key, n.value, true
}

// All returns an iterator over the entries in ascending key order.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) { ascend(m.root, yield) }
}

// Backward returns an iterator over the entries in descending key order.
func (m Map[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) { descend(m.root, yield) }
}

// From returns an iterator over the entries with keys ≥ k in ascending
// order.
func (m Map[K, V]) From(k K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) { ascendFrom(m.cmp, m.root, k, yield) }
}

// BackwardFrom returns an iterator over the entries with keys ≤ k in
// descending order.
func (m Map[K, V]) BackwardFrom(k K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) { descendFrom(m.cmp, m.root, k, yield) }
}

// Keys returns an iterator over the keys in ascending order.
func (m Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		ascend(m.root, func(k K, _ V) bool { return yield(k) })
	}
}

// Values returns an iterator over the values in ascending key order.
func (m Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		ascend(m.root, func(_ K, v V) bool { return yield(v) })
	}
}

// Every reports whether pred holds for every entry. It is true for an empty
// map.
func (m Map[K, V]) Every(pred func(K, V) bool) bool {
	return ascend(m.root, pred)
}

// Any reports whether pred holds for some entry.
func (m Map[K, V]) Any(pred func(K, V) bool) bool {
	return !ascend(m.root, func(k K, v V) bool { return !pred(k, v) })
}

// Filter returns a map holding the entries for which keep reports true.
// Subtrees that keep every entry are shared with m.
func (m Map[K, V]) Filter(keep func(K, V) bool) Map[K, V] {
	return Map[K, V]{root: filter(m.root, keep), cmp: m.cmp}
}

// Union returns a map holding the entries of m and o. For keys present in
// both, the value from m wins. Both maps must use the same comparator.
func (m Map[K, V]) Union(o Map[K, V]) Map[K, V] {
	return Map[K, V]{root: union(m.cmp, m.root, o.root), cmp: m.cmp}
}

// Intersect returns a map holding the entries of m whose keys are also in o.
func (m Map[K, V]) Intersect(o Map[K, V]) Map[K, V] {
	return Map[K, V]{root: intersect(m.cmp, m.root, o.root), cmp: m.cmp}
}

// Difference returns a map holding the entries of m whose keys are not in o.
func (m Map[K, V]) Difference(o Map[K, V]) Map[K, V] {
	return Map[K, V]{root: difference(m.cmp, m.root, o.root), cmp: m.cmp}
}

// IsSubmapOf reports whether every key of m is also a key of o.
func (m Map[K, V]) IsSubmapOf(o Map[K, V]) bool {
	return subset(m.cmp, m.root, o.root)
}

// Validate checks the ordering and balance invariants of the tree. It
// returns an assertion failure describing the first violation.
func (m Map[K, V]) Validate() error {
	return validate(m.cmp, m.root)
}
