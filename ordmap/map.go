package ordmap

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/hupe1980/collections/internal/arena"
	"github.com/hupe1980/collections/order"
)

// Map is a mutable ordered map backed by a red-black tree.
type Map[K, V any] struct {
	t tree[K, V]
}

// New returns an empty map ordered by c.
func New[K, V any](c order.Compare[K]) *Map[K, V] {
	return &Map[K, V]{t: tree[K, V]{nodes: arena.New[rbNode[K, V]](), cmp: c}}
}

// FromSeq returns a map ordered by c holding the pairs of seq. Later pairs
// replace earlier ones with an equal key.
func FromSeq[K, V any](c order.Compare[K], seq iter.Seq2[K, V]) *Map[K, V] {
	m := New[K, V](c)
	for k, v := range seq {
		m.Put(k, v)
	}

	return m
}

// Comparator returns the order of the keys.
func (m *Map[K, V]) Comparator() order.Compare[K] { return m.t.cmp }

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.t.nodes.Len() }

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.t.root == sentinel }

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if x := m.t.find(k); x != sentinel {
		return m.t.n(x).value, true
	}

	var zero V

	return zero, false
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool { return m.t.find(k) != sentinel }

// Put stores v under k and returns the value it replaced, if any.
func (m *Map[K, V]) Put(k K, v V) (V, bool) { return m.t.insert(k, v) }

// Delete removes k and returns its value.
func (m *Map[K, V]) Delete(k K) (V, bool) {
	x := m.t.find(k)
	if x == sentinel {
		var zero V
		return zero, false
	}

	_, v := m.t.remove(x)

	return v, true
}

// DeleteMin removes and returns the entry with the least key.
func (m *Map[K, V]) DeleteMin() (K, V, bool) {
	return m.removeAt(m.t.minimum(m.t.root))
}

// DeleteMax removes and returns the entry with the greatest key.
func (m *Map[K, V]) DeleteMax() (K, V, bool) {
	return m.removeAt(m.t.maximum(m.t.root))
}

func (m *Map[K, V]) removeAt(x arena.Index) (K, V, bool) {
	if x == sentinel {
		var (
			k K
			v V
		)
		return k, v, false
	}

	k, v := m.t.remove(x)

	return k, v, true
}

// Min returns the entry with the least key.
func (m *Map[K, V]) Min() (K, V, bool) { return m.entry(m.t.minimum(m.t.root)) }

// Max returns the entry with the greatest key.
func (m *Map[K, V]) Max() (K, V, bool) { return m.entry(m.t.maximum(m.t.root)) }

func (m *Map[K, V]) entry(x arena.Index) (K, V, bool) {
	if x == sentinel {
		var (
			k K
			v V
		)
		return k, v, false
	}

	n := m.t.n(x)

	return n.key, n.value, true
}

// Clear removes every entry and releases the arena.
func (m *Map[K, V]) Clear() {
	m.t.nodes.Reset()
	m.t.root = sentinel
}

// Clone returns an independent copy of m.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{t: tree[K, V]{nodes: m.t.nodes.Clone(), root: m.t.root, cmp: m.t.cmp}}
}

func (m *Map[K, V]) walk(x arena.Index, step func(arena.Index) arena.Index) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for ; x != sentinel; x = step(x) {
			n := m.t.n(x)
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// All returns an iterator over the entries in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.walk(m.t.minimum(m.t.root), m.t.successor)
}

// Backward returns an iterator over the entries in descending key order.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return m.walk(m.t.maximum(m.t.root), m.t.predecessor)
}

// From returns an iterator over the entries with keys ≥ k in ascending
// order.
func (m *Map[K, V]) From(k K) iter.Seq2[K, V] {
	return m.walk(m.t.lowerBound(k), m.t.successor)
}

// BackwardFrom returns an iterator over the entries with keys ≤ k in
// descending order.
func (m *Map[K, V]) BackwardFrom(k K) iter.Seq2[K, V] {
	return m.walk(m.t.upperBound(k), m.t.predecessor)
}

// Keys returns an iterator over the keys in ascending order.
func (m *Map[K, V]) Keys() iter.Seq[K] { return keys(m.All()) }

// Values returns an iterator over the values in ascending key order.
func (m *Map[K, V]) Values() iter.Seq[V] { return values(m.All()) }

// Every reports whether pred holds for every entry.
func (m *Map[K, V]) Every(pred func(K, V) bool) bool { return every(m.All(), pred) }

// Any reports whether pred holds for some entry.
func (m *Map[K, V]) Any(pred func(K, V) bool) bool { return !every(m.All(), not(pred)) }

// Validate checks the red-black invariants and the key order.
func (m *Map[K, V]) Validate() error {
	if m.t.n(m.t.root).red {
		return errors.AssertionFailedf("ordmap: red root")
	}

	if _, err := m.t.validate(m.t.root, sentinel); err != nil {
		return err
	}

	if err := ascending(m.t.cmp, m.Keys()); err != nil {
		return err
	}

	if n := count(m.All()); n != m.Len() {
		return errors.AssertionFailedf("ordmap: %d reachable entries, %d allocated", n, m.Len())
	}

	return nil
}
