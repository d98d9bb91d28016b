package pmap

import (
	"github.com/hupe1980/collections/deque"
	"github.com/hupe1980/collections/order"
)

// Cursor steps through the entries of a Map in ascending key order. The
// pending path is held in a persistent deque, so Clone is O(1) and a clone
// advances independently of the original.
type Cursor[K, V any] struct {
	path deque.Deque[*node[K, V]]
}

// Cursor returns a cursor positioned before the least key of m.
func (m Map[K, V]) Cursor() *Cursor[K, V] {
	c := &Cursor[K, V]{}
	c.descendLeft(m.root)

	return c
}

// CursorFrom returns a cursor positioned before the least key ≥ k.
func (m Map[K, V]) CursorFrom(k K) *Cursor[K, V] {
	c := &Cursor[K, V]{}

	for n := m.root; n != nil; {
		if m.cmp(n.key, k) == order.Less {
			n = n.right
			continue
		}

		c.path = c.path.PushFront(n)
		n = n.left
	}

	return c
}

func (c *Cursor[K, V]) descendLeft(n *node[K, V]) {
	for ; n != nil; n = n.left {
		c.path = c.path.PushFront(n)
	}
}

// Next returns the next entry and advances the cursor.
func (c *Cursor[K, V]) Next() (K, V, bool) {
	n, rest, ok := c.path.PopFront()
	if !ok {
		return entry[K, V](nil)
	}

	c.path = rest
	c.descendLeft(n.right)

	return n.key, n.value, true
}

// Peek returns the next entry without advancing.
func (c *Cursor[K, V]) Peek() (K, V, bool) {
	n, ok := c.path.PeekFront()
	if !ok {
		return entry[K, V](nil)
	}

	return n.key, n.value, true
}

// Done reports whether the cursor is exhausted.
func (c *Cursor[K, V]) Done() bool { return c.path.IsEmpty() }

// Clone returns an independent copy of c.
func (c *Cursor[K, V]) Clone() *Cursor[K, V] {
	return &Cursor[K, V]{path: c.path}
}
