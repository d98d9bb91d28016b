package pmap

import (
	"github.com/cockroachdb/errors"
	"github.com/hupe1980/collections/order"
)

const (
	delta = 3
	ratio = 2
)

type node[K, V any] struct {
	key         K
	value       V
	size        int
	left, right *node[K, V]
}

func size[K, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}

	return n.size
}

func bin[K, V any](k K, v V, l, r *node[K, V]) *node[K, V] {
	return &node[K, V]{key: k, value: v, size: size(l) + size(r) + 1, left: l, right: r}
}

// balance rebuilds a node whose subtrees were balanced before a single
// insertion or deletion on one side.
func balance[K, V any](k K, v V, l, r *node[K, V]) *node[K, V] {
	sl, sr := size(l), size(r)

	switch {
	case sl+sr <= 1:
		return bin(k, v, l, r)
	case sr > delta*sl:
		return rotateLeft(k, v, l, r)
	case sl > delta*sr:
		return rotateRight(k, v, l, r)
	default:
		return bin(k, v, l, r)
	}
}

func rotateLeft[K, V any](k K, v V, l, r *node[K, V]) *node[K, V] {
	if size(r.left) < ratio*size(r.right) {
		return bin(r.key, r.value, bin(k, v, l, r.left), r.right)
	}

	rl := r.left

	return bin(rl.key, rl.value, bin(k, v, l, rl.left), bin(r.key, r.value, rl.right, r.right))
}

func rotateRight[K, V any](k K, v V, l, r *node[K, V]) *node[K, V] {
	if size(l.right) < ratio*size(l.left) {
		return bin(l.key, l.value, l.left, bin(k, v, l.right, r))
	}

	lr := l.right

	return bin(lr.key, lr.value, bin(l.key, l.value, l.left, lr.left), bin(k, v, lr.right, r))
}

func insert[K, V any](c order.Compare[K], n *node[K, V], k K, v V) (*node[K, V], V, bool) {
	if n == nil {
		var zero V
		return bin[K, V](k, v, nil, nil), zero, false
	}

	switch c(k, n.key) {
	case order.Less:
		l, old, ok := insert(c, n.left, k, v)
		return balance(n.key, n.value, l, n.right), old, ok
	case order.Greater:
		r, old, ok := insert(c, n.right, k, v)
		return balance(n.key, n.value, n.left, r), old, ok
	default:
		return &node[K, V]{key: k, value: v, size: n.size, left: n.left, right: n.right}, n.value, true
	}
}

// remove returns n itself when k is absent, so a miss allocates nothing.
func remove[K, V any](c order.Compare[K], n *node[K, V], k K) (*node[K, V], V, bool) {
	if n == nil {
		var zero V
		return nil, zero, false
	}

	switch c(k, n.key) {
	case order.Less:
		l, old, ok := remove(c, n.left, k)
		if !ok {
			return n, old, false
		}

		return balance(n.key, n.value, l, n.right), old, true
	case order.Greater:
		r, old, ok := remove(c, n.right, k)
		if !ok {
			return n, old, false
		}

		return balance(n.key, n.value, n.left, r), old, true
	default:
		return glue(n.left, n.right), n.value, true
	}
}

func lookup[K, V any](c order.Compare[K], n *node[K, V], k K) *node[K, V] {
	for n != nil {
		switch c(k, n.key) {
		case order.Less:
			n = n.left
		case order.Greater:
			n = n.right
		default:
			return n
		}
	}

	return nil
}

func minNode[K, V any](n *node[K, V]) *node[K, V] {
	for n != nil && n.left != nil {
		n = n.left
	}

	return n
}

func maxNode[K, V any](n *node[K, V]) *node[K, V] {
	for n != nil && n.right != nil {
		n = n.right
	}

	return n
}

func removeMin[K, V any](n *node[K, V]) (K, V, *node[K, V]) {
	if n.left == nil {
		return n.key, n.value, n.right
	}

	k, v, l := removeMin(n.left)

	return k, v, balance(n.key, n.value, l, n.right)
}

func removeMax[K, V any](n *node[K, V]) (K, V, *node[K, V]) {
	if n.right == nil {
		return n.key, n.value, n.left
	}

	k, v, r := removeMax(n.right)

	return k, v, balance(n.key, n.value, n.left, r)
}

// glue joins two trees that were siblings, so they are balanced with
// respect to each other and every key in l precedes every key in r.
func glue[K, V any](l, r *node[K, V]) *node[K, V] {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case l.size > r.size:
		k, v, l2 := removeMax(l)
		return balance(k, v, l2, r)
	default:
		k, v, r2 := removeMin(r)
		return balance(k, v, l, r2)
	}
}

func insertMin[K, V any](k K, v V, n *node[K, V]) *node[K, V] {
	if n == nil {
		return bin[K, V](k, v, nil, nil)
	}

	return balance(n.key, n.value, insertMin(k, v, n.left), n.right)
}

func insertMax[K, V any](k K, v V, n *node[K, V]) *node[K, V] {
	if n == nil {
		return bin[K, V](k, v, nil, nil)
	}

	return balance(n.key, n.value, n.left, insertMax(k, v, n.right))
}

// link joins l, the entry (k, v) and r for trees of arbitrary sizes where
// every key in l precedes k and k precedes every key in r.
func link[K, V any](k K, v V, l, r *node[K, V]) *node[K, V] {
	switch {
	case l == nil:
		return insertMin(k, v, r)
	case r == nil:
		return insertMax(k, v, l)
	case delta*l.size < r.size:
		return balance(r.key, r.value, link(k, v, l, r.left), r.right)
	case delta*r.size < l.size:
		return balance(l.key, l.value, l.left, link(k, v, l.right, r))
	default:
		return bin(k, v, l, r)
	}
}

// merge joins trees of arbitrary sizes where every key in l precedes every
// key in r.
func merge[K, V any](l, r *node[K, V]) *node[K, V] {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case delta*l.size < r.size:
		return balance(r.key, r.value, merge(l, r.left), r.right)
	case delta*r.size < l.size:
		return balance(l.key, l.value, l.left, merge(l.right, r))
	default:
		return glue(l, r)
	}
}

// split partitions n into the keys before k, the node holding k if any, and
// the keys after k.
func split[K, V any](c order.Compare[K], n *node[K, V], k K) (l, found, r *node[K, V]) {
	if n == nil {
		return nil, nil, nil
	}

	switch c(k, n.key) {
	case order.Less:
		l, found, r = split(c, n.left, k)
		return l, found, link(n.key, n.value, r, n.right)
	case order.Greater:
		l, found, r = split(c, n.right, k)
		return link(n.key, n.value, n.left, l), found, r
	default:
		return n.left, n, n.right
	}
}

func union[K, V any](c order.Compare[K], a, b *node[K, V]) *node[K, V] {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}

	bl, _, br := split(c, b, a.key)

	return link(a.key, a.value, union(c, a.left, bl), union(c, a.right, br))
}

func intersect[K, V any](c order.Compare[K], a, b *node[K, V]) *node[K, V] {
	if a == nil || b == nil {
		return nil
	}

	bl, found, br := split(c, b, a.key)
	l := intersect(c, a.left, bl)
	r := intersect(c, a.right, br)

	if found != nil {
		return link(a.key, a.value, l, r)
	}

	return merge(l, r)
}

func difference[K, V any](c order.Compare[K], a, b *node[K, V]) *node[K, V] {
	switch {
	case a == nil:
		return nil
	case b == nil:
		return a
	}

	al, _, ar := split(c, a, b.key)

	return merge(difference(c, al, b.left), difference(c, ar, b.right))
}

func subset[K, V any](c order.Compare[K], a, b *node[K, V]) bool {
	switch {
	case a == nil:
		return true
	case size(a) > size(b):
		return false
	}

	bl, found, br := split(c, b, a.key)

	return found != nil && subset(c, a.left, bl) && subset(c, a.right, br)
}

func filter[K, V any](n *node[K, V], keep func(K, V) bool) *node[K, V] {
	if n == nil {
		return nil
	}

	l := filter(n.left, keep)
	r := filter(n.right, keep)

	if keep(n.key, n.value) {
		if l == n.left && r == n.right {
			return n
		}

		return link(n.key, n.value, l, r)
	}

	return merge(l, r)
}

func ascend[K, V any](n *node[K, V], yield func(K, V) bool) bool {
	for n != nil {
		if !ascend(n.left, yield) || !yield(n.key, n.value) {
			return false
		}

		n = n.right
	}

	return true
}

func descend[K, V any](n *node[K, V], yield func(K, V) bool) bool {
	for n != nil {
		if !descend(n.right, yield) || !yield(n.key, n.value) {
			return false
		}

		n = n.left
	}

	return true
}

// ascendFrom yields the entries with keys ≥ k in ascending order.
func ascendFrom[K, V any](c order.Compare[K], n *node[K, V], k K, yield func(K, V) bool) bool {
	for n != nil {
		if c(n.key, k) == order.Less {
			n = n.right
			continue
		}

		return ascendFrom(c, n.left, k, yield) && yield(n.key, n.value) && ascend(n.right, yield)
	}

	return true
}

// descendFrom yields the entries with keys ≤ k in descending order.
func descendFrom[K, V any](c order.Compare[K], n *node[K, V], k K, yield func(K, V) bool) bool {
	for n != nil {
		if c(n.key, k) == order.Greater {
			n = n.left
			continue
		}

		return descendFrom(c, n.right, k, yield) && yield(n.key, n.value) && descend(n.left, yield)
	}

	return true
}

// validate checks ordering, cached sizes and weight balance.
func validate[K, V any](c order.Compare[K], n *node[K, V]) error {
	if n == nil {
		return nil
	}

	if n.size != size(n.left)+size(n.right)+1 {
		return errors.AssertionFailedf("pmap: cached size %d, actual %d", n.size, size(n.left)+size(n.right)+1)
	}

	sl, sr := size(n.left), size(n.right)
	if sl+sr > 1 && (sl > delta*sr || sr > delta*sl) {
		return errors.AssertionFailedf("pmap: unbalanced node with subtrees %d and %d", sl, sr)
	}

	if n.left != nil && c(maxNode(n.left).key, n.key) != order.Less {
		return errors.AssertionFailedf("pmap: left subtree out of order")
	}

	if n.right != nil && c(minNode(n.right).key, n.key) != order.Greater {
		return errors.AssertionFailedf("pmap: right subtree out of order")
	}

	if err := validate(c, n.left); err != nil {
		return err
	}

	return validate(c, n.right)
}
