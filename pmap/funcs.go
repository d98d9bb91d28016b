package pmap

import "github.com/hupe1980/collections/order"

// MapValues returns a map with the same keys and shape as m whose values are
// f applied to the entries of m.
func MapValues[K, V, W any](m Map[K, V], f func(K, V) W) Map[K, W] {
	return Map[K, W]{root: mapNode(m.root, f), cmp: m.cmp}
}

func mapNode[K, V, W any](n *node[K, V], f func(K, V) W) *node[K, W] {
	if n == nil {
		return nil
	}

	return &node[K, W]{
		key:   n.key,
		value: f(n.key, n.value),
		size:  n.size,
		left:  mapNode(n.left, f),
		right: mapNode(n.right, f),
	}
}

// FilterMap returns a map holding f's results for the entries where f
// reports true.
func FilterMap[K, V, W any](m Map[K, V], f func(K, V) (W, bool)) Map[K, W] {
	return Map[K, W]{root: filterMapNode(m.root, f), cmp: m.cmp}
}

func filterMapNode[K, V, W any](n *node[K, V], f func(K, V) (W, bool)) *node[K, W] {
	if n == nil {
		return nil
	}

	l := filterMapNode(n.left, f)
	r := filterMapNode(n.right, f)

	if w, ok := f(n.key, n.value); ok {
		return link(n.key, w, l, r)
	}

	return merge(l, r)
}

// FoldLeft combines the entries in ascending key order, starting with base.
func FoldLeft[K, V, A any](m Map[K, V], base A, f func(acc A, k K, v V) A) A {
	acc := base
	for k, v := range m.All() {
		acc = f(acc, k, v)
	}

	return acc
}

// FoldRight combines the entries in descending key order, starting with
// base.
func FoldRight[K, V, A any](m Map[K, V], base A, f func(k K, v V, acc A) A) A {
	acc := base
	for k, v := range m.Backward() {
		acc = f(k, v, acc)
	}

	return acc
}

// Equal reports whether a and b hold the same keys with values equal under
// eq. The maps are walked in lock step without materializing either one.
func Equal[K, V any](a, b Map[K, V], eq func(x, y V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}

	ca, cb := a.Cursor(), b.Cursor()

	for {
		ka, va, ok := ca.Next()
		if !ok {
			return true
		}

		kb, vb, _ := cb.Next()
		if a.cmp(ka, kb) != order.Equal || !eq(va, vb) {
			return false
		}
	}
}

// Compare orders a and b lexicographically by their entries, comparing keys
// with the map's comparator and values with cv.
func Compare[K, V any](a, b Map[K, V], cv order.Compare[V]) order.Order {
	ca, cb := a.Cursor(), b.Cursor()

	for {
		ka, va, okA := ca.Next()
		kb, vb, okB := cb.Next()

		switch {
		case !okA && !okB:
			return order.Equal
		case !okA:
			return order.Less
		case !okB:
			return order.Greater
		}

		if o := a.cmp(ka, kb); o != order.Equal {
			return o
		}

		if o := cv(va, vb); o != order.Equal {
			return o
		}
	}
}
