package ordmap

import (
	"github.com/cockroachdb/errors"
	"github.com/hupe1980/collections/internal/arena"
	"github.com/hupe1980/collections/order"
)

const sentinel = arena.Nil

// rbNode is a red-black tree node. The zero value is the black sentinel.
type rbNode[K, V any] struct {
	key                 K
	value               V
	left, right, parent arena.Index
	red                 bool
}

// tree holds the arena and the root slot. All methods address nodes by slot.
type tree[K, V any] struct {
	nodes *arena.Arena[rbNode[K, V]]
	root  arena.Index
	cmp   order.Compare[K]
}

func (t *tree[K, V]) n(i arena.Index) *rbNode[K, V] { return t.nodes.Get(i) }

func (t *tree[K, V]) find(k K) arena.Index {
	x := t.root
	for x != sentinel {
		switch t.cmp(k, t.n(x).key) {
		case order.Less:
			x = t.n(x).left
		case order.Greater:
			x = t.n(x).right
		default:
			return x
		}
	}

	return sentinel
}

// lowerBound returns the node with the least key ≥ k.
func (t *tree[K, V]) lowerBound(k K) arena.Index {
	found := sentinel

	for x := t.root; x != sentinel; {
		if t.cmp(t.n(x).key, k) == order.Less {
			x = t.n(x).right
		} else {
			found = x
			x = t.n(x).left
		}
	}

	return found
}

// upperBound returns the node with the greatest key ≤ k.
func (t *tree[K, V]) upperBound(k K) arena.Index {
	found := sentinel

	for x := t.root; x != sentinel; {
		if t.cmp(t.n(x).key, k) == order.Greater {
			x = t.n(x).left
		} else {
			found = x
			x = t.n(x).right
		}
	}

	return found
}

func (t *tree[K, V]) minimum(x arena.Index) arena.Index {
	if x == sentinel {
		return x
	}

	for t.n(x).left != sentinel {
		x = t.n(x).left
	}

	return x
}

func (t *tree[K, V]) maximum(x arena.Index) arena.Index {
	if x == sentinel {
		return x
	}

	for t.n(x).right != sentinel {
		x = t.n(x).right
	}

	return x
}

func (t *tree[K, V]) successor(x arena.Index) arena.Index {
	if r := t.n(x).right; r != sentinel {
		return t.minimum(r)
	}

	p := t.n(x).parent
	for p != sentinel && x == t.n(p).right {
		x, p = p, t.n(p).parent
	}

	return p
}

func (t *tree[K, V]) predecessor(x arena.Index) arena.Index {
	if l := t.n(x).left; l != sentinel {
		return t.maximum(l)
	}

	p := t.n(x).parent
	for p != sentinel && x == t.n(p).left {
		x, p = p, t.n(p).parent
	}

	return p
}

func (t *tree[K, V]) rotateLeft(x arena.Index) {
	y := t.n(x).right

	t.n(x).right = t.n(y).left
	if l := t.n(y).left; l != sentinel {
		t.n(l).parent = x
	}

	t.replaceChild(t.n(x).parent, x, y)
	t.n(y).left = x
	t.n(x).parent = y
}

func (t *tree[K, V]) rotateRight(x arena.Index) {
	y := t.n(x).left

	t.n(x).left = t.n(y).right
	if r := t.n(y).right; r != sentinel {
		t.n(r).parent = x
	}

	t.replaceChild(t.n(x).parent, x, y)
	t.n(y).right = x
	t.n(x).parent = y
}

// replaceChild makes v take u's place under p and sets v's parent. v may be
// the sentinel, whose parent link is then used by deleteFixup.
func (t *tree[K, V]) replaceChild(p, u, v arena.Index) {
	switch {
	case p == sentinel:
		t.root = v
	case u == t.n(p).left:
		t.n(p).left = v
	default:
		t.n(p).right = v
	}

	t.n(v).parent = p
}

// insert stores v under k and reports the value it replaced.
func (t *tree[K, V]) insert(k K, v V) (V, bool) {
	y, x := sentinel, t.root

	var o order.Order

	for x != sentinel {
		y = x

		o = t.cmp(k, t.n(x).key)
		switch o {
		case order.Less:
			x = t.n(x).left
		case order.Greater:
			x = t.n(x).right
		default:
			old := t.n(x).value
			t.n(x).value = v

			return old, true
		}
	}

	z := t.nodes.Alloc(rbNode[K, V]{key: k, value: v, parent: y, red: true})

	switch {
	case y == sentinel:
		t.root = z
	case o == order.Less:
		t.n(y).left = z
	default:
		t.n(y).right = z
	}

	t.insertFixup(z)

	var zero V

	return zero, false
}

func (t *tree[K, V]) insertFixup(z arena.Index) {
	for t.n(t.n(z).parent).red {
		p := t.n(z).parent
		g := t.n(p).parent

		if p == t.n(g).left {
			if u := t.n(g).right; t.n(u).red {
				t.n(p).red = false
				t.n(u).red = false
				t.n(g).red = true
				z = g

				continue
			}

			if z == t.n(p).right {
				z = p
				t.rotateLeft(z)
				p = t.n(z).parent
			}

			t.n(p).red = false
			t.n(g).red = true
			t.rotateRight(g)
		} else {
			if u := t.n(g).left; t.n(u).red {
				t.n(p).red = false
				t.n(u).red = false
				t.n(g).red = true
				z = g

				continue
			}

			if z == t.n(p).left {
				z = p
				t.rotateRight(z)
				p = t.n(z).parent
			}

			t.n(p).red = false
			t.n(g).red = true
			t.rotateLeft(g)
		}
	}

	t.n(t.root).red = false
}

// remove unlinks node z and frees its slot.
func (t *tree[K, V]) remove(z arena.Index) (K, V) {
	y := z
	yRed := t.n(y).red

	var x arena.Index

	switch {
	case t.n(z).left == sentinel:
		x = t.n(z).right
		t.replaceChild(t.n(z).parent, z, x)
	case t.n(z).right == sentinel:
		x = t.n(z).left
		t.replaceChild(t.n(z).parent, z, x)
	default:
		y = t.minimum(t.n(z).right)
		yRed = t.n(y).red
		x = t.n(y).right

		if t.n(y).parent == z {
			t.n(x).parent = y
		} else {
			t.replaceChild(t.n(y).parent, y, x)
			t.n(y).right = t.n(z).right
			t.n(t.n(y).right).parent = y
		}

		t.replaceChild(t.n(z).parent, z, y)
		t.n(y).left = t.n(z).left
		t.n(t.n(y).left).parent = y
		t.n(y).red = t.n(z).red
	}

	if !yRed {
		t.deleteFixup(x)
	}

	// The sentinel may have picked up a parent link above.
	t.n(sentinel).parent = sentinel

	k, v := t.n(z).key, t.n(z).value
	t.nodes.Free(z)

	return k, v
}

func (t *tree[K, V]) deleteFixup(x arena.Index) {
	for x != t.root && !t.n(x).red {
		p := t.n(x).parent

		if x == t.n(p).left {
			w := t.n(p).right
			if t.n(w).red {
				t.n(w).red = false
				t.n(p).red = true
				t.rotateLeft(p)
				w = t.n(p).right
			}

			if !t.n(t.n(w).left).red && !t.n(t.n(w).right).red {
				t.n(w).red = true
				x = p

				continue
			}

			if !t.n(t.n(w).right).red {
				t.n(t.n(w).left).red = false
				t.n(w).red = true
				t.rotateRight(w)
				w = t.n(p).right
			}

			t.n(w).red = t.n(p).red
			t.n(p).red = false
			t.n(t.n(w).right).red = false
			t.rotateLeft(p)
			x = t.root
		} else {
			w := t.n(p).left
			if t.n(w).red {
				t.n(w).red = false
				t.n(p).red = true
				t.rotateRight(p)
				w = t.n(p).left
			}

			if !t.n(t.n(w).right).red && !t.n(t.n(w).left).red {
				t.n(w).red = true
				x = p

				continue
			}

			if !t.n(t.n(w).left).red {
				t.n(t.n(w).right).red = false
				t.n(w).red = true
				t.rotateLeft(w)
				w = t.n(p).left
			}

			t.n(w).red = t.n(p).red
			t.n(p).red = false
			t.n(t.n(w).left).red = false
			t.rotateRight(p)
			x = t.root
		}
	}

	t.n(x).red = false
}

// validate checks parent links, key order, the red rule and equal black
// heights. It returns the black height of the subtree at x.
func (t *tree[K, V]) validate(x, parent arena.Index) (int, error) {
	if x == sentinel {
		return 1, nil
	}

	n := t.n(x)
	if n.parent != parent {
		return 0, errors.AssertionFailedf("ordmap: slot %d has parent %d, want %d", x, n.parent, parent)
	}

	if n.red && (t.n(n.left).red || t.n(n.right).red) {
		return 0, errors.AssertionFailedf("ordmap: red slot %d has a red child", x)
	}

	if n.left != sentinel && t.cmp(t.n(n.left).key, n.key) != order.Less {
		return 0, errors.AssertionFailedf("ordmap: left child of slot %d out of order", x)
	}

	if n.right != sentinel && t.cmp(t.n(n.right).key, n.key) != order.Greater {
		return 0, errors.AssertionFailedf("ordmap: right child of slot %d out of order", x)
	}

	lh, err := t.validate(n.left, x)
	if err != nil {
		return 0, err
	}

	rh, err := t.validate(n.right, x)
	if err != nil {
		return 0, err
	}

	if lh != rh {
		return 0, errors.AssertionFailedf("ordmap: black heights %d and %d below slot %d", lh, rh, x)
	}

	if !n.red {
		lh++
	}

	return lh, nil
}
