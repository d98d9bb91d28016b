package ordmap

import (
	"iter"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/hupe1980/collections/order"
)

type entry[K, V any] struct {
	key   K
	value V
}

// bnode is a B-tree node. Either it is a leaf without children, or it has
// exactly one child more than entries.
type bnode[K, V any] struct {
	entries  []entry[K, V]
	children []*bnode[K, V]
}

func (n *bnode[K, V]) leaf() bool { return len(n.children) == 0 }

// BTree is a mutable ordered map backed by a B-tree.
type BTree[K, V any] struct {
	root   *bnode[K, V]
	length int
	degree int
	cmp    order.Compare[K]
}

// NewBTree returns an empty B-tree ordered by c. It panics with
// ErrInvalidDegree if the configured degree is below 2.
func NewBTree[K, V any](c order.Compare[K], optFns ...BTreeOption) *BTree[K, V] {
	opts := btreeOptions{degree: DefaultDegree}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.degree < 2 {
		panic(errors.Wrapf(ErrInvalidDegree, "degree %d", opts.degree))
	}

	return &BTree[K, V]{degree: opts.degree, cmp: c}
}

// BTreeFromSeq returns a B-tree ordered by c holding the pairs of seq.
func BTreeFromSeq[K, V any](c order.Compare[K], seq iter.Seq2[K, V], optFns ...BTreeOption) *BTree[K, V] {
	t := NewBTree[K, V](c, optFns...)
	for k, v := range seq {
		t.Put(k, v)
	}

	return t
}

func (t *BTree[K, V]) maxEntries() int { return t.degree*2 - 1 }
func (t *BTree[K, V]) minEntries() int { return t.degree - 1 }

// search returns the position of k among n's entries and whether it is
// present there.
func (t *BTree[K, V]) search(n *bnode[K, V], k K) (int, bool) {
	return slices.BinarySearchFunc(n.entries, k, func(e entry[K, V], k K) int {
		return int(t.cmp(e.key, k))
	})
}

// Comparator returns the order of the keys.
func (t *BTree[K, V]) Comparator() order.Compare[K] { return t.cmp }

// Degree returns the configured degree.
func (t *BTree[K, V]) Degree() int { return t.degree }

// Len returns the number of entries.
func (t *BTree[K, V]) Len() int { return t.length }

// IsEmpty reports whether the tree has no entries.
func (t *BTree[K, V]) IsEmpty() bool { return t.length == 0 }

// Get returns the value stored under k.
func (t *BTree[K, V]) Get(k K) (V, bool) {
	for n := t.root; n != nil; {
		i, found := t.search(n, k)
		if found {
			return n.entries[i].value, true
		}

		if n.leaf() {
			break
		}

		n = n.children[i]
	}

	var zero V

	return zero, false
}

// Contains reports whether k is present.
func (t *BTree[K, V]) Contains(k K) bool {
	_, ok := t.Get(k)
	return ok
}

// Put stores v under k and returns the value it replaced, if any.
func (t *BTree[K, V]) Put(k K, v V) (V, bool) {
	e := entry[K, V]{key: k, value: v}

	if t.root == nil {
		t.root = &bnode[K, V]{entries: []entry[K, V]{e}}
		t.length = 1

		var zero V

		return zero, false
	}

	if len(t.root.entries) >= t.maxEntries() {
		mid, second := t.split(t.root, t.maxEntries()/2)
		t.root = &bnode[K, V]{
			entries:  []entry[K, V]{mid},
			children: []*bnode[K, V]{t.root, second},
		}
	}

	old, replaced := t.insert(t.root, e)
	if !replaced {
		t.length++
	}

	return old, replaced
}

// split cuts n at entry i. n keeps the entries before i, the returned node
// gets the ones after it.
func (t *BTree[K, V]) split(n *bnode[K, V], i int) (entry[K, V], *bnode[K, V]) {
	mid := n.entries[i]
	next := &bnode[K, V]{entries: slices.Clone(n.entries[i+1:])}
	clear(n.entries[i:])
	n.entries = n.entries[:i]

	if !n.leaf() {
		next.children = slices.Clone(n.children[i+1:])
		clear(n.children[i+1:])
		n.children = n.children[:i+1]
	}

	return mid, next
}

// maybeSplitChild splits child i if it is full and reports whether it did.
func (t *BTree[K, V]) maybeSplitChild(n *bnode[K, V], i int) bool {
	if len(n.children[i].entries) < t.maxEntries() {
		return false
	}

	mid, second := t.split(n.children[i], t.maxEntries()/2)
	n.entries = slices.Insert(n.entries, i, mid)
	n.children = slices.Insert(n.children, i+1, second)

	return true
}

func (t *BTree[K, V]) insert(n *bnode[K, V], e entry[K, V]) (V, bool) {
	for {
		i, found := t.search(n, e.key)
		if found {
			old := n.entries[i].value
			n.entries[i].value = e.value

			return old, true
		}

		if n.leaf() {
			n.entries = slices.Insert(n.entries, i, e)

			var zero V

			return zero, false
		}

		if t.maybeSplitChild(n, i) {
			switch t.cmp(e.key, n.entries[i].key) {
			case order.Less:
			case order.Greater:
				i++
			default:
				old := n.entries[i].value
				n.entries[i].value = e.value

				return old, true
			}
		}

		n = n.children[i]
	}
}

type removal int

const (
	removeKey removal = iota
	removeMin
	removeMax
)

// Delete removes k and returns its value.
func (t *BTree[K, V]) Delete(k K) (V, bool) {
	e, ok := t.deleteEntry(k, removeKey)
	return e.value, ok
}

// DeleteMin removes and returns the entry with the least key.
func (t *BTree[K, V]) DeleteMin() (K, V, bool) {
	var zero K

	e, ok := t.deleteEntry(zero, removeMin)

	return e.key, e.value, ok
}

// DeleteMax removes and returns the entry with the greatest key.
func (t *BTree[K, V]) DeleteMax() (K, V, bool) {
	var zero K

	e, ok := t.deleteEntry(zero, removeMax)

	return e.key, e.value, ok
}

func (t *BTree[K, V]) deleteEntry(k K, typ removal) (entry[K, V], bool) {
	if t.root == nil || len(t.root.entries) == 0 {
		return entry[K, V]{}, false
	}

	e, ok := t.remove(t.root, k, typ)

	if len(t.root.entries) == 0 {
		if t.root.leaf() {
			t.root = nil
		} else {
			t.root = t.root.children[0]
		}
	}

	if ok {
		t.length--
	}

	return e, ok
}

func (t *BTree[K, V]) remove(n *bnode[K, V], k K, typ removal) (entry[K, V], bool) {
	var (
		i     int
		found bool
	)

	switch typ {
	case removeMax:
		if n.leaf() {
			e := n.entries[len(n.entries)-1]
			n.entries = slices.Delete(n.entries, len(n.entries)-1, len(n.entries))

			return e, true
		}

		i = len(n.entries)
	case removeMin:
		if n.leaf() {
			e := n.entries[0]
			n.entries = slices.Delete(n.entries, 0, 1)

			return e, true
		}
	case removeKey:
		i, found = t.search(n, k)
		if n.leaf() {
			if !found {
				return entry[K, V]{}, false
			}

			e := n.entries[i]
			n.entries = slices.Delete(n.entries, i, i+1)

			return e, true
		}
	}

	if len(n.children[i].entries) <= t.minEntries() {
		t.growChild(n, i)
		return t.remove(n, k, typ)
	}

	child := n.children[i]

	if found {
		// Replace the entry with its predecessor, the greatest entry of the
		// left child, which can spare one.
		e := n.entries[i]
		n.entries[i], _ = t.remove(child, k, removeMax)

		return e, true
	}

	return t.remove(child, k, typ)
}

// growChild gives child i more than the minimum number of entries by
// borrowing from a sibling or merging with one.
func (t *BTree[K, V]) growChild(n *bnode[K, V], i int) {
	switch {
	case i > 0 && len(n.children[i-1].entries) > t.minEntries():
		child, left := n.children[i], n.children[i-1]

		child.entries = slices.Insert(child.entries, 0, n.entries[i-1])
		n.entries[i-1] = left.entries[len(left.entries)-1]
		left.entries = slices.Delete(left.entries, len(left.entries)-1, len(left.entries))

		if !left.leaf() {
			last := len(left.children) - 1
			child.children = slices.Insert(child.children, 0, left.children[last])
			left.children = slices.Delete(left.children, last, last+1)
		}
	case i < len(n.entries) && len(n.children[i+1].entries) > t.minEntries():
		child, right := n.children[i], n.children[i+1]

		child.entries = append(child.entries, n.entries[i])
		n.entries[i] = right.entries[0]
		right.entries = slices.Delete(right.entries, 0, 1)

		if !right.leaf() {
			child.children = append(child.children, right.children[0])
			right.children = slices.Delete(right.children, 0, 1)
		}
	default:
		if i >= len(n.entries) {
			i--
		}

		child, right := n.children[i], n.children[i+1]

		child.entries = append(child.entries, n.entries[i])
		child.entries = append(child.entries, right.entries...)
		child.children = append(child.children, right.children...)

		n.entries = slices.Delete(n.entries, i, i+1)
		n.children = slices.Delete(n.children, i+1, i+2)
	}
}

// Min returns the entry with the least key.
func (t *BTree[K, V]) Min() (K, V, bool) {
	n := t.root
	if n == nil {
		return entry[K, V]{}.unpack(false)
	}

	for !n.leaf() {
		n = n.children[0]
	}

	return n.entries[0].unpack(true)
}

// Max returns the entry with the greatest key.
func (t *BTree[K, V]) Max() (K, V, bool) {
	n := t.root
	if n == nil {
		return entry[K, V]{}.unpack(false)
	}

	for !n.leaf() {
		n = n.children[len(n.children)-1]
	}

	return n.entries[len(n.entries)-1].unpack(true)
}

func (e entry[K, V]) unpack(ok bool) (K, V, bool) { return e.key, e.value, ok }

// Clear removes every entry.
func (t *BTree[K, V]) Clear() {
	t.root = nil
	t.length = 0
}

// Clone returns an independent copy of t.
func (t *BTree[K, V]) Clone() *BTree[K, V] {
	c := *t
	c.root = cloneNode(t.root)

	return &c
}

func cloneNode[K, V any](n *bnode[K, V]) *bnode[K, V] {
	if n == nil {
		return nil
	}

	c := &bnode[K, V]{entries: slices.Clone(n.entries)}
	if !n.leaf() {
		c.children = make([]*bnode[K, V], len(n.children))
		for i, child := range n.children {
			c.children[i] = cloneNode(child)
		}
	}

	return c
}

func (n *bnode[K, V]) ascend(yield func(K, V) bool) bool {
	for i, e := range n.entries {
		if !n.leaf() && !n.children[i].ascend(yield) {
			return false
		}

		if !yield(e.key, e.value) {
			return false
		}
	}

	return n.leaf() || n.children[len(n.entries)].ascend(yield)
}

func (n *bnode[K, V]) descend(yield func(K, V) bool) bool {
	for i := len(n.entries) - 1; i >= 0; i-- {
		if !n.leaf() && !n.children[i+1].descend(yield) {
			return false
		}

		if !yield(n.entries[i].key, n.entries[i].value) {
			return false
		}
	}

	return n.leaf() || n.children[0].descend(yield)
}

// ascendFrom yields the entries of n with keys ≥ k in ascending order.
func (t *BTree[K, V]) ascendFrom(n *bnode[K, V], k K, yield func(K, V) bool) bool {
	i, found := t.search(n, k)
	if !found && !n.leaf() && !t.ascendFrom(n.children[i], k, yield) {
		return false
	}

	for ; i < len(n.entries); i++ {
		if !yield(n.entries[i].key, n.entries[i].value) {
			return false
		}

		if !n.leaf() && !n.children[i+1].ascend(yield) {
			return false
		}
	}

	return true
}

// descendFrom yields the entries of n with keys ≤ k in descending order.
func (t *BTree[K, V]) descendFrom(n *bnode[K, V], k K, yield func(K, V) bool) bool {
	i, found := t.search(n, k)

	if found {
		if !yield(n.entries[i].key, n.entries[i].value) {
			return false
		}

		if !n.leaf() && !n.children[i].descend(yield) {
			return false
		}
	} else if !n.leaf() && !t.descendFrom(n.children[i], k, yield) {
		return false
	}

	for i--; i >= 0; i-- {
		if !yield(n.entries[i].key, n.entries[i].value) {
			return false
		}

		if !n.leaf() && !n.children[i].descend(yield) {
			return false
		}
	}

	return true
}

// All returns an iterator over the entries in ascending key order.
func (t *BTree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.root != nil {
			t.root.ascend(yield)
		}
	}
}

// Backward returns an iterator over the entries in descending key order.
func (t *BTree[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.root != nil {
			t.root.descend(yield)
		}
	}
}

// From returns an iterator over the entries with keys ≥ k in ascending
// order.
func (t *BTree[K, V]) From(k K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.root != nil {
			t.ascendFrom(t.root, k, yield)
		}
	}
}

// BackwardFrom returns an iterator over the entries with keys ≤ k in
// descending order.
func (t *BTree[K, V]) BackwardFrom(k K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.root != nil {
			t.descendFrom(t.root, k, yield)
		}
	}
}

// Keys returns an iterator over the keys in ascending order.
func (t *BTree[K, V]) Keys() iter.Seq[K] { return keys(t.All()) }

// Values returns an iterator over the values in ascending key order.
func (t *BTree[K, V]) Values() iter.Seq[V] { return values(t.All()) }

// Every reports whether pred holds for every entry.
func (t *BTree[K, V]) Every(pred func(K, V) bool) bool { return every(t.All(), pred) }

// Any reports whether pred holds for some entry.
func (t *BTree[K, V]) Any(pred func(K, V) bool) bool { return !every(t.All(), not(pred)) }

// Validate checks node occupancy, the child count rule, uniform leaf depth
// and key order.
func (t *BTree[K, V]) Validate() error {
	if t.root != nil {
		if _, err := t.validate(t.root, true); err != nil {
			return err
		}
	}

	if err := ascending(t.cmp, t.Keys()); err != nil {
		return err
	}

	if n := count(t.All()); n != t.length {
		return errors.AssertionFailedf("ordmap: %d reachable entries, length %d", n, t.length)
	}

	return nil
}

// validate returns the height of the subtree at n.
func (t *BTree[K, V]) validate(n *bnode[K, V], root bool) (int, error) {
	if len(n.entries) > t.maxEntries() || (!root && len(n.entries) < t.minEntries()) {
		return 0, errors.AssertionFailedf("ordmap: node with %d entries at degree %d", len(n.entries), t.degree)
	}

	if n.leaf() {
		return 1, nil
	}

	if len(n.children) != len(n.entries)+1 {
		return 0, errors.AssertionFailedf("ordmap: node with %d entries has %d children", len(n.entries), len(n.children))
	}

	height := -1

	for _, c := range n.children {
		h, err := t.validate(c, false)
		if err != nil {
			return 0, err
		}

		if height >= 0 && h != height {
			return 0, errors.AssertionFailedf("ordmap: leaves at depths %d and %d", height, h)
		}

		height = h
	}

	return height + 1, nil
}
