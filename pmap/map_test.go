package pmap

import (
	"maps"
	"slices"
	"testing"

	"github.com/hupe1980/collections/order"
	"github.com/hupe1980/collections/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ints = order.Natural[int]()

func collect[K, V any](m Map[K, V]) ([]K, []V) {
	var (
		ks []K
		vs []V
	)

	for k, v := range m.All() {
		ks = append(ks, k)
		vs = append(vs, v)
	}

	return ks, vs
}

func requireModel(t *testing.T, m Map[int, int], model map[int]int) {
	t.Helper()

	require.NoError(t, m.Validate())
	require.Equal(t, len(model), m.Len())

	keys := slices.Sorted(maps.Keys(model))
	ks, vs := collect(m)
	require.Len(t, ks, len(keys))

	for i, k := range keys {
		require.Equal(t, k, ks[i])
		require.Equal(t, model[k], vs[i])
	}
}

func TestMapModel(t *testing.T) {
	rng := testutil.NewRNG(7)

	m := New[int, int](ints)
	model := map[int]int{}

	for step := range 20000 {
		k := rng.Intn(500)

		switch rng.Intn(3) {
		case 0, 1:
			next, old, replaced := m.Put(k, step)
			prev, had := model[k]
			require.Equal(t, had, replaced)
			if had {
				require.Equal(t, prev, old)
			}

			m = next
			model[k] = step
		case 2:
			next, old, ok := m.Delete(k)
			prev, had := model[k]
			require.Equal(t, had, ok)
			if had {
				require.Equal(t, prev, old)
			} else {
				require.Equal(t, m.root, next.root)
			}

			m = next
			delete(model, k)
		}

		v, ok := m.Get(k)
		want, had := model[k]
		require.Equal(t, had, ok)
		require.Equal(t, want, v)

		if step%500 == 0 {
			requireModel(t, m, model)
		}
	}

	requireModel(t, m, model)
}

func TestMapAscendingInsertStaysBalanced(t *testing.T) {
	m := New[int, struct{}](ints)
	for i := range 10000 {
		m = m.With(i, struct{}{})
	}

	require.NoError(t, m.Validate())
	assert.Equal(t, 10000, m.Len())

	for i := 0; i < 10000; i += 2 {
		m = m.Without(i)
	}

	require.NoError(t, m.Validate())
	assert.Equal(t, 5000, m.Len())
}

func TestMapPersistence(t *testing.T) {
	m := New[string, int](order.FromInt(compareStrings))
	m = m.With("b", 2).With("a", 1)

	v1 := m
	v2 := m.With("c", 3)
	v3, old, replaced := v2.Put("a", 10)
	v4 := v3.Without("b")

	ks, vs := collect(v1)
	assert.Equal(t, []string{"a", "b"}, ks)
	assert.Equal(t, []int{1, 2}, vs)

	ks, _ = collect(v2)
	assert.Equal(t, []string{"a", "b", "c"}, ks)

	assert.True(t, replaced)
	assert.Equal(t, 1, old)

	got, _ := v2.Get("a")
	assert.Equal(t, 1, got)
	got, _ = v3.Get("a")
	assert.Equal(t, 10, got)

	ks, vs = collect(v4)
	assert.Equal(t, []string{"a", "c"}, ks)
	assert.Equal(t, []int{10, 3}, vs)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func TestMapMinMax(t *testing.T) {
	m := New[int, string](ints)

	_, _, ok := m.Min()
	assert.False(t, ok)
	_, _, ok = m.Max()
	assert.False(t, ok)

	m = m.With(5, "five").With(1, "one").With(9, "nine")

	k, v, ok := m.Min()
	assert.True(t, ok)
	assert.Equal(t, 1, k)
	assert.Equal(t, "one", v)

	k, v, ok = m.Max()
	assert.True(t, ok)
	assert.Equal(t, 9, k)
	assert.Equal(t, "nine", v)
}

func TestMapRangeIteration(t *testing.T) {
	m := New[int, int](ints)
	for i := 0; i < 100; i += 10 {
		m = m.With(i, i)
	}

	var from, back []int
	for k := range m.From(35) {
		from = append(from, k)
	}
	for k := range m.BackwardFrom(35) {
		back = append(back, k)
	}

	assert.Equal(t, []int{40, 50, 60, 70, 80, 90}, from)
	assert.Equal(t, []int{30, 20, 10, 0}, back)

	from = from[:0]
	for k := range m.From(40) {
		from = append(from, k)
		if k == 60 {
			break
		}
	}
	assert.Equal(t, []int{40, 50, 60}, from)

	back = back[:0]
	for k := range m.BackwardFrom(40) {
		back = append(back, k)
	}
	assert.Equal(t, []int{40, 30, 20, 10, 0}, back)

	for k := range m.From(91) {
		t.Fatalf("unexpected key %d", k)
	}

	var desc []int
	for k := range m.Backward() {
		desc = append(desc, k)
	}
	assert.Equal(t, []int{90, 80, 70, 60, 50, 40, 30, 20, 10, 0}, desc)
}

func TestMapSetAlgebra(t *testing.T) {
	rng := testutil.NewRNG(11)

	for range 50 {
		a, b := New[int, int](ints), New[int, int](ints)
		ma, mb := map[int]int{}, map[int]int{}

		for range rng.Intn(200) {
			k := rng.Intn(300)
			a = a.With(k, 1)
			ma[k] = 1
		}

		for range rng.Intn(200) {
			k := rng.Intn(300)
			b = b.With(k, 2)
			mb[k] = 2
		}

		union := maps.Clone(mb)
		maps.Copy(union, ma)

		inter := map[int]int{}
		diff := map[int]int{}

		for k, v := range ma {
			if _, ok := mb[k]; ok {
				inter[k] = v
			} else {
				diff[k] = v
			}
		}

		requireModel(t, a.Union(b), union)
		requireModel(t, a.Intersect(b), inter)
		requireModel(t, a.Difference(b), diff)

		assert.True(t, a.Intersect(b).IsSubmapOf(a))
		assert.True(t, a.Intersect(b).IsSubmapOf(b))
		assert.True(t, a.IsSubmapOf(a.Union(b)))
		assert.Equal(t, len(diff) == 0, a.IsSubmapOf(b))
	}
}

func TestMapFilterSharesUntouchedSubtrees(t *testing.T) {
	m := New[int, int](ints)
	for i := range 64 {
		m = m.With(i, i)
	}

	all := m.Filter(func(int, int) bool { return true })
	assert.Same(t, m.root, all.root)

	even := m.Filter(func(k, _ int) bool { return k%2 == 0 })
	require.NoError(t, even.Validate())
	assert.Equal(t, 32, even.Len())
	assert.True(t, even.Every(func(k, _ int) bool { return k%2 == 0 }))
	assert.False(t, even.Any(func(k, _ int) bool { return k%2 == 1 }))
	assert.True(t, m.Any(func(k, _ int) bool { return k == 63 }))
}

func TestMapFuncs(t *testing.T) {
	m := New[int, int](ints)
	for i := 1; i <= 5; i++ {
		m = m.With(i, i*i)
	}

	letters := MapValues(m, func(_, v int) string { return string(rune('a' + v%26)) })
	require.NoError(t, letters.Validate())
	assert.Equal(t, m.Len(), letters.Len())

	odd := FilterMap(m, func(k, v int) (float64, bool) { return float64(v) / 2, k%2 == 1 })
	require.NoError(t, odd.Validate())
	ks, vs := collect(odd)
	assert.Equal(t, []int{1, 3, 5}, ks)
	assert.Equal(t, []float64{0.5, 4.5, 12.5}, vs)

	left := FoldLeft(m, "", func(acc string, k, _ int) string { return acc + string(rune('0'+k)) })
	right := FoldRight(m, "", func(k, _ int, acc string) string { return acc + string(rune('0'+k)) })
	assert.Equal(t, "12345", left)
	assert.Equal(t, "54321", right)
}

func TestMapEqualCompare(t *testing.T) {
	eq := func(x, y int) bool { return x == y }

	a := FromSeq(ints, maps.All(map[int]int{1: 1, 2: 2, 3: 3}))
	b := New[int, int](ints).With(3, 3).With(1, 1).With(2, 2)

	assert.True(t, Equal(a, b, eq))
	assert.Equal(t, order.Equal, Compare(a, b, ints))

	c := b.With(2, 20)
	assert.False(t, Equal(a, c, eq))
	assert.Equal(t, order.Less, Compare(a, c, ints))
	assert.Equal(t, order.Greater, Compare(c, a, ints))

	d := a.Without(3)
	assert.False(t, Equal(a, d, eq))
	assert.Equal(t, order.Greater, Compare(a, d, ints))
	assert.Equal(t, order.Less, Compare(d, a, ints))

	e := a.Without(1).With(0, 0)
	assert.Equal(t, order.Greater, Compare(a, e, ints))
}

func TestCursor(t *testing.T) {
	m := New[int, int](ints)
	for i := range 20 {
		m = m.With(i*2, i)
	}

	c := m.Cursor()
	k, _, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, 0, k)

	var seen []int
	for !c.Done() {
		k, _, _ := c.Next()
		seen = append(seen, k)

		if k == 10 {
			clone := c.Clone()
			next, _, _ := clone.Next()
			assert.Equal(t, 12, next)

			peek, _, _ := c.Peek()
			assert.Equal(t, 12, peek)
		}
	}

	assert.Len(t, seen, 20)
	assert.True(t, slices.IsSorted(seen))

	_, _, ok = c.Next()
	assert.False(t, ok)

	from := m.CursorFrom(11)
	k, v, ok := from.Next()
	require.True(t, ok)
	assert.Equal(t, 12, k)
	assert.Equal(t, 6, v)

	assert.True(t, m.CursorFrom(100).Done())
}

func TestClearKeepsComparator(t *testing.T) {
	rev := order.Reverse(ints)
	m := New[int, int](rev).With(1, 1).With(2, 2).Clear()

	assert.True(t, m.IsEmpty())
	m = m.With(1, 1).With(3, 3).With(2, 2)

	var ks []int
	for k := range m.Keys() {
		ks = append(ks, k)
	}

	assert.Equal(t, []int{3, 2, 1}, ks)
	assert.True(t, m.Contains(3))
	assert.False(t, m.Contains(4))
}
