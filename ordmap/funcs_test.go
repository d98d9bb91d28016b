package ordmap

import (
	"maps"
	"slices"
	"strconv"
	"testing"

	"github.com/hupe1980/collections/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Map[int, int] {
	m := New[int, int](ints)
	for i := 1; i <= 6; i++ {
		m.Put(i, i*10)
	}

	return m
}

func TestFuncs(t *testing.T) {
	for name, s := range map[string]Sorted[int, int]{
		"rbtree": sample(),
		"btree":  BTreeFromSeq(ints, sample().All(), WithDegree(2)),
	} {
		t.Run(name, func(t *testing.T) {
			strs := MapValues(s, func(k, v int) string { return strconv.Itoa(k + v) })
			require.NoError(t, strs.Validate())
			assert.Equal(t, []string{"11", "22", "33", "44", "55", "66"}, slices.Collect(strs.Values()))

			even := Filter(s, func(k, _ int) bool { return k%2 == 0 })
			assert.Equal(t, []int{2, 4, 6}, slices.Collect(even.Keys()))

			halves := FilterMap(s, func(k, v int) (float64, bool) { return float64(v) / 4, k > 4 })
			assert.Equal(t, map[int]float64{5: 12.5, 6: 15}, maps.Collect(halves.All()))

			left := FoldLeft(s, "", func(acc string, k, _ int) string { return acc + strconv.Itoa(k) })
			right := FoldRight(s, "", func(k, _ int, acc string) string { return acc + strconv.Itoa(k) })
			assert.Equal(t, "123456", left)
			assert.Equal(t, "654321", right)
		})
	}
}

func TestEqualCompare(t *testing.T) {
	eq := func(x, y int) bool { return x == y }

	a := sample()
	b := BTreeFromSeq(ints, a.All())

	assert.True(t, Equal[int, int](a, b, eq))
	assert.Equal(t, order.Equal, Compare[int, int](a, b, ints))

	b.Put(3, 31)
	assert.False(t, Equal[int, int](a, b, eq))
	assert.Equal(t, order.Less, Compare[int, int](a, b, ints))

	b.Put(3, 30)
	b.Delete(6)
	assert.False(t, Equal[int, int](a, b, eq))
	assert.Equal(t, order.Greater, Compare[int, int](a, b, ints))
	assert.Equal(t, order.Less, Compare[int, int](b, a, ints))

	b.Put(0, 0)
	b.Put(6, 60)
	assert.Equal(t, order.Greater, Compare[int, int](a, b, ints))
}
