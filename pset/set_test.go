package pset

import (
	"slices"
	"testing"

	"github.com/hupe1980/collections/order"
	"github.com/hupe1980/collections/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ints = order.Natural[int]()

func TestSetBasics(t *testing.T) {
	s := Of(ints, 5, 1, 3, 3, 9)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []int{1, 3, 5, 9}, s.ToSlice())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(4))

	smaller := s.Remove(3)
	assert.Equal(t, []int{1, 5, 9}, smaller.ToSlice())
	assert.Equal(t, []int{1, 3, 5, 9}, s.ToSlice())

	assert.True(t, s.Equal(s.Remove(100)))

	lo, ok := s.Min()
	assert.True(t, ok)
	assert.Equal(t, 1, lo)

	hi, ok := s.Max()
	assert.True(t, ok)
	assert.Equal(t, 9, hi)

	_, ok = New(ints).Min()
	assert.False(t, ok)

	assert.Equal(t, []int{9, 5, 3, 1}, slices.Collect(s.Backward()))
	assert.Equal(t, []int{5, 9}, slices.Collect(s.From(4)))
	assert.Equal(t, []int{3, 1}, slices.Collect(s.BackwardFrom(4)))
}

func TestSetClearIdempotent(t *testing.T) {
	s := Of(ints, 1, 2, 3)

	once := s.Clear()
	twice := once.Clear()

	assert.True(t, once.IsEmpty())
	assert.True(t, twice.IsEmpty())
	assert.True(t, once.Equal(twice))
	assert.Equal(t, []int{1, 2}, twice.Add(2).Add(1).ToSlice())
}

func TestSetRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(3)

	xs := rng.Perm(500)
	s := Collect(ints, slices.Values(xs))

	slices.Sort(xs)
	assert.Equal(t, xs, s.ToSlice())
	require.NoError(t, s.Validate())
}

func TestSetAlgebra(t *testing.T) {
	a := Of(ints, 1, 2, 3, 4, 5)
	b := Of(ints, 4, 5, 6, 7)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, a.Union(b).ToSlice())
	assert.Equal(t, []int{4, 5}, a.Intersect(b).ToSlice())
	assert.Equal(t, []int{1, 2, 3}, a.Difference(b).ToSlice())
	assert.Equal(t, []int{6, 7}, b.Difference(a).ToSlice())

	assert.True(t, a.Intersect(b).IsSubset(a))
	assert.True(t, New(ints).IsSubset(a))
	assert.False(t, a.IsSubset(b))

	assert.True(t, a.Equal(Of(ints, 5, 4, 3, 2, 1)))
	assert.False(t, a.Equal(b))
	assert.Equal(t, order.Less, a.Compare(b))
	assert.Equal(t, order.Greater, a.Compare(Of(ints, 1, 2, 3)))
	assert.Equal(t, order.Equal, a.Compare(a.Add(1)))
}

func TestSetRandomAlgebra(t *testing.T) {
	rng := testutil.NewRNG(99)

	for range 30 {
		a := Of(ints, rng.Ints(rng.Intn(100), 150)...)
		b := Of(ints, rng.Ints(rng.Intn(100), 150)...)

		u, i, d := a.Union(b), a.Intersect(b), a.Difference(b)
		require.NoError(t, u.Validate())
		require.NoError(t, i.Validate())
		require.NoError(t, d.Validate())

		for x := range 150 {
			inA, inB := a.Contains(x), b.Contains(x)
			require.Equal(t, inA || inB, u.Contains(x))
			require.Equal(t, inA && inB, i.Contains(x))
			require.Equal(t, inA && !inB, d.Contains(x))
		}

		require.Equal(t, u.Len(), d.Len()+b.Len())
	}
}

func TestSetFunctional(t *testing.T) {
	s := Of(ints, 1, 2, 3, 4)

	assert.True(t, s.Every(func(x int) bool { return x > 0 }))
	assert.True(t, s.Any(func(x int) bool { return x == 4 }))
	assert.False(t, s.Any(func(x int) bool { return x > 4 }))

	assert.Equal(t, []int{2, 4}, s.Filter(func(x int) bool { return x%2 == 0 }).ToSlice())

	parity := Map(s, ints, func(x int) int { return x % 2 })
	assert.Equal(t, []int{0, 1}, parity.ToSlice())

	sum := FoldLeft(s, 0, func(acc, x int) int { return acc*10 + x })
	rev := FoldRight(s, 0, func(x, acc int) int { return acc*10 + x })
	assert.Equal(t, 1234, sum)
	assert.Equal(t, 4321, rev)
}
