package ordset

import (
	"slices"
	"testing"

	"github.com/hupe1980/collections/order"
	"github.com/hupe1980/collections/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ints = order.Natural[int]()

func TestSet(t *testing.T) {
	s := New(ints)

	assert.True(t, s.Add(3))
	assert.True(t, s.Add(1))
	assert.False(t, s.Add(3))
	assert.True(t, s.Add(2))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{1, 2, 3}, s.ToSlice())
	assert.Equal(t, []int{3, 2, 1}, slices.Collect(s.Backward()))
	assert.Equal(t, []int{2, 3}, slices.Collect(s.From(2)))
	assert.Equal(t, []int{2, 1}, slices.Collect(s.BackwardFrom(2)))

	assert.True(t, s.Remove(2))
	assert.False(t, s.Remove(2))
	assert.False(t, s.Contains(2))

	lo, ok := s.Min()
	assert.True(t, ok)
	assert.Equal(t, 1, lo)

	hi, ok := s.PopMax()
	assert.True(t, ok)
	assert.Equal(t, 3, hi)

	lo, ok = s.PopMin()
	assert.True(t, ok)
	assert.Equal(t, 1, lo)

	_, ok = s.PopMin()
	assert.False(t, ok)
	_, ok = s.Max()
	assert.False(t, ok)
	assert.True(t, s.IsEmpty())
}

func TestSetRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(17)
	xs := rng.Perm(1000)

	s := Collect(ints, slices.Values(xs))
	require.NoError(t, s.Validate())

	slices.Sort(xs)
	assert.Equal(t, xs, s.ToSlice())

	s.Clear()
	s.Clear()
	assert.True(t, s.IsEmpty())
	require.NoError(t, s.Validate())
}

func TestSetAlgebra(t *testing.T) {
	a := Of(ints, 1, 2, 3, 4, 5)
	b := Of(ints, 4, 5, 6, 7)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, a.Union(b).ToSlice())
	assert.Equal(t, []int{4, 5}, a.Intersect(b).ToSlice())
	assert.Equal(t, []int{1, 2, 3}, a.Difference(b).ToSlice())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, a.ToSlice())

	assert.True(t, a.Intersect(b).IsSubset(b))
	assert.False(t, b.IsSubset(a))
	assert.True(t, New(ints).IsSubset(a))

	assert.True(t, a.Equal(Of(ints, 5, 4, 3, 2, 1)))
	assert.False(t, a.Equal(b))
	assert.Equal(t, order.Less, a.Compare(b))
	assert.Equal(t, order.Greater, b.Compare(a))
	assert.Equal(t, order.Equal, a.Compare(a.Clone()))
}

func TestSetFunctional(t *testing.T) {
	s := Of(ints, 4, 3, 2, 1)

	assert.True(t, s.Every(func(x int) bool { return x < 5 }))
	assert.True(t, s.Any(func(x int) bool { return x == 2 }))
	assert.Equal(t, []int{1, 3}, s.Filter(func(x int) bool { return x%2 == 1 }).ToSlice())

	squares := Map(s, order.Reverse(ints), func(x int) int { return x * x })
	assert.Equal(t, []int{16, 9, 4, 1}, squares.ToSlice())

	assert.Equal(t, 1234, FoldLeft(s, 0, func(acc, x int) int { return acc*10 + x }))
	assert.Equal(t, 4321, FoldRight(s, 0, func(x, acc int) int { return acc*10 + x }))
}
