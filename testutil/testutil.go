package testutil

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Bool returns a pseudo-random bool.
func (r *RNG) Bool() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(2) == 1
}

// Ints returns n pseudo-random values in [0, max).
// Locks only once per call (preferred over calling Intn in a loop).
func (r *RNG) Ints(n, max int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Intn(max)
	}

	return out
}

// Perm returns a pseudo-random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Shuffle pseudo-randomizes the order of n elements using swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(n, swap)
}

// RequirePanicsWith asserts that f panics with an error matching target
// under errors.Is.
func RequirePanicsWith(t testing.TB, target error, f func()) {
	t.Helper()

	var recovered any

	func() {
		defer func() { recovered = recover() }()
		f()
	}()

	require.NotNil(t, recovered, "expected panic matching %v", target)

	err, ok := recovered.(error)
	require.True(t, ok, "panic value %v is not an error", recovered)
	require.True(t, errors.Is(err, target), "panic %v does not match %v", err, target)
}

// RequireAssertionFailure asserts that f panics with an assertion failure.
func RequireAssertionFailure(t testing.TB, f func()) {
	t.Helper()

	var recovered any

	func() {
		defer func() { recovered = recover() }()
		f()
	}()

	require.NotNil(t, recovered, "expected assertion failure")

	err, ok := recovered.(error)
	require.True(t, ok, "panic value %v is not an error", recovered)
	require.True(t, errors.HasAssertionFailure(err), "panic %v is not an assertion failure", err)
}
