// Package testutil provides testing utilities for the collections module.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source for reproducible operation sequences
// and helpers for asserting panics raised on precondition violations.
//
// # Random Operation Sequences
//
//	rng := testutil.NewRNG(seed)
//	keys := rng.Ints(1000, 500)   // 1000 values in [0, 500)
//	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
//
// # Precondition Failures
//
//	testutil.RequirePanicsWith(t, list.ErrIndexOutOfRange, func() { l.At(10) })
package testutil
