// Package arena provides a typed slot allocator addressed by index.
//
// Tree structures built on an Arena link their nodes through Index values
// instead of pointers, so rotations are index swaps and the whole structure
// can be copied or relocated without fixing up addresses.
//
// # Features
//
//   - Slots are stored in a list.List, so growth never moves a slot
//   - Index 0 is a reserved sentinel slot that is always addressable
//   - Freed slots are recycled in LIFO order
//   - A liveness bitset catches use of freed slots and double frees
//
// # Safety
//
// Addressing a slot that is not live panics with ErrInvalidIndex. An Arena
// is not safe for concurrent use.
package arena
