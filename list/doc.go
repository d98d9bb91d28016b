// Package list implements a growable dynamic array with O(1) random access,
// amortized O(1) append and removal at the end, and O(√n) wasted space.
//
// # Layout
//
// A List stores its elements in fixed-capacity data blocks referenced from an
// index block. Slot 0 of the index block is always an empty data block, so the
// element with index 0 lives in data block 1. Data blocks are grouped into
// super blocks: super block s holds 2^⌊s/2⌋ data blocks of capacity 2^⌈s/2⌉,
// so block count and block capacity double in turns instead of together.
//
//	super block   0   1   2     3     4         5
//	blocks        1   1   2     2     4         4
//	capacity      1   2   2     4     4         8
//	indices       1   2-3 4-7   8-15  16-31     32-63
//
// The location of an index is a pure function of the index (see locate), so
// no growth history is stored beyond the size. Data blocks are never moved
// once allocated: only the index block is reallocated on growth, which keeps
// element addresses returned by Ref stable.
//
// The index block grows 1, 2, 3, 4, 6, 8, 12, 16, 24, ... and shrinks along
// the same schedule. One empty data block is kept as a spare when elements
// are removed, so alternating Add and RemoveLast at a block boundary does not
// allocate.
//
// # Errors
//
// Out-of-range indices passed to At, Put, Ref, Insert, Remove or Swap are
// programmer errors and panic with an error wrapping ErrIndexOutOfRange.
// Operations that may legitimately find nothing (Get, RemoveLast, First,
// Last, Max, Min) report absence with a boolean instead.
//
// A List is not safe for concurrent mutation.
package list
