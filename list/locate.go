package list

import "math/bits"

// locate maps a logical index to its data block and the offset inside it.
//
// With up = ⌈s/2⌉ for super block s = bitlen(i)-1, the high bits of i above
// the offset select the block within the super block, and the blocks before
// super block s add up to 2^⌊s/2⌋ + 2^⌈s/2⌉. Both terms fold into
// (i >> up) + 2^up because i >> up already carries the 2^⌊s/2⌋ from the
// leading bit. Index 0 yields up = 0 and lands in block 1.
func locate(i uint64) (block, offset uint64) {
	up := uint(bits.Len64(i)) >> 1
	return i>>up + 1<<up, i & (1<<up - 1)
}

// locateReadable computes the same mapping as locate step by step through
// the super block of i.
func locateReadable(i uint64) (block, offset uint64) {
	if i == 0 {
		return 1, 0
	}

	// i in binary: leading zeros, a 1, ⌊s/2⌋ block bits, ⌈s/2⌉ offset bits.
	s := 63 - uint(bits.LeadingZeros64(i))
	down := s >> 1
	up := (s + 1) >> 1

	blockMask := uint64(1)<<down - 1
	offsetMask := uint64(1)<<up - 1

	// blocks in super blocks 0..s-1 plus the leading empty block:
	// 1 + Σ_{t<s} 2^⌊t/2⌋ = 2^⌊s/2⌋ + 2^⌈s/2⌉ - 1
	before := uint64(1)<<down + uint64(1)<<up - 1

	return before + 1 + (i>>up)&blockMask, i & offsetMask
}

// dataBlockSize returns the capacity of data block b, b ≥ 1.
func dataBlockSize(b int) int {
	return 1 << bits.Len(uint(b/3))
}

// newIndexLength returns the index block length that follows n.
// It keeps the two most significant bits of n and increments them:
// 1, 2, 3, 4, 6, 8, 12, 16, 24, ...
func newIndexLength(n int) int {
	if n <= 1 {
		return 2
	}

	s := bits.Len(uint(n)) - 2

	return (n>>s + 1) << s
}

// isIndexBoundary reports whether b is an index block length on the growth
// schedule, i.e. b has at most two significant bits.
func isIndexBoundary(b int) bool {
	u := uint(b)
	return u != 0 && bits.Len(u)-bits.TrailingZeros(u) <= 2
}
