// Package hash checksums checkpoint payloads with CRC32-Castagnoli.
//
// One-shot:
//
//	sum := hash.CRC32C(data)
//
// Streaming:
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	sum := h.Sum32()
//
// Go's crc32 package uses SSE4.2 or the ARM CRC extension when present.
package hash
