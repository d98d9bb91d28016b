package hash

import (
	"hash"
	"hash/crc32"

	"github.com/cockroachdb/errors"
)

// ErrMismatch is returned by Verify when data does not hash to the
// expected sum.
var ErrMismatch = errors.New("hash: crc32c mismatch")

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// NewCRC32C returns a streaming CRC32-Castagnoli hash.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}

// Verify checks data against want.
func Verify(data []byte, want uint32) error {
	if got := CRC32C(data); got != want {
		return errors.Wrapf(ErrMismatch, "got %08x, want %08x", got, want)
	}

	return nil
}
