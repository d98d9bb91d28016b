package mmap

import (
	"io"
	"math"
	"os"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Mapping is a read-only memory-mapped file. It owns the mapped slice.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path read-only. An empty file yields an empty
// mapping that needs no unmapping.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "mmap: stat %s", path)
	}

	size := fi.Size()
	if size == 0 {
		return &Mapping{}, nil
	}

	if size < 0 || size > math.MaxInt {
		return nil, errors.Wrapf(ErrInvalidSize, "%s has %d bytes", path, size)
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, errors.Wrapf(err, "mmap: map %s", path)
	}

	return &Mapping{data: data, unmap: unmap}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}

	return nil
}

// Bytes returns the mapped bytes, or nil once the mapping is closed.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}

	return m.data
}

// Size returns the length of the mapping in bytes.
func (m *Mapping) Size() int { return len(m.data) }

// Advise passes an access hint to the kernel.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}

	if len(m.data) == 0 {
		return nil
	}

	return osAdvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}

	if off < 0 {
		return 0, ErrInvalidOffset
	}

	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}

	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}
