package blobstore

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// ErrNotFound is returned when a blob does not exist. Implementations return
// an error for which errors.Is(err, ErrNotFound) holds.
var ErrNotFound = os.ErrNotExist

// ErrConflict is returned by PutIfNotExists when the blob already exists.
var ErrConflict = errors.New("blobstore: blob already exists")

// BlobStore reads and writes named blobs. Implementations must be safe for
// concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names starting with prefix in ascending order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// ConditionalStore is implemented by stores that can create a blob only
// when the name is unused.
type ConditionalStore interface {
	BlobStore
	PutIfNotExists(ctx context.Context, name string, data []byte) error
}

// Blob is a read-only handle to a blob.
type Blob interface {
	// ReadAt follows io.ReaderAt semantics.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the length of the blob in bytes.
	Size() int64
	Close() error
}

// Mappable is implemented by blobs whose bytes are directly addressable.
// The slice is valid until the blob is closed.
type Mappable interface {
	Bytes() ([]byte, error)
}

// ReadAll opens name and returns its whole content.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	if m, ok := blob.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, errors.Wrapf(err, "blobstore: map %s", name)
		}

		return append([]byte(nil), data...), nil
	}

	buf := make([]byte, blob.Size())

	n, err := blob.ReadAt(ctx, buf, 0)
	if err != nil && !(errors.Is(err, io.EOF) && n == len(buf)) {
		return nil, errors.Wrapf(err, "blobstore: read %s", name)
	}

	if n != len(buf) {
		return nil, errors.Wrapf(io.ErrUnexpectedEOF, "blobstore: %s: read %d of %d bytes", name, n, len(buf))
	}

	return buf, nil
}

// BytesBlob is a Blob over an in-memory byte slice.
type BytesBlob []byte

func (b BytesBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if off < 0 {
		return 0, errors.Newf("blobstore: negative offset %d", off)
	}

	if off >= int64(len(b)) {
		if len(p) == 0 {
			return 0, nil
		}

		return 0, io.EOF
	}

	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (b BytesBlob) Size() int64 { return int64(len(b)) }

func (b BytesBlob) Close() error { return nil }

func (b BytesBlob) Bytes() ([]byte, error) { return b, nil }
