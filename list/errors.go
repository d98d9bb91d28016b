package list

import "github.com/cockroachdb/errors"

// ErrIndexOutOfRange is the cause of the panic raised when an index-based
// operation is called with an index outside the list.
var ErrIndexOutOfRange = errors.New("list: index out of range")

func outOfRange(i, size int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "index %d with length %d", i, size)
}
