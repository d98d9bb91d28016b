package ordmap

import "github.com/cockroachdb/errors"

// ErrInvalidDegree is the cause of the panic raised by NewBTree for a degree
// below 2.
var ErrInvalidDegree = errors.New("ordmap: invalid b-tree degree")
