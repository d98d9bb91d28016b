package conv

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrOverflow is returned when a value does not fit the target type.
var ErrOverflow = errors.New("conv: integer overflow")

// IntToUint32 converts v, failing for negative values and values above
// math.MaxUint32.
func IntToUint32(v int) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, errors.Wrapf(ErrOverflow, "%d does not fit uint32", v)
	}

	return uint32(v), nil
}

// Int64ToInt converts v, failing for negative values and values above
// math.MaxInt.
func Int64ToInt(v int64) (int, error) {
	if v < 0 || uint64(v) > uint64(math.MaxInt) {
		return 0, errors.Wrapf(ErrOverflow, "%d does not fit a non-negative int", v)
	}

	return int(v), nil
}

// Uint64ToInt converts v, failing for values above math.MaxInt.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, errors.Wrapf(ErrOverflow, "%d does not fit int", v)
	}

	return int(v), nil
}
