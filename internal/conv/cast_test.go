//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want uint32
		err  bool
	}{
		{"zero", 0, 0, false},
		{"positive", 123, 123, false},
		{"max", math.MaxUint32, math.MaxUint32, false},
		{"negative", -1, 0, true},
		{"too large", math.MaxUint32 + 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntToUint32(tt.in)
			if tt.err {
				require.ErrorIs(t, err, ErrOverflow)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInt64ToInt(t *testing.T) {
	got, err := Int64ToInt(math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)

	_, err = Int64ToInt(-5)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestUint64ToInt(t *testing.T) {
	got, err := Uint64ToInt(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = Uint64ToInt(math.MaxUint64)
	require.ErrorIs(t, err, ErrOverflow)
}
