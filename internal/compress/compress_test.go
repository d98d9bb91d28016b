package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/collections/testutil"
)

func TestEncodeDecode(t *testing.T) {
	compressible := bytes.Repeat([]byte("collections "), 512)

	rng := testutil.NewRNG(7)
	random := make([]byte, 4096)

	for i := range random {
		random[i] = byte(rng.Intn(256))
	}

	for _, algo := range []Algorithm{AlgorithmNone, AlgorithmLZ4, AlgorithmZstd} {
		t.Run(algo.String(), func(t *testing.T) {
			frame, err := Encode(algo, compressible)
			require.NoError(t, err)

			got, ok := FrameAlgorithm(frame)
			require.True(t, ok)
			assert.Equal(t, algo, got)

			if algo != AlgorithmNone {
				assert.Less(t, len(frame), len(compressible))
			}

			out, err := Decode(frame)
			require.NoError(t, err)
			assert.Equal(t, compressible, out)

			frame, err = Encode(algo, random)
			require.NoError(t, err)

			got, _ = FrameAlgorithm(frame)
			assert.Equal(t, AlgorithmNone, got, "incompressible input is stored raw")

			out, err = Decode(frame)
			require.NoError(t, err)
			assert.Equal(t, random, out)
		})
	}
}

func TestEmptyPayload(t *testing.T) {
	frame, err := Encode(AlgorithmZstd, nil)
	require.NoError(t, err)

	out, err := Decode(frame)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := Decode([]byte{1, 2})
	assert.ErrorIs(t, err, ErrCorrupt)

	frame, err := Encode(AlgorithmZstd, bytes.Repeat([]byte("a"), 1000))
	require.NoError(t, err)

	frame[len(frame)-1] ^= 0xff
	frame[len(frame)-2] ^= 0xff

	_, err = Decode(frame)
	assert.Error(t, err)

	_, err = Decode([]byte{9, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestParseAlgorithm(t *testing.T) {
	for _, algo := range []Algorithm{AlgorithmNone, AlgorithmLZ4, AlgorithmZstd} {
		got, err := ParseAlgorithm(algo.String())
		require.NoError(t, err)
		assert.Equal(t, algo, got)
	}

	_, err := ParseAlgorithm("brotli")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}
