// Package compress frames checkpoint payloads with optional LZ4 or Zstandard
// compression.
//
// A frame is [algorithm uint8][raw length uint32 LE][body]. Encode falls back
// to AlgorithmNone when compression saves less than a tenth of the input, so
// Decode always reads the algorithm from the frame rather than from config.
package compress

import (
	"encoding/binary"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/collections/internal/conv"
)

// Algorithm selects the block compressor.
type Algorithm uint8

const (
	AlgorithmNone Algorithm = 0
	AlgorithmLZ4  Algorithm = 1
	AlgorithmZstd Algorithm = 2
)

const headerSize = 5

var (
	// ErrCorrupt is returned for frames that cannot be decoded.
	ErrCorrupt = errors.New("compress: corrupt frame")
	// ErrUnknownAlgorithm is returned for algorithm names or ids that are
	// not supported.
	ErrUnknownAlgorithm = errors.New("compress: unknown algorithm")
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmLZ4:
		return "lz4"
	case AlgorithmZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a name written by Algorithm.String back to its value.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", "none":
		return AlgorithmNone, nil
	case "lz4":
		return AlgorithmLZ4, nil
	case "zstd":
		return AlgorithmZstd, nil
	default:
		return 0, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
	}
}

var (
	encoders sync.Pool
	decoders sync.Pool
)

func getEncoder() *zstd.Encoder {
	if v := encoders.Get(); v != nil {
		return v.(*zstd.Encoder)
	}

	// NewWriter only fails on invalid options.
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))

	return enc
}

func getDecoder() *zstd.Decoder {
	if v := decoders.Get(); v != nil {
		return v.(*zstd.Decoder)
	}

	dec, _ := zstd.NewReader(nil)

	return dec
}

// Encode compresses data with algo and returns the frame.
func Encode(algo Algorithm, data []byte) ([]byte, error) {
	rawLen, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, errors.Wrap(err, "compress: payload too large")
	}

	var body []byte

	switch algo {
	case AlgorithmNone:
	case AlgorithmLZ4:
		body, err = encodeLZ4(data)
	case AlgorithmZstd:
		enc := getEncoder()
		body = enc.EncodeAll(data, nil)
		encoders.Put(enc)
	default:
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "id %d", algo)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "compress: %s", algo)
	}

	if len(body) == 0 || len(body) > len(data)*9/10 {
		algo, body = AlgorithmNone, data
	}

	frame := make([]byte, headerSize+len(body))
	frame[0] = byte(algo)
	binary.LittleEndian.PutUint32(frame[1:], rawLen)
	copy(frame[headerSize:], body)

	return frame, nil
}

func encodeLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, err
	}

	// n == 0 means incompressible.
	return dst[:n], nil
}

// Decode returns the payload held by frame.
func Decode(frame []byte) ([]byte, error) {
	if len(frame) < headerSize {
		return nil, errors.Wrapf(ErrCorrupt, "frame of %d bytes", len(frame))
	}

	algo := Algorithm(frame[0])
	size := int(binary.LittleEndian.Uint32(frame[1:]))
	body := frame[headerSize:]

	switch algo {
	case AlgorithmNone:
		if len(body) != size {
			return nil, errors.Wrapf(ErrCorrupt, "raw body has %d bytes, header says %d", len(body), size)
		}

		return body, nil
	case AlgorithmLZ4:
		out := make([]byte, size)

		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, errors.Wrap(ErrCorrupt, err.Error())
		}

		if n != size {
			return nil, errors.Wrapf(ErrCorrupt, "lz4 produced %d bytes, header says %d", n, size)
		}

		return out, nil
	case AlgorithmZstd:
		dec := getDecoder()
		defer decoders.Put(dec)

		out, err := dec.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, errors.Wrap(ErrCorrupt, err.Error())
		}

		if len(out) != size {
			return nil, errors.Wrapf(ErrCorrupt, "zstd produced %d bytes, header says %d", len(out), size)
		}

		return out, nil
	default:
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "id %d", algo)
	}
}

// FrameAlgorithm reports the algorithm recorded in frame.
func FrameAlgorithm(frame []byte) (Algorithm, bool) {
	if len(frame) < headerSize {
		return 0, false
	}

	return Algorithm(frame[0]), true
}
