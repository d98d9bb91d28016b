package checkpoint

import (
	"runtime"

	"github.com/hupe1980/collections/codec"
	"github.com/hupe1980/collections/internal/compress"
)

// Compression selects how blobs are compressed.
type Compression = compress.Algorithm

const (
	CompressionNone = compress.AlgorithmNone
	CompressionLZ4  = compress.AlgorithmLZ4
	CompressionZstd = compress.AlgorithmZstd
)

type options struct {
	codec       codec.Codec
	compression Compression
	logger      *Logger
	metrics     MetricsCollector
	prefix      string
	retain      int
	workers     int64
	memoryLimit int64
	rateLimit   int64
}

func defaultOptions() options {
	return options{
		codec:       codec.Default,
		compression: CompressionLZ4,
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
		workers:     int64(runtime.GOMAXPROCS(0)),
	}
}

// Option configures a Manager.
type Option func(*options)

// WithCodec sets the codec new checkpoints are encoded with. Restore always
// uses the codec recorded in the manifest.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression sets the compression of new blobs. Defaults to LZ4.
func WithCompression(algo Compression) Option {
	return func(o *options) { o.compression = algo }
}

// WithLogger sets the logger. Defaults to NoopLogger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector sets the metrics sink.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metrics = mc
		}
	}
}

// WithPrefix keeps every blob of the manager below prefix, so several
// managers can share a store.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRetain prunes all but the newest n generations after each successful
// checkpoint. Zero keeps everything.
func WithRetain(n int) Option {
	return func(o *options) { o.retain = max(n, 0) }
}

// WithConcurrency bounds the number of participants encoded and written at
// once. Defaults to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) { o.workers = int64(max(n, 1)) }
}

// WithMemoryLimit bounds the bytes of encoded participants held in memory
// at once. A participant larger than the limit is processed alone.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) { o.memoryLimit = max(bytes, 0) }
}

// WithRateLimit bounds store traffic in bytes per second.
func WithRateLimit(bytesPerSec int64) Option {
	return func(o *options) { o.rateLimit = max(bytesPerSec, 0) }
}
