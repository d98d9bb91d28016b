package checkpoint

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives checkpoint measurements. Implementations must
// be safe for concurrent use; RecordSave and RecordRestore are called from
// worker goroutines.
type MetricsCollector interface {
	// RecordSave is called after a participant was encoded and written.
	// bytes is the stored size.
	RecordSave(participant string, bytes int, d time.Duration, err error)

	// RecordRestore is called after a participant blob was read and
	// rebuilt.
	RecordRestore(participant string, bytes int, d time.Duration, err error)

	// RecordCheckpoint is called once per Checkpoint call.
	RecordCheckpoint(written, reused int, d time.Duration, err error)
}

// NoopMetricsCollector discards everything.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSave(string, int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordRestore(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCheckpoint(int, int, time.Duration, error) {}

// BasicMetricsCollector keeps counters in memory.
type BasicMetricsCollector struct {
	SaveCount          atomic.Int64
	SaveErrors         atomic.Int64
	SaveBytes          atomic.Int64
	RestoreCount       atomic.Int64
	RestoreErrors      atomic.Int64
	RestoreBytes       atomic.Int64
	CheckpointCount    atomic.Int64
	CheckpointErrors   atomic.Int64
	CheckpointNanos    atomic.Int64
	ParticipantsReused atomic.Int64
}

func (b *BasicMetricsCollector) RecordSave(_ string, bytes int, _ time.Duration, err error) {
	b.SaveCount.Add(1)

	if err != nil {
		b.SaveErrors.Add(1)
		return
	}

	b.SaveBytes.Add(int64(bytes))
}

func (b *BasicMetricsCollector) RecordRestore(_ string, bytes int, _ time.Duration, err error) {
	b.RestoreCount.Add(1)

	if err != nil {
		b.RestoreErrors.Add(1)
		return
	}

	b.RestoreBytes.Add(int64(bytes))
}

func (b *BasicMetricsCollector) RecordCheckpoint(_, reused int, d time.Duration, err error) {
	b.CheckpointCount.Add(1)
	b.CheckpointNanos.Add(d.Nanoseconds())

	if err != nil {
		b.CheckpointErrors.Add(1)
		return
	}

	b.ParticipantsReused.Add(int64(reused))
}

// GetStats returns a snapshot of the counters.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		SaveCount:          b.SaveCount.Load(),
		SaveErrors:         b.SaveErrors.Load(),
		SaveBytes:          b.SaveBytes.Load(),
		RestoreCount:       b.RestoreCount.Load(),
		RestoreErrors:      b.RestoreErrors.Load(),
		RestoreBytes:       b.RestoreBytes.Load(),
		CheckpointCount:    b.CheckpointCount.Load(),
		CheckpointErrors:   b.CheckpointErrors.Load(),
		ParticipantsReused: b.ParticipantsReused.Load(),
	}

	if s.CheckpointCount > 0 {
		s.CheckpointAvgNanos = b.CheckpointNanos.Load() / s.CheckpointCount
	}

	return s
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	SaveCount          int64
	SaveErrors         int64
	SaveBytes          int64
	RestoreCount       int64
	RestoreErrors      int64
	RestoreBytes       int64
	CheckpointCount    int64
	CheckpointErrors   int64
	CheckpointAvgNanos int64
	ParticipantsReused int64
}
