// Package promcollector exports checkpoint metrics to Prometheus.
package promcollector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/collections/checkpoint"
)

// Collector implements checkpoint.MetricsCollector.
type Collector struct {
	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	bytes     *prometheus.CounterVec
	reused    prometheus.Counter
	written   prometheus.Counter
}

var _ checkpoint.MetricsCollector = (*Collector)(nil)

// New registers the checkpoint metrics with reg under namespace. A nil reg
// registers with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkpoint",
			Name:      "operation_duration_seconds",
			Help:      "Duration of checkpoint operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkpoint",
			Name:      "participant_operations_total",
			Help:      "Participant saves and restores.",
		}, []string{"op", "participant", "status"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkpoint",
			Name:      "bytes_total",
			Help:      "Stored bytes written and read.",
		}, []string{"op"}),
		reused: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkpoint",
			Name:      "participants_reused_total",
			Help:      "Clean participants carried over without rewriting.",
		}),
		written: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkpoint",
			Name:      "participants_written_total",
			Help:      "Dirty participants written.",
		}),
	}

	for _, m := range []prometheus.Collector{c.opLatency, c.ops, c.bytes, c.reused, c.written} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// MustNew is New that panics on error.
func MustNew(reg prometheus.Registerer, namespace string) *Collector {
	c, err := New(reg, namespace)
	if err != nil {
		panic(err)
	}

	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}

	return "success"
}

func (c *Collector) RecordSave(participant string, bytes int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("save", status(err)).Observe(d.Seconds())
	c.ops.WithLabelValues("save", participant, status(err)).Inc()

	if err == nil {
		c.bytes.WithLabelValues("save").Add(float64(bytes))
	}
}

func (c *Collector) RecordRestore(participant string, bytes int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("restore", status(err)).Observe(d.Seconds())
	c.ops.WithLabelValues("restore", participant, status(err)).Inc()

	if err == nil {
		c.bytes.WithLabelValues("restore").Add(float64(bytes))
	}
}

func (c *Collector) RecordCheckpoint(written, reused int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("checkpoint", status(err)).Observe(d.Seconds())

	if err == nil {
		c.written.Add(float64(written))
		c.reused.Add(float64(reused))
	}
}
