package promcollector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/collections/blobstore"
	"github.com/hupe1980/collections/checkpoint"
	"github.com/hupe1980/collections/list"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "test")
	require.NoError(t, err)

	c.RecordSave("items", 100, time.Millisecond, nil)
	c.RecordSave("items", 0, time.Millisecond, errors.New("boom"))
	c.RecordRestore("items", 40, time.Millisecond, nil)
	c.RecordCheckpoint(2, 3, time.Second, nil)
	c.RecordCheckpoint(5, 5, time.Second, errors.New("boom"))

	assert.InDelta(t, 100, testutil.ToFloat64(c.bytes.WithLabelValues("save")), 0)
	assert.InDelta(t, 40, testutil.ToFloat64(c.bytes.WithLabelValues("restore")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.ops.WithLabelValues("save", "items", "error")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(c.written), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(c.reused), 0)
	assert.Equal(t, 5, testutil.CollectAndCount(c.opLatency))
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := New(reg, "dup")
	require.NoError(t, err)

	_, err = New(reg, "dup")
	require.Error(t, err)
	assert.Panics(t, func() { MustNew(reg, "dup") })
}

func TestCollectorWithManager(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	c := MustNew(reg, "app")

	m := checkpoint.New(blobstore.NewMemoryStore(), checkpoint.WithMetricsCollector(c))
	require.NoError(t, m.Register("items", checkpoint.List(list.FromSlice([]int{1, 2}))))

	_, err := m.Checkpoint(ctx)
	require.NoError(t, err)

	_, err = m.Checkpoint(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(c.written), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.reused), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.ops.WithLabelValues("save", "items", "success")), 0)
}
