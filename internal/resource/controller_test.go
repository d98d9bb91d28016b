package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expired(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	t.Cleanup(cancel)

	return ctx
}

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(t.Context(), 50))
	require.NoError(t, c.AcquireMemory(t.Context(), 40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	assert.ErrorIs(t, c.AcquireMemory(expired(t), 20), context.DeadlineExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	require.NoError(t, c.AcquireMemory(t.Context(), 20))
	assert.Equal(t, int64(60), c.MemoryUsage())
}

func TestController_OversizedRequestRunsAlone(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(t.Context(), 500))
	assert.Equal(t, int64(500), c.MemoryUsage())
	assert.Error(t, c.AcquireMemory(expired(t), 1))

	c.ReleaseMemory(500)
	require.NoError(t, c.AcquireMemory(t.Context(), 1))
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(t.Context(), 1000))
	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_Workers(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2})
	assert.Equal(t, 2, c.Workers())

	require.NoError(t, c.AcquireWorker(t.Context()))
	require.NoError(t, c.AcquireWorker(t.Context()))
	assert.Error(t, c.AcquireWorker(expired(t)))

	c.ReleaseWorker()
	require.NoError(t, c.AcquireWorker(t.Context()))
}

func TestController_IOAdmitsLargeRequests(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	// The bucket starts full, so one burst passes without waiting.
	require.NoError(t, c.AcquireIO(t.Context(), 1<<20))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.Error(t, c.AcquireIO(ctx, 1<<20))
}

func TestNilController(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(t.Context(), 10))
	require.NoError(t, c.AcquireWorker(t.Context()))
	require.NoError(t, c.AcquireIO(t.Context(), 10))
	c.ReleaseMemory(10)
	c.ReleaseWorker()
	assert.Zero(t, c.MemoryUsage())
	assert.Equal(t, 1, c.Workers())
}
