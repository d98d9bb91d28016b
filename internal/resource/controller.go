package resource

import (
	"context"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits. Zero means unlimited, except MaxWorkers,
// which defaults to 1.
type Config struct {
	MemoryLimitBytes   int64
	MaxWorkers         int64
	IOLimitBytesPerSec int64
}

// Controller enforces a Config.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted
	memUsed atomic.Int64

	workers *semaphore.Weighted

	io *rate.Limiter
}

// NewController returns a controller for cfg.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}

	c := &Controller{
		cfg:     cfg,
		workers: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.io = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Workers returns the worker limit.
func (c *Controller) Workers() int {
	if c == nil {
		return 1
	}

	return int(c.cfg.MaxWorkers)
}

// memoryWeight caps a request at the limit so a single payload larger than
// the whole budget still runs, alone.
func (c *Controller) memoryWeight(bytes int64) int64 {
	return min(bytes, c.cfg.MemoryLimitBytes)
}

// AcquireMemory blocks until bytes fit into the memory budget.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, c.memoryWeight(bytes)); err != nil {
			return errors.Wrap(err, "resource: acquire memory")
		}
	}

	c.memUsed.Add(bytes)

	return nil
}

// ReleaseMemory returns bytes taken by AcquireMemory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(c.memoryWeight(bytes))
	}

	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the bytes currently held.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}

	return c.memUsed.Load()
}

// AcquireWorker blocks until a worker slot is free.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}

	return c.workers.Acquire(ctx, 1)
}

// ReleaseWorker frees a slot taken by AcquireWorker.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}

	c.workers.Release(1)
}

// AcquireIO waits until the rate limit admits bytes. Requests larger than
// one second of budget are admitted in burst-sized steps.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.io == nil {
		return nil
	}

	burst := c.io.Burst()

	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.io.WaitN(ctx, n); err != nil {
			return errors.Wrap(err, "resource: acquire io")
		}

		bytes -= n
	}

	return nil
}
