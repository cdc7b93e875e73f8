// Package resource bounds the memory, fetch concurrency and IO bandwidth the
// icon cache may use. A nil *Controller imposes no limits.
package resource

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned by AcquireMemory when a reservation can
// never fit under the configured limit.
var ErrMemoryLimitExceeded = errors.New("resource: memory limit exceeded")

// Config holds resource limits. Zero values mean unlimited, except
// MaxFetchWorkers which defaults to 4.
type Config struct {
	// MemoryLimitBytes caps decoded icon bytes held in memory.
	MemoryLimitBytes int64

	// MaxFetchWorkers caps concurrent blob fetches during prefetch.
	MaxFetchWorkers int64

	// IOLimitBytesPerSec caps blob store read and write throughput.
	IOLimitBytesPerSec int64
}

const defaultFetchWorkers = 4

// Controller hands out memory, worker and IO budget.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	fetchSem *semaphore.Weighted

	ioLimiter *rate.Limiter
}

// NewController creates a controller for cfg.
func NewController(cfg Config) *Controller {
	if cfg.MaxFetchWorkers <= 0 {
		cfg.MaxFetchWorkers = defaultFetchWorkers
	}

	c := &Controller{
		cfg:      cfg,
		fetchSem: semaphore.NewWeighted(cfg.MaxFetchWorkers),
	}
	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// Config returns the effective limits.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{MaxFetchWorkers: defaultFetchWorkers}
	}
	return c.cfg
}

// AcquireMemory reserves bytes, blocking until they fit or ctx is done.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.memSem != nil {
		if bytes > c.cfg.MemoryLimitBytes {
			return ErrMemoryLimitExceeded
		}
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}
	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory reserves bytes without blocking.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}
	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return false
	}
	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory returns bytes reserved earlier.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the reserved bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireFetch takes a fetch worker slot, blocking while all are busy.
func (c *Controller) AcquireFetch(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.fetchSem.Acquire(ctx, 1)
}

// TryAcquireFetch takes a fetch worker slot without blocking.
func (c *Controller) TryAcquireFetch() bool {
	if c == nil {
		return true
	}
	return c.fetchSem.TryAcquire(1)
}

// ReleaseFetch returns a fetch worker slot.
func (c *Controller) ReleaseFetch() {
	if c == nil {
		return
	}
	c.fetchSem.Release(1)
}

// AcquireIO waits until the IO limit admits bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil || bytes <= 0 {
		return nil
	}
	// WaitN rejects requests above the burst; split them.
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// TryAcquireIO takes IO tokens without waiting.
func (c *Controller) TryAcquireIO(bytes int) bool {
	if c == nil || c.ioLimiter == nil {
		return true
	}
	return c.ioLimiter.AllowN(time.Now(), bytes)
}
