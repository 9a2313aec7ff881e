// Package worker runs batches of independent jobs on a bounded goroutine pool.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/dwrs/pkg/logger"
	"github.com/okian/dwrs/pkg/metrics"
)

const (
	defaultQueueMultiplier = 4 // queue slots per worker
	poolShutdownTimeout    = 30 * time.Second
)

// Job is one unit of work. Jobs must not block on other jobs of the same pool.
type Job func(ctx context.Context)

// Pool is a fixed set of workers reading from a bounded job queue.
type Pool struct {
	size     int
	capacity int
	name     string
	logger   logger.Logger

	jobs    chan Job
	quit    chan struct{}
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	started atomic.Bool
	active  atomic.Int64
	wg      sync.WaitGroup
}

// NewPool creates a pool of size workers. A size below one uses runtime.NumCPU().
func NewPool(size int, opts ...Option) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pool{
		size:     size,
		capacity: size * defaultQueueMultiplier,
		name:     "pool",
		logger:   logger.Nop(),
		quit:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named(p.name)
	p.jobs = make(chan Job, p.capacity)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Start launches the workers. They exit when ctx is cancelled or the pool is
// shut down. Calling Start twice has no effect.
func (p *Pool) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	p.wg.Add(p.size)
	for i := 0; i < p.size; i++ {
		go p.run(ctx, i)
	}
	go func() {
		select {
		case <-ctx.Done():
			p.stop()
		case <-p.quit:
		}
	}()
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", p.size), logger.Int("queue", p.capacity))
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.exec(ctx, id, job)
		}
	}
}

func (p *Pool) exec(ctx context.Context, id int, job Job) {
	metrics.UpdateWorkerActiveCount(int(p.active.Add(1)))
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(ctx, "job panicked", logger.Int("worker_id", id), logger.Any("panic", r))
		}
		metrics.UpdateWorkerActiveCount(int(p.active.Add(-1)))
		metrics.RecordMatrixJob(float64(time.Since(start).Microseconds()) / 1000)
	}()
	job(ctx)
}

// Submit queues a job, blocking while the queue is full.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	if !p.started.Load() {
		return ErrNotStarted
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrStopped
	}
	select {
	case p.jobs <- job:
		return nil
	case <-p.quit:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes fn for every index in [0,n) on the pool and waits for all of
// them. It returns early with ctx's error when ctx is cancelled first.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		i := i
		err := p.Submit(ctx, func(ctx context.Context) {
			defer wg.Done()
			fn(ctx, i)
		})
		if err != nil {
			wg.Done()
			return fmt.Errorf("submit job %d: %w", i, err)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) stop() {
	p.once.Do(func() { close(p.quit) })
}

// Shutdown stops accepting jobs, lets queued jobs drain and waits for the
// workers or ctx, whichever comes first.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.stop()
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-shutdownCtx.Done():
		p.logger.Warn(ctx, "worker pool shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", shutdownCtx.Err())
	}
}
