package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Errors returned by Submit
var (
	ErrNotStarted = errors.New("worker pool not started")
	ErrQueueFull  = errors.New("worker pool queue is full")
)

// Task is a unit of background work.
type Task func(ctx context.Context) error

// WorkerPool runs tasks on a fixed set of goroutines fed by a bounded queue.
type WorkerPool struct {
	maxWorkers int
	queue      chan Task
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	mu      sync.RWMutex
	started bool
	stopped bool

	active      int32
	totalTasks  int64
	failedTasks int64
	avgExecTime int64 // nanoseconds
}

// NewWorkerPool creates a pool with maxWorkers goroutines and a queue of
// queueSize pending tasks.
func NewWorkerPool(maxWorkers, queueSize int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = maxWorkers * 10
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		maxWorkers: maxWorkers,
		queue:      make(chan Task, queueSize),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the workers.
func (p *WorkerPool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return errors.New("worker pool already started")
	}

	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	p.started = true
	return nil
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for task := range p.queue {
		if task == nil {
			continue
		}
		p.run(task)
	}
}

func (p *WorkerPool) run(task Task) {
	start := time.Now()
	atomic.AddInt32(&p.active, 1)
	atomic.AddInt64(&p.totalTasks, 1)

	if err := task(p.ctx); err != nil {
		atomic.AddInt64(&p.failedTasks, 1)
	}

	elapsed := time.Since(start).Nanoseconds()
	oldAvg := atomic.LoadInt64(&p.avgExecTime)
	atomic.StoreInt64(&p.avgExecTime, (oldAvg*9+elapsed)/10)
	atomic.AddInt32(&p.active, -1)
}

// Submit queues a task without blocking.
func (p *WorkerPool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started || p.stopped {
		return ErrNotStarted
	}

	select {
	case p.queue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for queued tasks to finish. Running tasks
// see their context cancelled once ctx expires.
func (p *WorkerPool) Stop(ctx context.Context) {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		p.cancel()
		<-done
	}
	p.cancel()
}

// WorkerPoolStats holds statistics about the worker pool
type WorkerPoolStats struct {
	MaxWorkers    int     `json:"max_workers"`
	ActiveWorkers int32   `json:"active_workers"`
	QueueSize     int     `json:"queue_size"`
	TotalTasks    int64   `json:"total_tasks"`
	FailedTasks   int64   `json:"failed_tasks"`
	SuccessRate   float64 `json:"success_rate"`
	AvgExecTimeMs float64 `json:"avg_exec_time_ms"`
}

// Stats returns current pool statistics
func (p *WorkerPool) Stats() WorkerPoolStats {
	total := atomic.LoadInt64(&p.totalTasks)
	failed := atomic.LoadInt64(&p.failedTasks)

	successRate := float64(0)
	if total > 0 {
		successRate = float64(total-failed) / float64(total)
	}

	return WorkerPoolStats{
		MaxWorkers:    p.maxWorkers,
		ActiveWorkers: atomic.LoadInt32(&p.active),
		QueueSize:     len(p.queue),
		TotalTasks:    total,
		FailedTasks:   failed,
		SuccessRate:   successRate,
		AvgExecTimeMs: float64(atomic.LoadInt64(&p.avgExecTime)) / 1e6,
	}
}
