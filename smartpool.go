package smartpool

import (
	"sync"
	"time"

	"github.com/wrenworks/go-smartpool/core"
)

// Pool is the public façade over the adaptive worker pool.
type Pool struct {
	core *core.Pool
}

// New creates a pool from the given options. It returns ErrInvalidBounds
// when MaxWorkers < MinWorkers; nothing is spawned in that case.
func New(opts Options) (*Pool, error) {
	p, err := core.NewPool(opts)
	if err != nil {
		return nil, err
	}
	return &Pool{core: p}, nil
}

// Post submits a task for execution as soon as a worker is available.
// Submissions after Shutdown has begun are discarded.
func (p *Pool) Post(task Task) {
	p.core.Post(task)
}

// PostAt submits a task that must not start before the given absolute time.
func (p *Pool) PostAt(task Task, at time.Time) {
	p.core.PostAt(task, at)
}

// PostDelayed submits a task that must not start before the given delay has
// elapsed.
func (p *Pool) PostDelayed(task Task, delay time.Duration) {
	p.core.PostDelayed(task, delay)
}

// ID returns the pool identity used in logs and metric labels.
func (p *Pool) ID() string {
	return p.core.ID()
}

// ActiveTaskCount returns the number of workers currently executing a task.
func (p *Pool) ActiveTaskCount() int {
	return p.core.ActiveTaskCount()
}

// PendingTaskCount returns the number of tasks waiting in the queue.
func (p *Pool) PendingTaskCount() int {
	return p.core.PendingTaskCount()
}

// WorkerCount returns the current number of workers in the pool.
func (p *Pool) WorkerCount() int {
	return p.core.WorkerCount()
}

// IsRunning reports whether Shutdown has not begun yet.
func (p *Pool) IsRunning() bool {
	return p.core.IsRunning()
}

// Stats returns a point-in-time snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	return p.core.Stats()
}

// RecentExecutions returns up to limit most-recent execution records,
// newest first. Nil unless Options.HistoryCapacity was set.
func (p *Pool) RecentExecutions(limit int) []TaskExecutionRecord {
	return p.core.RecentExecutions(limit)
}

// Shutdown stops the pool and blocks until every worker has terminated.
// Safe to call repeatedly and concurrently.
func (p *Pool) Shutdown() {
	p.core.Shutdown()
}

// =============================================================================
// Global Pool Helper (Singleton)
// =============================================================================

var (
	globalPool *Pool
	globalMu   sync.Mutex
)

// InitGlobalPool initializes the process-wide pool with the given options.
// Once a call has succeeded, later calls are no-ops that return nil. A
// failed call leaves the global pool unset, so a later call tries again.
func InitGlobalPool(opts Options) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool != nil {
		return nil // Already initialized
	}

	p, err := New(opts)
	if err != nil {
		return err
	}
	globalPool = p
	return nil
}

// GetGlobalPool returns the global pool instance.
// It panics if InitGlobalPool has not been called.
func GetGlobalPool() *Pool {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool == nil {
		panic("global pool not initialized. Call InitGlobalPool() first.")
	}
	return globalPool
}

// ShutdownGlobalPool stops the global pool.
func ShutdownGlobalPool() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool != nil {
		globalPool.Shutdown()
		globalPool = nil
	}
}
