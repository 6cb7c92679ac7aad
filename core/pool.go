package core

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jacobsa/timeutil"
)

// Pool executes submitted tasks on a bounded set of long-lived workers and
// resizes that set between MinWorkers and MaxWorkers in response to
// observed load.
//
// Two locks are in play. The queue mutex (inside taskQueue) protects the
// pending items and every worker's busy flag. workersMu protects the worker
// set and serializes the monitor's grow/shrink actions against shutdown.
// When both are needed the worker-set mutex is acquired first.
type Pool struct {
	id         string
	minWorkers int
	maxWorkers int
	onShutdown ShutdownMode

	clock        timeutil.Clock
	logger       Logger
	metrics      Metrics
	panicHandler PanicHandler
	rejected     RejectedTaskHandler
	history      *executionHistory

	queue *taskQueue

	// active counts workers currently inside a task body. size caches the
	// worker-set cardinality so observers never need workersMu.
	active atomic.Int32
	size   atomic.Int32

	workersMu    sync.Mutex
	workers      []*worker
	nextWorkerID int

	mon *monitor

	stopping atomic.Bool
	stopOnce sync.Once
}

// NewPool validates the configuration, spawns the initial workers, and
// starts the monitor when the pool is actually resizable (min < max).
//
// A resizable pool starts with MinWorkers+1 workers; the extra one absorbs
// the monitor's own footprint in the accounting. Shrinking still floors at
// MinWorkers.
func NewPool(cfg Config) (*Pool, error) {
	cfg = cfg.withDefaults()

	if cfg.MaxWorkers < 1 || cfg.MaxWorkers < cfg.MinWorkers {
		return nil, ErrInvalidBounds
	}

	p := &Pool{
		id:           cfg.ID,
		minWorkers:   cfg.MinWorkers,
		maxWorkers:   cfg.MaxWorkers,
		onShutdown:   cfg.OnShutdown,
		clock:        cfg.Clock,
		logger:       scopedToPool(cfg.Logger, cfg.ID),
		metrics:      cfg.Metrics,
		panicHandler: cfg.PanicHandler,
		rejected:     cfg.RejectedTaskHandler,
		queue:        newTaskQueue(cfg.MaxWorkers * 2),
	}

	if cfg.HistoryCapacity > 0 {
		p.history = newExecutionHistory(cfg.HistoryCapacity)
	}

	start := cfg.MinWorkers
	if cfg.MinWorkers < cfg.MaxWorkers {
		start = cfg.MinWorkers + 1
	}

	p.workersMu.Lock()
	for i := 0; i < start; i++ {
		p.addWorkerLocked()
	}
	p.workersMu.Unlock()

	if cfg.MinWorkers < cfg.MaxWorkers {
		p.mon = newMonitor(p, cfg.GrowTolerance, cfg.ShrinkTolerance)
		go p.mon.run()
	}

	p.logger.Info("pool started",
		F("workers", start), F("min", cfg.MinWorkers), F("max", cfg.MaxWorkers))

	return p, nil
}

// Post submits a task for execution as soon as a worker is available.
// After shutdown has begun the task is discarded.
func (p *Pool) Post(task Task) {
	p.post(taskItem{fn: task})
}

// PostAt submits a task that must not start before the given absolute time.
func (p *Pool) PostAt(task Task, at time.Time) {
	p.post(taskItem{fn: task, runAt: at})
}

// PostDelayed submits a task that must not start before the given delay has
// elapsed.
func (p *Pool) PostDelayed(task Task, delay time.Duration) {
	p.post(taskItem{fn: task, runAt: p.clock.Now().Add(delay)})
}

func (p *Pool) post(it taskItem) {
	if it.fn == nil {
		return
	}
	if p.stopping.Load() {
		p.rejected.HandleRejectedTask(p.id, "shutting down")
		p.metrics.RecordTaskRejected(p.id, "shutting down")
		return
	}
	p.queue.push(it)
}

// ID returns the pool identity used in logs and metric labels.
func (p *Pool) ID() string { return p.id }

// ActiveTaskCount returns the number of workers currently executing a task
// body.
func (p *Pool) ActiveTaskCount() int { return int(p.active.Load()) }

// PendingTaskCount returns the number of tasks waiting in the queue.
func (p *Pool) PendingTaskCount() int { return p.queue.len() }

// WorkerCount returns the current worker-set cardinality.
func (p *Pool) WorkerCount() int { return int(p.size.Load()) }

// Resizable reports whether a monitor exists for this pool.
func (p *Pool) Resizable() bool { return p.mon != nil }

// IsRunning reports whether shutdown has not begun yet.
func (p *Pool) IsRunning() bool { return !p.stopping.Load() }

// Stats returns a point-in-time snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		ID:      p.id,
		Workers: p.WorkerCount(),
		Queued:  p.PendingTaskCount(),
		Active:  p.ActiveTaskCount(),
		Running: p.IsRunning(),
	}
}

// RecentExecutions returns up to limit most-recent execution records,
// newest first. Nil when history is disabled.
func (p *Pool) RecentExecutions(limit int) []TaskExecutionRecord {
	if p.history == nil {
		return nil
	}
	return p.history.Recent(limit)
}

// Shutdown stops the pool. Repeated and concurrent calls are safe; every
// call returns only after all workers have terminated.
//
// In CancelPendingTasks mode queued tasks are discarded; tasks already
// executing always run to completion. In WaitForPendingTasks mode the call
// blocks until the queue has drained and every task has finished.
func (p *Pool) Shutdown() {
	// Once.Do blocks concurrent callers until the first one finishes the
	// joins, so every caller observes a fully stopped pool.
	p.stopOnce.Do(p.shutdown)
}

func (p *Pool) shutdown() {
	p.stopping.Store(true)

	if p.mon != nil {
		close(p.mon.stop)
		<-p.mon.done
	}

	if p.onShutdown == CancelPendingTasks {
		if dropped := p.queue.drainPending(); dropped > 0 {
			p.logger.Info("pending tasks dropped", F("dropped", dropped))
			for i := 0; i < dropped; i++ {
				p.metrics.RecordTaskRejected(p.id, "shutdown")
			}
		}
	} else {
		for p.ActiveTaskCount() > 0 || p.PendingTaskCount() > 0 {
			time.Sleep(deferredRetryInterval)
		}
	}

	p.queue.close()

	p.workersMu.Lock()
	defer p.workersMu.Unlock()

	for _, w := range p.workers {
		w.join()
	}
	p.workers = nil
	p.size.Store(0)

	p.logger.Info("pool stopped")
}

// addWorkerLocked spawns one worker. Called with workersMu held.
func (p *Pool) addWorkerLocked() {
	w := newWorker(p.nextWorkerID)
	p.nextWorkerID++
	p.workers = append(p.workers, w)
	p.size.Add(1)
	go p.runWorker(w)
}

// removeIdleWorkersLocked interrupts and joins up to count idle workers in
// one scan of the set. Busy workers are skipped; the number actually
// removed is returned. Called with workersMu held.
func (p *Pool) removeIdleWorkersLocked(count int) int {
	removed := 0
	i := 0
	for i < len(p.workers) && removed < count {
		w := p.workers[i]
		if !p.queue.interruptIfIdle(w) {
			i++
			continue
		}
		p.size.Add(-1)
		w.join()
		p.workers = append(p.workers[:i], p.workers[i+1:]...)
		removed++
	}
	return removed
}
