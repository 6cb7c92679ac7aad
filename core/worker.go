package core

import (
	"runtime/debug"
	"time"
)

// worker is the handle for one long-lived executor goroutine.
//
// busy and interrupted are guarded by the queue mutex. The interrupt channel
// is the cooperative stop signal for this specific worker: the monitor
// closes it (idle workers only) when shrinking. It is never consulted while
// a task body runs, so a task is never torn down mid-execution.
type worker struct {
	id int

	busy        bool // guarded by taskQueue.mu
	interrupted bool // guarded by taskQueue.mu

	interrupt chan struct{}
	done      chan struct{}
}

// newWorker returns a handle whose busy flag is already set: a freshly
// spawned worker counts as busy until it reaches its first queue wait, so
// the monitor cannot shrink it away before it has run at all.
func newWorker(id int) *worker {
	return &worker{
		id:        id,
		busy:      true,
		interrupt: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// join blocks until the worker goroutine has exited.
func (w *worker) join() {
	<-w.done
}

func (w *worker) interruptRequested() bool {
	select {
	case <-w.interrupt:
		return true
	default:
		return false
	}
}

// runWorker is the worker main loop: dequeue, honor the scheduled time,
// execute, repeat. It exits on the shutdown sentinel from the queue or on an
// interrupt directed at this worker.
func (p *Pool) runWorker(w *worker) {
	defer close(w.done)

	for {
		it, ok := p.queue.waitForWork(w)
		if !ok {
			return
		}

		if !it.dueAt(p.clock.Now()) {
			// Not yet on schedule: back to the tail, then a short timed
			// wait so a queue holding only deferred tasks does not spin.
			p.queue.requeue(it)
			if !p.queue.pause(w, deferredRetryInterval) {
				return
			}
			continue
		}

		p.active.Add(1)
		p.runTask(w, it)
		p.active.Add(-1)

		// An interrupt posted while the task ran is honored only now that
		// the task body has returned.
		if w.interruptRequested() {
			return
		}
	}
}

// runTask executes one task body. Panics do not kill the worker: they are
// recovered, reported to the panic handler, and the worker moves on to the
// next task.
func (p *Pool) runTask(w *worker, it taskItem) {
	startedAt := time.Now()
	panicked := false

	defer func() {
		if rec := recover(); rec != nil {
			panicked = true
			p.panicHandler.HandlePanic(p.id, w.id, rec, debug.Stack())
			p.metrics.RecordTaskPanic(p.id, rec)
		}

		finishedAt := time.Now()
		p.metrics.RecordTaskDuration(p.id, finishedAt.Sub(startedAt))

		if p.history != nil {
			p.history.record(TaskExecutionRecord{
				PoolID:     p.id,
				WorkerID:   w.id,
				Name:       taskName(it.fn),
				StartedAt:  startedAt,
				FinishedAt: finishedAt,
				Duration:   finishedAt.Sub(startedAt),
				Panicked:   panicked,
			})
		}
	}()

	it.fn()
}
