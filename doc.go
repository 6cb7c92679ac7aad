// Package smartpool provides an adaptive worker pool for Go.
//
// The pool accepts fire-and-forget task submissions, executes them on a
// bounded set of long-lived workers, and continuously resizes that set
// between a minimum and maximum bound in response to observed load. It is
// meant to be embedded in host processes that need to offload potentially
// blocking work without paying per-task goroutine creation cost and without
// provisioning statically for peak load.
//
// # Quick Start
//
//	pool, err := smartpool.New(smartpool.Options{
//		MinWorkers: 4,
//		MaxWorkers: 64,
//	})
//	if err != nil {
//		return err
//	}
//	defer pool.Shutdown()
//
//	pool.Post(func() {
//		// Your code here
//	})
//
// # Key Concepts
//
// Task: an opaque zero-argument callable. Submissions are fire-and-forget;
// there is no result propagation and tasks execute in queue arrival order.
//
// Monitor: when MinWorkers < MaxWorkers a single background controller
// samples load every millisecond. Sustained saturation (every worker busy
// with tasks backed up) grows the worker set by half; sustained idleness
// (fewer than a quarter of the workers, rounded down, executing) halves it. Both reactions are gated
// by a configurable tolerance, and the shrink tolerance defaults to three
// orders of magnitude above the grow tolerance, so the pool gains capacity
// quickly and gives it back reluctantly.
//
// Deferred tasks: PostAt and PostDelayed tag a task with an earliest
// execution time. The queue stays strictly FIFO; a worker that dequeues a
// task ahead of schedule re-queues it at the tail and retries shortly
// after.
//
// Shutdown: Shutdown blocks until every worker has terminated. Options
// select whether still-queued tasks are discarded (CancelPendingTasks) or
// executed first (WaitForPendingTasks); tasks already executing always run
// to completion.
//
// # Observability
//
// The pool exposes ActiveTaskCount, PendingTaskCount, WorkerCount, and a
// Stats snapshot. The observability/prometheus subpackage adapts the
// Metrics hooks to Prometheus collectors and can poll Stats into gauges.
package smartpool
