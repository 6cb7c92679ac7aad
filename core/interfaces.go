package core

import (
	"fmt"
	"time"
)

// =============================================================================
// PanicHandler: Interface for handling task panics
// =============================================================================

// PanicHandler is called when a task panics during execution. The worker
// that ran the task survives and moves on to the next one; the handler
// decides what to do with the failure itself.
//
// Implementations must be safe for concurrent use.
type PanicHandler interface {
	// HandlePanic is called with the pool ID, the ID of the worker the
	// task ran on, the recovered panic value, and the stack trace captured
	// at recovery time.
	HandlePanic(poolID string, workerID int, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler prints panic information to stdout.
type DefaultPanicHandler struct{}

func (h *DefaultPanicHandler) HandlePanic(poolID string, workerID int, panicInfo any, stackTrace []byte) {
	fmt.Printf("[Worker %d @ %s] Panic: %v\nStack trace:\n%s",
		workerID, poolID, panicInfo, stackTrace)
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the hooks the pool calls to record execution metrics.
// Implementations can forward them to monitoring systems (Prometheus,
// StatsD, etc.).
//
// Methods must be non-blocking and fast; they run on worker and monitor
// goroutines.
type Metrics interface {
	// RecordTaskDuration records how long a task body took to execute.
	RecordTaskDuration(poolID string, duration time.Duration)

	// RecordTaskPanic records that a task panicked during execution.
	RecordTaskPanic(poolID string, panicInfo any)

	// RecordTaskRejected records a task discarded because the pool was
	// shutting down.
	RecordTaskRejected(poolID string, reason string)

	// RecordQueueDepth records the queue depth observed at a resize.
	RecordQueueDepth(poolID string, depth int)

	// RecordPoolResize records a worker-set resize. direction is "up" or
	// "down"; size is the worker count after the resize.
	RecordPoolResize(poolID string, direction string, size int)
}

// NilMetrics is the default no-op metrics implementation.
type NilMetrics struct{}

func (m *NilMetrics) RecordTaskDuration(poolID string, duration time.Duration) {}
func (m *NilMetrics) RecordTaskPanic(poolID string, panicInfo any)             {}
func (m *NilMetrics) RecordTaskRejected(poolID string, reason string)          {}
func (m *NilMetrics) RecordQueueDepth(poolID string, depth int)                {}
func (m *NilMetrics) RecordPoolResize(poolID string, direction string, size int) {
}

// =============================================================================
// RejectedTaskHandler: Interface for handling rejected tasks
// =============================================================================

// RejectedTaskHandler is called when a submission is discarded. This only
// happens after shutdown has begun: submit is fire-and-forget and the
// teardown race is unavoidable for callers, so the pool drops silently at
// the API and surfaces the event here instead.
//
// Implementations must be safe for concurrent use.
type RejectedTaskHandler interface {
	HandleRejectedTask(poolID string, reason string)
}

// NilRejectedTaskHandler is the default: discarded submissions stay silent.
type NilRejectedTaskHandler struct{}

func (h *NilRejectedTaskHandler) HandleRejectedTask(poolID string, reason string) {}
