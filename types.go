package smartpool

import "github.com/wrenworks/go-smartpool/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the smartpool package for most use cases.

// Task is the unit of work (Closure)
type Task = core.Task

// ShutdownMode selects what happens to queued tasks when the pool stops
type ShutdownMode = core.ShutdownMode

// Logger is the pluggable structured-logging interface
type Logger = core.Logger

// Field is a key-value pair for structured logging
type Field = core.Field

// Metrics is the pluggable metrics-hook interface
type Metrics = core.Metrics

// PanicHandler handles panics escaping task bodies
type PanicHandler = core.PanicHandler

// RejectedTaskHandler observes submissions discarded during shutdown
type RejectedTaskHandler = core.RejectedTaskHandler

// PoolStats is a point-in-time snapshot of the pool counters
type PoolStats = core.PoolStats

// TaskExecutionRecord captures a completed task execution event
type TaskExecutionRecord = core.TaskExecutionRecord

// Shutdown mode constants
const (
	CancelPendingTasks  ShutdownMode = core.CancelPendingTasks
	WaitForPendingTasks ShutdownMode = core.WaitForPendingTasks
)

// MinWorkersAuto derives MinWorkers from hardware parallelism
const MinWorkersAuto = core.MinWorkersAuto

// ErrInvalidBounds is returned by New when MaxWorkers < MinWorkers
var ErrInvalidBounds = core.ErrInvalidBounds

// F creates a structured-logging Field
var F = core.F
