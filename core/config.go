package core

import (
	"errors"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/jacobsa/timeutil"
)

// ShutdownMode selects what happens to queued tasks when the pool stops.
type ShutdownMode int

const (
	// CancelPendingTasks discards queued tasks on shutdown; tasks already
	// executing run to completion.
	CancelPendingTasks ShutdownMode = iota

	// WaitForPendingTasks blocks shutdown until the queue has drained and
	// every task has finished.
	WaitForPendingTasks
)

// MinWorkersAuto asks the pool to derive the minimum from the host:
// twice the hardware parallelism, clamped to [1, MaxWorkers].
const MinWorkersAuto = -1

const (
	// DefaultMinWorkers is the minimum worker count when none is given.
	DefaultMinWorkers = 8

	// DefaultMaxWorkers is the ceiling the pool may grow to.
	DefaultMaxWorkers = 1000

	// DefaultGrowTolerance is how long saturation must persist before the
	// pool adds workers.
	DefaultGrowTolerance = 100 * time.Millisecond

	// DefaultShrinkTolerance is how long idleness must persist before the
	// pool removes workers. Deliberately orders of magnitude larger than
	// the grow tolerance: the pool reacts quickly to saturation but is
	// patient before releasing capacity.
	DefaultShrinkTolerance = 120_000 * time.Millisecond
)

// ErrInvalidBounds is returned by NewPool when MaxWorkers < MinWorkers.
var ErrInvalidBounds = errors.New("smartpool: max workers must be >= min workers")

// Config holds pool construction options. The zero value of every field
// means "use the default"; withDefaults resolves them.
type Config struct {
	// ID names the pool in logs and metric labels. Defaults to a
	// generated "smartpool-<uuid>" value.
	ID string

	// MinWorkers is the lower bound of the worker set. Use MinWorkersAuto
	// to derive it from hardware parallelism. Zero means
	// DefaultMinWorkers (capped at MaxWorkers).
	MinWorkers int

	// MaxWorkers is the upper bound of the worker set.
	MaxWorkers int

	// GrowTolerance / ShrinkTolerance control resize hysteresis: how long
	// a load classification must persist before the pool acts on it.
	GrowTolerance   time.Duration
	ShrinkTolerance time.Duration

	// OnShutdown selects the fate of queued tasks at shutdown.
	OnShutdown ShutdownMode

	// Clock is the time source for deferred-task due checks. Defaults to
	// the real clock; tests inject a timeutil.SimulatedClock.
	Clock timeutil.Clock

	Logger              Logger
	Metrics             Metrics
	PanicHandler        PanicHandler
	RejectedTaskHandler RejectedTaskHandler

	// HistoryCapacity bounds the execution-history ring. Zero disables
	// history recording entirely.
	HistoryCapacity int
}

func (c Config) withDefaults() Config {
	if c.ID == "" {
		c.ID = "smartpool-" + uuid.NewString()
	}
	if c.MaxWorkers == 0 {
		c.MaxWorkers = DefaultMaxWorkers
	}
	switch {
	case c.MinWorkers < 0:
		c.MinWorkers = autoMinWorkers(c.MaxWorkers)
	case c.MinWorkers == 0:
		c.MinWorkers = DefaultMinWorkers
		if c.MinWorkers > c.MaxWorkers {
			c.MinWorkers = c.MaxWorkers
		}
	}
	if c.GrowTolerance <= 0 {
		c.GrowTolerance = DefaultGrowTolerance
	}
	if c.ShrinkTolerance <= 0 {
		c.ShrinkTolerance = DefaultShrinkTolerance
	}
	if c.Clock == nil {
		c.Clock = timeutil.RealClock()
	}
	if c.Logger == nil {
		c.Logger = NewNoOpLogger()
	}
	if c.Metrics == nil {
		c.Metrics = &NilMetrics{}
	}
	if c.PanicHandler == nil {
		c.PanicHandler = &DefaultPanicHandler{}
	}
	if c.RejectedTaskHandler == nil {
		c.RejectedTaskHandler = &NilRejectedTaskHandler{}
	}
	return c
}

// autoMinWorkers derives the minimum from hardware parallelism.
func autoMinWorkers(maxWorkers int) int {
	n := runtime.NumCPU() * 2
	if n < 1 {
		n = 1
	}
	if maxWorkers >= 1 && n > maxWorkers {
		n = maxWorkers
	}
	return n
}
