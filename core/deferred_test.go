package core

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jacobsa/timeutil"
)

// TestPool_PostDelayed_LowerBound verifies the deferred-time guarantee
// Given: An otherwise empty 2-worker pool
// When: A task is posted with a 100ms delay
// Then: It starts no earlier than the scheduled time
func TestPool_PostDelayed_LowerBound(t *testing.T) {
	// Arrange
	p := newFixedPool(t, 2)
	defer p.Shutdown()

	const delay = 100 * time.Millisecond
	posted := time.Now()
	startedAt := make(chan time.Time, 1)

	// Act
	p.PostDelayed(func() { startedAt <- time.Now() }, delay)

	// Assert
	select {
	case got := <-startedAt:
		if elapsed := got.Sub(posted); elapsed < delay {
			t.Errorf("task started after %v, want >= %v", elapsed, delay)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("deferred task never ran")
	}
}

// TestPool_PostAt_SimulatedClock verifies schedule checks use the clock
// Given: A pool on a simulated clock and a task scheduled in the future
// When: The clock is advanced past the schedule
// Then: The task runs only after the advance
func TestPool_PostAt_SimulatedClock(t *testing.T) {
	// Arrange
	clock := &timeutil.SimulatedClock{}
	clock.SetTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	p, err := NewPool(Config{MinWorkers: 2, MaxWorkers: 2, Clock: clock})
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer p.Shutdown()

	var executed atomic.Bool
	p.PostAt(func() { executed.Store(true) }, clock.Now().Add(time.Minute))

	// Assert - simulated time is frozen, the task must not run
	time.Sleep(50 * time.Millisecond)
	if executed.Load() {
		t.Fatal("task ran before its simulated schedule")
	}

	// Act
	clock.AdvanceTime(2 * time.Minute)

	// Assert
	waitForCondition(t, 2*time.Second, "task did not run after clock advance", func() bool {
		return executed.Load()
	})
}

// TestPool_PostAt_PastSchedule verifies past schedules run immediately
// Given: A running pool
// When: A task is posted with a schedule in the past
// Then: It executes promptly
func TestPool_PostAt_PastSchedule(t *testing.T) {
	p := newFixedPool(t, 1)
	defer p.Shutdown()

	var executed atomic.Bool
	p.PostAt(func() { executed.Store(true) }, time.Now().Add(-time.Second))

	waitForCondition(t, 2*time.Second, "past-scheduled task did not run", func() bool {
		return executed.Load()
	})
}

// TestPool_DeferredDoesNotBlockReadyTasks verifies queue liveness
// Given: A deferred task parked at the queue tail
// When: Ready tasks are posted afterwards
// Then: The ready tasks execute without waiting for the deferred one
func TestPool_DeferredDoesNotBlockReadyTasks(t *testing.T) {
	// Arrange
	p := newFixedPool(t, 1)
	defer p.Shutdown()

	var deferredRan atomic.Bool
	var readyRan atomic.Bool

	// Act
	p.PostDelayed(func() { deferredRan.Store(true) }, 500*time.Millisecond)
	p.Post(func() { readyRan.Store(true) })

	// Assert - the ready task does not sit behind the deferred one
	waitForCondition(t, 2*time.Second, "ready task starved by deferred task", func() bool {
		return readyRan.Load()
	})
	if deferredRan.Load() {
		t.Error("deferred task ran ahead of schedule")
	}

	// Assert - the deferred task still runs eventually
	waitForCondition(t, 2*time.Second, "deferred task never ran", func() bool {
		return deferredRan.Load()
	})
}
