package core

import (
	"strings"
	"sync"
	"testing"
)

// TestExecutionHistory_RecordsCompletedTasks verifies history capture
// Given: A pool with history enabled
// When: Tasks execute, one of them panicking
// Then: RecentExecutions returns records newest first with the panic marked
func TestExecutionHistory_RecordsCompletedTasks(t *testing.T) {
	// Arrange
	p, err := NewPool(Config{
		MinWorkers:      1,
		MaxWorkers:      1,
		HistoryCapacity: 10,
		PanicHandler:    &recordingPanicHandler{},
		OnShutdown:      WaitForPendingTasks,
	})
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)

	// Act
	p.Post(func() {
		defer wg.Done()
		panic("history boom")
	})
	p.Post(func() { wg.Done() })
	wg.Wait()
	p.Shutdown()

	// Assert
	records := p.RecentExecutions(0)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	// Newest first: the panicking task ran first
	if records[0].Panicked {
		t.Error("records[0].Panicked = true, want false")
	}
	if !records[1].Panicked {
		t.Error("records[1].Panicked = false, want true")
	}
	for i, r := range records {
		if r.PoolID != p.ID() {
			t.Errorf("records[%d].PoolID = %q, want %q", i, r.PoolID, p.ID())
		}
		if r.Name == "" {
			t.Errorf("records[%d].Name is empty", i)
		}
		if r.FinishedAt.Before(r.StartedAt) {
			t.Errorf("records[%d] finished before it started", i)
		}
	}
}

// TestExecutionHistory_Bounded verifies the ring overwrites oldest records
// Given: A history ring of capacity 3
// When: 5 records are added
// Then: Only the 3 newest remain, newest first
func TestExecutionHistory_Bounded(t *testing.T) {
	// Arrange
	h := newExecutionHistory(3)

	// Act
	for i := 0; i < 5; i++ {
		h.record(TaskExecutionRecord{WorkerID: i})
	}

	// Assert
	records := h.Recent(0)
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	for i, want := range []int{4, 3, 2} {
		if records[i].WorkerID != want {
			t.Errorf("records[%d].WorkerID = %d, want %d", i, records[i].WorkerID, want)
		}
	}

	last, ok := h.Last()
	if !ok {
		t.Fatal("Last() = none, want a record")
	}
	if last.WorkerID != 4 {
		t.Errorf("Last().WorkerID = %d, want 4", last.WorkerID)
	}
}

// TestExecutionHistory_DisabledByDefault verifies opt-in behavior
// Given: A pool constructed without HistoryCapacity
// When: Tasks execute
// Then: RecentExecutions returns nil
func TestExecutionHistory_DisabledByDefault(t *testing.T) {
	p := newFixedPool(t, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	p.Post(func() { wg.Done() })
	wg.Wait()
	p.Shutdown()

	if records := p.RecentExecutions(0); records != nil {
		t.Errorf("RecentExecutions() = %v, want nil", records)
	}
}

// TestTaskName verifies task-name derivation
// Given: A named function and a nil task
// When: taskName derives names
// Then: The symbol name is used, with "anonymous" as the fallback
func TestTaskName(t *testing.T) {
	if got := taskName(nil); got != "anonymous" {
		t.Errorf("taskName(nil) = %q, want anonymous", got)
	}

	got := taskName(namedHistoryTask)
	if !strings.Contains(got, "namedHistoryTask") {
		t.Errorf("taskName() = %q, want it to contain namedHistoryTask", got)
	}
}

func namedHistoryTask() {}
