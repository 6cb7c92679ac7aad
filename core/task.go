package core

import "time"

// Task is the unit of work (Closure). Tasks take no arguments and return
// nothing; submission is fire-and-forget. Result propagation, if needed,
// belongs to the task body itself.
type Task func()

// taskItem pairs a task with its earliest-execution time.
// A zero runAt means the task is ready immediately.
type taskItem struct {
	fn    Task
	runAt time.Time
}

// dueAt reports whether the task may run at the given instant.
func (it taskItem) dueAt(now time.Time) bool {
	return it.runAt.IsZero() || !it.runAt.After(now)
}
