package task

import "github.com/colonyops/todos/pkg/date"

// Classify derives the status of t relative to ref, normally today.
// A completed task is never overdue, even when its due date has passed.
func Classify(t Task, ref date.Date) Status {
	if t.Completed {
		return StatusCompleted
	}
	if t.DueDate.Before(ref) {
		return StatusOverdue
	}
	return StatusPending
}

// Matches reports whether t is selected by f on the reference date.
func (f Filter) Matches(t Task, ref date.Date) bool {
	status := Classify(t, ref)
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed && status != StatusOverdue
	case FilterOverdue:
		return !t.Completed && status == StatusOverdue
	default:
		return true
	}
}

// Select returns the tasks matched by f, preserving order.
func Select(tasks []Task, f Filter, ref date.Date) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t, ref) {
			out = append(out, t)
		}
	}
	return out
}
