// Package task defines the task domain model: records, derived status,
// filters and the rules that validate new tasks.
package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/todos/pkg/date"
)

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidFilter is returned when a filter name is not recognized.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Task is a single to-do record. ID, Text, DueDate and CreatedAt never change
// after creation; Completed is the only mutable field.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	DueDate   date.Date `json:"dueDate"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Status is the derived classification of a task. It is never stored.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusPending   Status = "pending"
)

// Filter selects a subset of tasks for display. It is session state and is
// never persisted.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
	FilterOverdue   Filter = "overdue"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted, FilterOverdue}

// IsValid reports whether f is a known filter.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterCompleted, FilterPending, FilterOverdue:
		return true
	default:
		return false
	}
}

// ParseFilter converts a filter name. The empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !f.IsValid() {
		return "", fmt.Errorf("%w %q: must be one of all, completed, pending, overdue", ErrInvalidFilter, s)
	}
	return f, nil
}

// Summary holds counters over the unfiltered task set.
type Summary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Pending returns the number of tasks that are not completed.
func (s Summary) Pending() int {
	return s.Total - s.Completed
}

func (s Summary) String() string {
	return fmt.Sprintf("%d total, %d completed", s.Total, s.Completed)
}

// Summarize counts tasks and completed tasks.
func Summarize(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	return s
}
