// Package tasklist holds the task-state manager: the ordered task sequence,
// the current filter and the persistence boundary to a kv.KV backend.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/colonyops/todos/internal/core/kv"
	"github.com/colonyops/todos/internal/core/logging"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/pkg/date"
	"github.com/colonyops/todos/pkg/randid"
	"github.com/rs/zerolog"
)

// DefaultKey is the storage key the task sequence is persisted under.
const DefaultKey = "todos"

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for "today" and creation stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Store owns the task sequence. It is not safe for concurrent use; callers
// drive it from a single goroutine.
type Store struct {
	tasks  []task.Task
	filter task.Filter

	kv  *kv.TypedKV[[]task.Task]
	key string
	now func() time.Time
	log zerolog.Logger
}

// New loads the persisted sequence from store. A missing key or a malformed
// payload yields an empty list. Any other backend failure is returned so a
// later write cannot clobber data that could not be read.
func New(ctx context.Context, store kv.KV, log zerolog.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		filter: task.FilterAll,
		kv:     kv.Typed[[]task.Task](store),
		key:    DefaultKey,
		now:    time.Now,
		log:    log.With().Str("component", "tasklist").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	tasks, err := s.kv.Get(ctx, s.key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		s.tasks = []task.Task{}
		return nil
	case errors.Is(err, kv.ErrMalformed):
		s.log.Warn().Err(err).Str("key", s.key).Msg("persisted tasks are malformed, starting empty")
		s.tasks = []task.Task{}
		return nil
	case err != nil:
		return fmt.Errorf("load tasks: %w", err)
	}

	seen := make(map[string]struct{}, len(tasks))
	s.tasks = make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			s.log.Warn().Str("text", t.Text).Msg("dropping persisted task without id")
			continue
		}
		if _, dup := seen[t.ID]; dup {
			s.log.Warn().Str("id", t.ID).Msg("dropping duplicate persisted task")
			continue
		}
		seen[t.ID] = struct{}{}
		s.tasks = append(s.tasks, t)
	}

	s.log.Debug().Int("count", len(s.tasks)).Msg("tasks loaded")
	return nil
}

func (s *Store) save(ctx context.Context) error {
	if err := s.kv.Set(ctx, s.key, s.tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// commit persists the current sequence, restoring prev when the write fails.
func (s *Store) commit(ctx context.Context, prev []task.Task) error {
	if err := s.save(ctx); err != nil {
		s.tasks = prev
		s.log.Error().Ctx(ctx).Err(err).Msg("persist failed, mutation rolled back")
		return err
	}
	return nil
}

// Today returns the current calendar date from the store's clock.
func (s *Store) Today() date.Date {
	return date.Of(s.now())
}

// Validate checks raw input against today's date. It does not mutate state.
func (s *Store) Validate(text, dueDate string) task.ValidationResult {
	return task.Validate(text, dueDate, s.Today())
}

// AddTask validates the input and prepends a new pending task. On validation
// failure the returned error is the result's criterio.FieldErrors and the
// sequence is unchanged.
func (s *Store) AddTask(ctx context.Context, text, dueDate string) (task.Task, error) {
	result := s.Validate(text, dueDate)
	if err := result.Err(); err != nil {
		return task.Task{}, err
	}

	now := s.now()
	t := task.Task{
		ID:        randid.New(now),
		Text:      result.Text,
		DueDate:   result.DueDate,
		CreatedAt: now,
	}

	prev := s.tasks
	s.tasks = slices.Insert(slices.Clone(prev), 0, t)
	if err := s.commit(ctx, prev); err != nil {
		return task.Task{}, err
	}

	s.log.Info().Ctx(logging.WithTaskID(ctx, t.ID)).Str("due", t.DueDate.String()).Msg("task added")
	return t, nil
}

// ToggleCompleted flips the completion flag of the task with id. An unknown
// id returns task.ErrNotFound and nothing is written.
func (s *Store) ToggleCompleted(ctx context.Context, id string) (task.Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return task.Task{}, fmt.Errorf("toggle %q: %w", id, task.ErrNotFound)
	}

	prev := s.tasks
	s.tasks = slices.Clone(prev)
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	if err := s.commit(ctx, prev); err != nil {
		return task.Task{}, err
	}

	updated := s.tasks[idx]
	s.log.Info().Ctx(logging.WithTaskID(ctx, id)).Bool("completed", updated.Completed).Msg("task toggled")
	return updated, nil
}

// DeleteTask removes the task with id. Deleting an unknown id is not an
// error; the sequence is persisted either way.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	prev := s.tasks
	s.tasks = slices.DeleteFunc(slices.Clone(prev), func(t task.Task) bool {
		return t.ID == id
	})
	if err := s.commit(ctx, prev); err != nil {
		return err
	}

	logCtx := logging.WithTaskID(ctx, id)
	if len(s.tasks) == len(prev) {
		s.log.Debug().Ctx(logCtx).Msg("delete of unknown task")
	} else {
		s.log.Info().Ctx(logCtx).Msg("task deleted")
	}
	return nil
}

// Classify derives the status of t relative to ref.
func (s *Store) Classify(t task.Task, ref date.Date) task.Status {
	return task.Classify(t, ref)
}

// SetFilter changes the current filter. Unknown values fall back to all.
func (s *Store) SetFilter(f task.Filter) {
	if !f.IsValid() {
		f = task.FilterAll
	}
	s.filter = f
}

// Filter returns the current filter.
func (s *Store) Filter() task.Filter {
	return s.filter
}

// FilteredView returns the tasks selected by the current filter on ref, in
// sequence order.
func (s *Store) FilteredView(ref date.Date) []task.Task {
	return task.Select(s.tasks, s.filter, ref)
}

// Summary counts the full, unfiltered sequence.
func (s *Store) Summary() task.Summary {
	return task.Summarize(s.tasks)
}

// FormatDueDate labels d relative to ref.
func (s *Store) FormatDueDate(d, ref date.Date, layout string) string {
	return task.FormatDueDate(d, ref, layout)
}

// Tasks returns a copy of the full sequence, most recent first.
func (s *Store) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id string) (task.Task, bool) {
	idx := s.index(id)
	if idx < 0 {
		return task.Task{}, false
	}
	return s.tasks[idx], true
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t task.Task) bool {
		return t.ID == id
	})
}
