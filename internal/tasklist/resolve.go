package tasklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/colonyops/todos/internal/core/task"
)

// ErrAmbiguousID is returned by Resolve when a prefix matches more than one task.
var ErrAmbiguousID = errors.New("ambiguous task id")

// Resolve finds the task whose id equals ref or, failing that, the single task
// whose id starts with ref. Ids are lowercase; ref is matched case-insensitively.
func (s *Store) Resolve(ref string) (task.Task, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return task.Task{}, fmt.Errorf("resolve: %w", task.ErrNotFound)
	}

	if t, ok := s.Get(ref); ok {
		return t, nil
	}

	var matches []task.Task
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("resolve %q: %w", ref, task.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("resolve %q: %w (%d matches)", ref, ErrAmbiguousID, len(matches))
	}
}
