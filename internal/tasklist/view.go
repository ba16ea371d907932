package tasklist

import (
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/pkg/date"
)

// Row is one render-ready task. Text is raw user input; escaping it for the
// output medium is up to the renderer.
type Row struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Status    task.Status `json:"status"`
	DueDate   date.Date   `json:"dueDate"`
	DueLabel  string      `json:"dueLabel"`
	Completed bool        `json:"completed"`
}

// ViewModel is everything a renderer needs to draw the list.
type ViewModel struct {
	Rows    []Row        `json:"rows"`
	Filter  task.Filter  `json:"filter"`
	Summary task.Summary `json:"summary"`
	Empty   bool         `json:"empty"`
}

// View builds the view model for the current filter on ref.
func (s *Store) View(ref date.Date, layout string) ViewModel {
	visible := s.FilteredView(ref)

	rows := make([]Row, 0, len(visible))
	for _, t := range visible {
		rows = append(rows, Row{
			ID:        t.ID,
			Text:      t.Text,
			Status:    task.Classify(t, ref),
			DueDate:   t.DueDate,
			DueLabel:  task.FormatDueDate(t.DueDate, ref, layout),
			Completed: t.Completed,
		})
	}

	return ViewModel{
		Rows:    rows,
		Filter:  s.filter,
		Summary: s.Summary(),
		Empty:   len(rows) == 0,
	}
}
