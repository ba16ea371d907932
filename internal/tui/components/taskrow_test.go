package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/tasklist"
	"github.com/colonyops/todos/pkg/tuitest"
)

func TestTaskRow(t *testing.T) {
	row := tasklist.Row{
		ID:       "01j0abc",
		Text:     "Buy milk",
		Status:   task.StatusPending,
		DueLabel: "Tomorrow",
	}

	tests := []struct {
		name      string
		row       tasklist.Row
		showEmoji bool
		want      string
	}{
		{
			name:      "pending with emoji",
			row:       row,
			showEmoji: true,
			want:      "○ Buy milk  📅 Tomorrow  01j0abc",
		},
		{
			name: "pending without emoji",
			row:  row,
			want: "○ Buy milk  Tomorrow  01j0abc",
		},
		{
			name: "completed",
			row: tasklist.Row{
				ID: "01j0abc", Text: "Buy milk", Status: task.StatusCompleted,
				DueLabel: "Today", Completed: true,
			},
			want: "✔ Buy milk  Today  01j0abc",
		},
		{
			name: "overdue",
			row: tasklist.Row{
				ID: "01j0abc", Text: "Buy milk", Status: task.StatusOverdue,
				DueLabel: "Mon, Jun 3",
			},
			want: "! Buy milk  Mon, Jun 3  01j0abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tuitest.StripANSI(TaskRow(tt.row, tt.showEmoji)))
		})
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Buy milk", "Buy milk"},
		{"markup is kept", "<b>bold</b>", "<b>bold</b>"},
		{"escape sequence removed", "\x1b[31mred\x1b[0m", "red"},
		{"newline flattened", "one\ntwo", "one two"},
		{"tab flattened", "a\tb", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.in))
		})
	}
}

func TestFilterLabel(t *testing.T) {
	assert.Equal(t, "All", FilterLabel(task.FilterAll))
	assert.Equal(t, "Pending", FilterLabel(task.FilterPending))
	assert.Equal(t, "Completed", FilterLabel(task.FilterCompleted))
	assert.Equal(t, "Overdue", FilterLabel(task.FilterOverdue))
}
