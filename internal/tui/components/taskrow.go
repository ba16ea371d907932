package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/tasklist"
)

// TaskRow renders one list line: status icon, text, due label and id.
func TaskRow(row tasklist.Row, showEmoji bool) string {
	style := styles.ForStatus(row.Status)
	icon := styles.StatusIcon(row.Completed, row.Status == task.StatusOverdue)

	label := row.DueLabel
	if showEmoji {
		label = styles.IconCalendar + " " + label
	}

	return style.Render(icon) + " " +
		style.Render(SanitizeText(row.Text)) + "  " +
		styles.DueLabelStyle.Render(label) + "  " +
		styles.IDStyle.Render(row.ID)
}

// SanitizeText strips escape sequences and control characters so user text
// cannot restyle or break the terminal layout.
func SanitizeText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, ansi.Strip(s))
}

// FilterLabel returns the display name of f.
func FilterLabel(f task.Filter) string {
	switch f {
	case task.FilterPending:
		return "Pending"
	case task.FilterCompleted:
		return "Completed"
	case task.FilterOverdue:
		return "Overdue"
	default:
		return "All"
	}
}
