package task

import (
	"strings"

	"github.com/colonyops/todos/pkg/date"
)

// DefaultDateLayout renders dates like "Sat, Jun 15".
const DefaultDateLayout = "Mon, Jan 2"

// FormatDueDate returns "Today" or "Tomorrow" relative to ref, otherwise d
// formatted with layout (DefaultDateLayout when empty).
func FormatDueDate(d, ref date.Date, layout string) string {
	switch {
	case d.Equal(ref):
		return "Today"
	case d.Equal(ref.AddDays(1)):
		return "Tomorrow"
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return d.Format(layout)
}

// ExpandDueShorthand turns "today" and "tomorrow" into YYYY-MM-DD relative to
// today. Any other input is returned trimmed and otherwise unchanged.
func ExpandDueShorthand(raw string, today date.Date) string {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "today":
		return today.String()
	case "tomorrow":
		return today.AddDays(1).String()
	default:
		return raw
	}
}
