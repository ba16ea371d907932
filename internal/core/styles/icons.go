package styles

var (
	IconCalendar  = "📅"
	IconCheck     = "✔"
	IconPending   = "○"
	IconOverdue   = "!"
	IconCursor    = "›"
	IconSeparator = "·"
)

// StatusIcon returns the marker drawn in front of a task.
func StatusIcon(completed, overdue bool) string {
	switch {
	case completed:
		return IconCheck
	case overdue:
		return IconOverdue
	default:
		return IconPending
	}
}
