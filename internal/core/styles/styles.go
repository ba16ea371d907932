// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/colonyops/todos/internal/core/task"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// Task status styles. Completed tasks are struck through.
	PendingStyle   lipgloss.Style
	OverdueStyle   lipgloss.Style
	CompletedStyle lipgloss.Style
	DueLabelStyle  lipgloss.Style
	CounterStyle   lipgloss.Style
	EmptyStyle     lipgloss.Style
	IDStyle        lipgloss.Style

	// CLI printer styles.
	InfoStyle    lipgloss.Style
	SuccessStyle lipgloss.Style
	WarnStyle    lipgloss.Style
	ErrorStyle   lipgloss.Style

	// TUI shared styles.
	TitleStyle       lipgloss.Style
	TabSelectedStyle lipgloss.Style
	TabNormalStyle   lipgloss.Style
	CursorStyle      lipgloss.Style
	ModalStyle       lipgloss.Style
	FormFieldStyle   lipgloss.Style
	FormFocusedStyle lipgloss.Style
	FormErrorStyle   lipgloss.Style
	HelpStyle        lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	PendingStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	OverdueStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	CompletedStyle = lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true)
	DueLabelStyle = lipgloss.NewStyle().Foreground(p.Muted)
	CounterStyle = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	EmptyStyle = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	IDStyle = lipgloss.NewStyle().Foreground(p.Surface)

	InfoStyle = lipgloss.NewStyle().Foreground(p.Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarnStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	TitleStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	TabSelectedStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Underline(true)
	TabNormalStyle = lipgloss.NewStyle().Foreground(p.Muted)
	CursorStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Muted).
		PaddingLeft(1)
	FormFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Primary).
		PaddingLeft(1)
	FormErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	HelpStyle = lipgloss.NewStyle().Foreground(p.Muted)
}

// ForStatus returns the text style for a task status.
func ForStatus(s task.Status) lipgloss.Style {
	switch s {
	case task.StatusCompleted:
		return CompletedStyle
	case task.StatusOverdue:
		return OverdueStyle
	default:
		return PendingStyle
	}
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// FormTheme returns a huh theme using the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()
	p := CurrentPalette

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Primary)
	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Blurred.Title = t.Blurred.Title.Foreground(p.Muted)

	return t
}
