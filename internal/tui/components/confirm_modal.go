package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/todos/internal/core/styles"
)

// ConfirmModal is a simple yes/no confirmation dialog.
type ConfirmModal struct {
	title     string
	message   string
	confirmed bool
	cancelled bool
}

// NewConfirmModal creates a new confirmation modal.
func NewConfirmModal(title, message string) ConfirmModal {
	return ConfirmModal{
		title:   title,
		message: message,
	}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.confirmed = true
	case "n", "N", "esc", "q":
		m.cancelled = true
	}

	return m, nil
}

// View renders the confirmation modal.
func (m ConfirmModal) View() string {
	return styles.ModalStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TitleStyle.Render(m.title),
		"",
		m.message,
		"",
		styles.HelpStyle.Render("y/enter confirm  n/esc cancel"),
	))
}

// Overlay centers the modal in a width x height area. With no known size the
// modal is placed below the background instead.
func (m ConfirmModal) Overlay(background string, width, height int) string {
	if width <= 0 || height <= 0 {
		return background + "\n\n" + m.View()
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.View())
}

// Confirmed returns true if user confirmed.
func (m ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Cancelled returns true if user cancelled.
func (m ConfirmModal) Cancelled() bool {
	return m.cancelled
}
