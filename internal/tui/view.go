package tui

import (
	"fmt"
	"strings"

	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/tui/components"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Todos"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.mode == modeAdd {
		b.WriteString(m.form.view())
		return b.String()
	}

	b.WriteString(m.renderList())
	b.WriteString("\n")

	if m.status != "" {
		style := styles.SuccessStyle
		if m.statusErr {
			style = styles.ErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	if m.mode == modeConfirmDelete {
		return m.modal.Overlay(b.String(), m.width, m.height)
	}
	return b.String()
}

func (m Model) renderTabs() string {
	current := m.store.Filter()

	tabs := make([]string, 0, len(task.Filters))
	for i, f := range task.Filters {
		label := fmt.Sprintf("%d %s", i+1, components.FilterLabel(f))
		if f == current {
			tabs = append(tabs, styles.TabSelectedStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabNormalStyle.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

func (m Model) renderList() string {
	vm := m.store.View(m.store.Today(), m.opts.DateLayout)

	var b strings.Builder
	if vm.Empty {
		b.WriteString(styles.EmptyStyle.Render("No tasks found"))
		b.WriteString("\n")
	}

	for i, row := range vm.Rows {
		cursor := "  "
		if i == m.cursor {
			cursor = styles.CursorStyle.Render(styles.IconCursor) + " "
		}
		b.WriteString(cursor)
		b.WriteString(components.TaskRow(row, m.opts.ShowEmoji))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.CounterStyle.Render(vm.Summary.String()))
	b.WriteString("\n")
	return b.String()
}
