package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/pkg/date"
)

const (
	fieldText = iota
	fieldDue
)

// addForm collects a description and due date. Field errors from the last
// submit are shown under their inputs until the next submit.
type addForm struct {
	inputs [2]textinput.Model
	focus  int
	errs   map[string]string
}

func newAddForm(today date.Date) addForm {
	text := textinput.New()
	text.Placeholder = "What needs doing?"
	text.CharLimit = 2 * task.MaxTextLength
	text.Prompt = ""

	due := textinput.New()
	due.Placeholder = today.AddDays(1).String() + " (or today, tomorrow)"
	due.CharLimit = 32
	due.Prompt = ""

	f := addForm{inputs: [2]textinput.Model{text, due}}
	f.inputs[fieldText].Focus()
	return f
}

func (f *addForm) focusField(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[f.focus].Focus()
}

func (f *addForm) next() tea.Cmd {
	return f.focusField((f.focus + 1) % len(f.inputs))
}

func (f *addForm) prev() tea.Cmd {
	return f.focusField((f.focus + len(f.inputs) - 1) % len(f.inputs))
}

func (f *addForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f addForm) values() (text, due string) {
	return f.inputs[fieldText].Value(), f.inputs[fieldDue].Value()
}

// setErrors records field errors and moves focus to the first failing field.
func (f *addForm) setErrors(fieldErrs criterio.FieldErrors) tea.Cmd {
	f.errs = make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		f.errs[fe.Field] = fe.Err.Error()
	}

	switch {
	case f.errs[task.FieldText] != "":
		return f.focusField(fieldText)
	case f.errs[task.FieldDueDate] != "":
		return f.focusField(fieldDue)
	}
	return nil
}

func (f addForm) view() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("New task"))
	b.WriteString("\n\n")
	b.WriteString(f.field(fieldText, "Description", task.FieldText))
	b.WriteString("\n")
	b.WriteString(f.field(fieldDue, "Due date", task.FieldDueDate))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("enter save  tab next field  esc cancel"))

	return b.String()
}

func (f addForm) field(i int, label, name string) string {
	style := styles.FormFieldStyle
	if f.focus == i {
		style = styles.FormFocusedStyle
	}

	content := label + "\n" + f.inputs[i].View()
	if msg := f.errs[name]; msg != "" {
		content += "\n" + styles.FormErrorStyle.Render(msg)
	}
	return style.Render(content) + "\n"
}
