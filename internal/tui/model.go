// Package tui implements the interactive task list.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/printer"
	"github.com/colonyops/todos/internal/tasklist"
	"github.com/colonyops/todos/internal/tui/components"
)

// mode is the current interaction state.
type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirmDelete
)

// Options configures the model.
type Options struct {
	DateLayout string
	ShowEmoji  bool

	// Printer receives messages that should outlive the UI, such as storage
	// failures. Defaults to the printer in the context.
	Printer *printer.Printer
	Logger  zerolog.Logger
}

// Model is the bubbletea model for the task list. The store is only touched
// from Update, so it never sees concurrent calls.
type Model struct {
	ctx   context.Context
	store *tasklist.Store
	opts  Options
	log   zerolog.Logger

	keys keyMap
	help help.Model

	mode   mode
	cursor int
	form   addForm
	modal  components.ConfirmModal

	// pendingDelete is the id awaiting confirmation.
	pendingDelete string

	status    string
	statusErr bool

	width, height int
	quitting      bool
}

// New creates a model over store.
func New(ctx context.Context, store *tasklist.Store, opts Options) Model {
	if opts.Printer == nil {
		opts.Printer = printer.Ctx(ctx)
	}

	return Model{
		ctx:   ctx,
		store: store,
		opts:  opts,
		log:   opts.Logger.With().Str("component", "tui").Logger(),
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modeAdd {
		cmd := m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.NextFilter):
		m.cycleFilter(1)
	case key.Matches(msg, m.keys.PrevFilter):
		m.cycleFilter(-1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.form = newAddForm(m.store.Today())
		m.clearStatus()
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.pendingDelete = t.ID
			m.modal = components.NewConfirmModal(
				"Delete task",
				fmt.Sprintf("Delete %q? This cannot be undone.", components.SanitizeText(t.Text)),
			)
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		if n := msg.String(); len(n) == 1 && n[0] >= '1' && n[0] < '1'+byte(len(task.Filters)) {
			m.setFilter(task.Filters[n[0]-'1'])
		}
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m, m.form.next()
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.form.prev()
	case tea.KeyEnter:
		return m.submitAdd()
	}

	cmd := m.form.update(msg)
	return m, cmd
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	text, due := m.form.values()
	due = task.ExpandDueShorthand(due, m.store.Today())

	created, err := m.store.AddTask(m.ctx, text, due)
	if err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			return m, m.form.setErrors(fieldErrs)
		}
		m.setError("Could not save task", err)
		return m, nil
	}

	m.mode = modeList
	m.setStatus(fmt.Sprintf("Added %q", components.SanitizeText(created.Text)))
	if idx := m.indexOf(created.ID); idx >= 0 {
		m.cursor = idx
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.modal, _ = m.modal.Update(msg)

	switch {
	case m.modal.Confirmed():
		id := m.pendingDelete
		m.pendingDelete = ""
		m.mode = modeList
		if err := m.store.DeleteTask(m.ctx, id); err != nil {
			m.setError("Could not delete task", err)
			return m, nil
		}
		m.setStatus("Task deleted")
		m.clampCursor()
	case m.modal.Cancelled():
		m.pendingDelete = ""
		m.mode = modeList
	}
	return m, nil
}

func (m *Model) toggleSelected() {
	t, ok := m.selected()
	if !ok {
		return
	}

	updated, err := m.store.ToggleCompleted(m.ctx, t.ID)
	if err != nil {
		m.setError("Could not update task", err)
		return
	}

	if updated.Completed {
		m.setStatus(fmt.Sprintf("Completed %q", components.SanitizeText(updated.Text)))
	} else {
		m.setStatus(fmt.Sprintf("Reopened %q", components.SanitizeText(updated.Text)))
	}
	m.clampCursor()
}

func (m *Model) cycleFilter(step int) {
	n := len(task.Filters)
	i := slices.Index(task.Filters, m.store.Filter())
	m.setFilter(task.Filters[((i+step)%n+n)%n])
}

func (m *Model) setFilter(f task.Filter) {
	m.store.SetFilter(f)
	m.cursor = 0
	m.clearStatus()
}

func (m Model) visible() []task.Task {
	return m.store.FilteredView(m.store.Today())
}

func (m Model) selected() (task.Task, bool) {
	tasks := m.visible()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m Model) indexOf(id string) int {
	return slices.IndexFunc(m.visible(), func(t task.Task) bool { return t.ID == id })
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(msg string) {
	m.status, m.statusErr = msg, false
}

func (m *Model) clearStatus() {
	m.status, m.statusErr = "", false
}

// setError shows err in the status line and queues it for the printer so it
// is still visible after the UI exits.
func (m *Model) setError(msg string, err error) {
	m.status, m.statusErr = fmt.Sprintf("%s: %v", msg, err), true
	m.opts.Printer.Errorf("%s: %v", msg, err)
	m.log.Error().Err(err).Msg(msg)
}
