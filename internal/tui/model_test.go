package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todos/internal/core/kv"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/printer"
	"github.com/colonyops/todos/internal/store/memory"
	"github.com/colonyops/todos/internal/tasklist"
	"github.com/colonyops/todos/pkg/tuitest"
)

var errDiskFull = errors.New("disk full")

// flakyKV fails every Set while fail is true.
type flakyKV struct {
	kv.KV
	fail bool
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	if f.fail {
		return errDiskFull
	}
	return f.KV.Set(ctx, key, value)
}

type harness struct {
	model   Model
	store   *tasklist.Store
	backend *flakyKV
	errOut  *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	backend := &flakyKV{KV: memory.New()}

	store, err := tasklist.New(t.Context(), backend, zerolog.Nop(),
		tasklist.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	m := New(t.Context(), store, Options{
		DateLayout: task.DefaultDateLayout,
		ShowEmoji:  true,
		Printer:    printer.New(&out, &errOut),
		Logger:     zerolog.Nop(),
	})

	return &harness{model: m, store: store, backend: backend, errOut: &errOut}
}

// seed adds tasks oldest first, so the last one ends up at the top.
func (h *harness) seed(t *testing.T, tasks ...[2]string) {
	t.Helper()
	for _, tt := range tasks {
		_, err := h.store.AddTask(t.Context(), tt[0], tt[1])
		require.NoError(t, err)
	}
}

func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = h.model.Update(msg)
		h.model = next.(Model)
	}
	return cmd
}

func (h *harness) view() string {
	return tuitest.StripANSI(h.model.View())
}

func TestView_EmptyState(t *testing.T) {
	h := newHarness(t)

	out := h.view()
	assert.Contains(t, out, "Todos")
	assert.Contains(t, out, "1 All")
	assert.Contains(t, out, "4 Overdue")
	assert.Contains(t, out, "No tasks found")
	assert.Contains(t, out, "0 total, 0 completed")
}

func TestView_ListsTasks(t *testing.T) {
	h := newHarness(t)
	h.seed(t,
		[2]string{"Write report", "2024-06-12"},
		[2]string{"Buy milk", "2024-06-11"},
		[2]string{"Call mom", "2024-06-10"},
	)

	out := h.view()
	assert.Contains(t, out, "› ○ Call mom  📅 Today")
	assert.Contains(t, out, "○ Buy milk  📅 Tomorrow")
	assert.Contains(t, out, "○ Write report  📅 Wed, Jun 12")
	assert.Contains(t, out, "3 total, 0 completed")
	assert.NotContains(t, out, "No tasks found")
}

func TestUpdate_ToggleSelected(t *testing.T) {
	h := newHarness(t)
	h.seed(t,
		[2]string{"Buy milk", "2024-06-11"},
		[2]string{"Call mom", "2024-06-10"},
	)

	h.send(tuitest.KeyDown(), tuitest.KeyEnter())

	tasks := h.store.Tasks()
	assert.False(t, tasks[0].Completed)
	assert.True(t, tasks[1].Completed, "cursor was on the second task")
	assert.Contains(t, h.view(), "2 total, 1 completed")
	assert.Contains(t, h.view(), `Completed "Buy milk"`)

	h.send(tuitest.KeyPress(' '))
	assert.False(t, h.store.Tasks()[1].Completed)
	assert.Contains(t, h.view(), `Reopened "Buy milk"`)
}

func TestUpdate_CursorStaysInBounds(t *testing.T) {
	h := newHarness(t)
	h.seed(t, [2]string{"Buy milk", "2024-06-11"})

	h.send(tuitest.KeyUp(), tuitest.KeyUp())
	assert.Equal(t, 0, h.model.cursor)

	h.send(tuitest.KeyDown(), tuitest.KeyDown())
	assert.Equal(t, 0, h.model.cursor)
}

func TestUpdate_Filters(t *testing.T) {
	h := newHarness(t)
	h.seed(t,
		[2]string{"Buy milk", "2024-06-11"},
		[2]string{"Call mom", "2024-06-10"},
	)
	h.send(tuitest.KeyEnter()) // complete "Call mom"

	h.send(tuitest.KeyTab())
	assert.Equal(t, task.FilterPending, h.store.Filter())
	out := h.view()
	assert.Contains(t, out, "Buy milk")
	assert.NotContains(t, out, "Call mom")
	assert.Contains(t, out, "2 total, 1 completed", "counter ignores the filter")

	h.send(tuitest.KeyPress('3'))
	assert.Equal(t, task.FilterCompleted, h.store.Filter())
	assert.Contains(t, h.view(), "Call mom")
	assert.NotContains(t, h.view(), "Buy milk")

	h.send(tuitest.KeyPress('4'))
	assert.Equal(t, task.FilterOverdue, h.store.Filter())
	assert.Contains(t, h.view(), "No tasks found")

	h.send(tuitest.Key(tea.KeyShiftTab))
	assert.Equal(t, task.FilterCompleted, h.store.Filter())

	h.send(tuitest.KeyPress('1'))
	assert.Equal(t, task.FilterAll, h.store.Filter())
}

func TestUpdate_AddTask(t *testing.T) {
	h := newHarness(t)
	h.seed(t,
		[2]string{"Buy milk", "2024-06-11"},
		[2]string{"Call mom", "2024-06-10"},
	)
	h.send(tuitest.KeyDown())
	require.Equal(t, 1, h.model.cursor)

	h.send(tuitest.KeyPress('a'))
	require.Equal(t, modeAdd, h.model.mode)
	assert.Contains(t, h.view(), "New task")

	h.send(tuitest.Type("Pay rent")...)
	h.send(tuitest.KeyTab())
	h.send(tuitest.Type("tomorrow")...)
	h.send(tuitest.KeyEnter())

	assert.Equal(t, modeList, h.model.mode)
	tasks := h.store.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "Pay rent", tasks[0].Text)
	assert.Equal(t, "2024-06-11", tasks[0].DueDate.String())
	assert.Equal(t, 0, h.model.cursor, "cursor follows the new task")
	assert.Contains(t, h.view(), `Added "Pay rent"`)
}

func TestUpdate_AddTaskValidation(t *testing.T) {
	h := newHarness(t)

	h.send(tuitest.KeyPress('a'))
	h.send(tuitest.Type("ab")...)
	h.send(tuitest.KeyEnter())

	assert.Equal(t, modeAdd, h.model.mode, "form stays open")
	assert.Empty(t, h.store.Tasks())
	assert.Equal(t, task.ErrTooShort.Error(), h.model.form.errs[task.FieldText])
	assert.Equal(t, task.ErrMissingDate.Error(), h.model.form.errs[task.FieldDueDate])
	assert.Equal(t, fieldText, h.model.form.focus)

	out := h.view()
	assert.Contains(t, out, task.ErrTooShort.Error())
	assert.Contains(t, out, task.ErrMissingDate.Error())

	// fix the text; only the date error remains and focus moves to it
	h.send(tuitest.Type("c")...)
	h.send(tuitest.KeyTab())
	h.send(tuitest.Type("2024-06-09")...)
	h.send(tuitest.KeyEnter())

	assert.Empty(t, h.model.form.errs[task.FieldText])
	assert.Equal(t, task.ErrPastDate.Error(), h.model.form.errs[task.FieldDueDate])
	assert.Equal(t, fieldDue, h.model.form.focus)
	assert.Empty(t, h.store.Tasks())
}

func TestUpdate_AddTaskCancel(t *testing.T) {
	h := newHarness(t)

	h.send(tuitest.KeyPress('a'))
	h.send(tuitest.Type("Pay rent")...)
	h.send(tuitest.KeyEsc())

	assert.Equal(t, modeList, h.model.mode)
	assert.Empty(t, h.store.Tasks())
	assert.Contains(t, h.view(), "No tasks found")
}

func TestUpdate_DeleteTask(t *testing.T) {
	h := newHarness(t)
	h.seed(t,
		[2]string{"Buy milk", "2024-06-11"},
		[2]string{"Call mom", "2024-06-10"},
	)

	h.send(tuitest.KeyPress('d'))
	require.Equal(t, modeConfirmDelete, h.model.mode)
	assert.Contains(t, h.view(), `Delete "Call mom"?`)

	h.send(tuitest.KeyPress('n'))
	assert.Equal(t, modeList, h.model.mode)
	assert.Len(t, h.store.Tasks(), 2)

	h.send(tuitest.KeyDown(), tuitest.KeyPress('d'), tuitest.KeyPress('y'))
	assert.Equal(t, modeList, h.model.mode)
	tasks := h.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Call mom", tasks[0].Text)
	assert.Equal(t, 0, h.model.cursor, "cursor clamps after removing the last row")
}

func TestUpdate_DeleteOnEmptyListIsNoop(t *testing.T) {
	h := newHarness(t)

	h.send(tuitest.KeyPress('d'))
	assert.Equal(t, modeList, h.model.mode)
}

func TestUpdate_PersistFailure(t *testing.T) {
	h := newHarness(t)
	h.seed(t, [2]string{"Buy milk", "2024-06-11"})

	h.backend.fail = true
	h.send(tuitest.KeyEnter())

	assert.False(t, h.store.Tasks()[0].Completed, "toggle rolled back")
	assert.Contains(t, h.view(), "Could not update task")
	assert.Contains(t, h.errOut.String(), errDiskFull.Error())
}

func TestUpdate_Quit(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, h.model.View())
}

func TestUpdate_WindowSize(t *testing.T) {
	h := newHarness(t)

	h.send(tuitest.WindowSize(100, 30))
	assert.Equal(t, 100, h.model.width)
	assert.Equal(t, 30, h.model.height)
}
