package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todos/internal/core/task"
)

func TestReportCmd_Raw(t *testing.T) {
	e := newTestEnv(t)
	e.mustAdd(t, "Write report", "2024-06-10")
	e.mustAdd(t, "Pay rent", "2024-06-20")
	milk := e.mustAdd(t, "Buy milk", "2024-06-11")
	_, err := e.app.Tasks.ToggleCompleted(t.Context(), milk.ID)
	require.NoError(t, err)
	e.now = e.now.Add(24 * time.Hour)

	require.NoError(t, e.run(t, "report", "--raw"))

	out := e.out.String()
	assert.Contains(t, out, "# Tasks")
	assert.Contains(t, out, "_2024-06-11, 3 total, 1 completed_")
	assert.Contains(t, out, "## Overdue\n\n- [ ] Write report (Mon, Jun 10)")
	assert.Contains(t, out, "## Pending\n\n- [ ] Pay rent (Thu, Jun 20)")
	assert.Contains(t, out, "## Completed\n\n- [x] Buy milk (Today)")
	assert.Less(t, strings.Index(out, "## Overdue"), strings.Index(out, "## Pending"))
}

func TestReportCmd_IgnoresSessionFilter(t *testing.T) {
	e := newTestEnv(t)
	e.mustAdd(t, "Pay rent", "2024-06-20")
	e.app.Tasks.SetFilter(task.FilterCompleted)

	require.NoError(t, e.run(t, "report", "--raw"))

	assert.Contains(t, e.out.String(), "Pay rent")
	assert.Equal(t, task.FilterCompleted, e.app.Tasks.Filter())
}

func TestReportCmd_EscapesMarkdown(t *testing.T) {
	e := newTestEnv(t)
	e.mustAdd(t, "Fix *all* the [bugs]", "2024-06-20")

	require.NoError(t, e.run(t, "report", "--raw"))

	assert.Contains(t, e.out.String(), `Fix \*all\* the \[bugs\]`)
}

func TestReportCmd_Empty(t *testing.T) {
	e := newTestEnv(t)

	require.NoError(t, e.run(t, "report", "--raw"))

	out := e.out.String()
	assert.Contains(t, out, "No tasks found")
	assert.NotContains(t, out, "## ")
}

func TestReportCmd_Rendered(t *testing.T) {
	e := newTestEnv(t)
	e.mustAdd(t, "Pay rent", "2024-06-20")

	require.NoError(t, e.run(t, "report"))

	out := e.stdout()
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Pay rent")
}
