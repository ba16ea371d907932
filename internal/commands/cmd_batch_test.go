package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todos/internal/core/task"
)

func writeBatchFile(t *testing.T, input BatchInput) string {
	t.Helper()

	data, err := json.Marshal(input)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestBatchInput_Validate(t *testing.T) {
	assert.Error(t, BatchInput{}.Validate())
	assert.Error(t, BatchInput{Tasks: []BatchTask{}}.Validate())
	assert.NoError(t, BatchInput{Tasks: []BatchTask{{Text: "x"}}}.Validate(), "task contents are checked on add")
}

func TestBatchCmd(t *testing.T) {
	e := newTestEnv(t)

	path := writeBatchFile(t, BatchInput{Tasks: []BatchTask{
		{Text: "Buy milk", Due: "tomorrow"},
		{Text: "ab", Due: "2024-06-12"},
		{Text: "Pay rent", Due: "2024-06-20"},
	}})

	require.NoError(t, e.run(t, "batch", "-f", path))

	var out BatchOutput
	require.NoError(t, json.Unmarshal(e.out.Bytes(), &out))
	require.Len(t, out.Results, 3)

	assert.Equal(t, StatusCreated, out.Results[0].Status)
	assert.Equal(t, "2024-06-11", out.Results[0].Due)
	assert.NotEmpty(t, out.Results[0].ID)

	assert.Equal(t, StatusFailed, out.Results[1].Status)
	assert.Equal(t, task.ErrTooShort.Error(), out.Results[1].Fields[task.FieldText])

	assert.Equal(t, StatusCreated, out.Results[2].Status)

	tasks := e.app.Tasks.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Pay rent", tasks[0].Text, "added in input order, so the last one is on top")
	assert.Equal(t, "Buy milk", tasks[1].Text)
}

func TestBatchCmd_StopsAfterMaxFailures(t *testing.T) {
	e := newTestEnv(t)

	path := writeBatchFile(t, BatchInput{Tasks: []BatchTask{
		{Text: "a"},
		{Text: "b"},
		{Text: "c"},
		{Text: "Buy milk", Due: "today"},
		{Text: "Pay rent", Due: "today"},
	}})

	require.NoError(t, e.run(t, "batch", "--file", path))

	var out BatchOutput
	require.NoError(t, json.Unmarshal(e.out.Bytes(), &out))
	require.Len(t, out.Results, 5)
	assert.Equal(t, 3, countByStatus(out.Results, StatusFailed))
	assert.Equal(t, 2, countByStatus(out.Results, StatusSkipped))
	assert.Empty(t, e.app.Tasks.Tasks())
}

func TestBatchCmd_InvalidInput(t *testing.T) {
	e := newTestEnv(t)

	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks":[]}`), 0o644))

	require.Error(t, e.run(t, "batch", "-f", path))
	assert.Contains(t, e.stdout(), "invalid input")

	require.Error(t, e.run(t, "batch", "-f", filepath.Join(t.TempDir(), "missing.json")))
	assert.Contains(t, e.stdout(), "read input")
}
