package commands

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCmd(t *testing.T) {
	e := newTestEnv(t)
	e.mustAdd(t, "Write report", "2024-06-10")
	e.mustAdd(t, "Pay rent", "2024-06-20")
	milk := e.mustAdd(t, "Buy milk", "2024-06-10")
	_, err := e.app.Tasks.ToggleCompleted(t.Context(), milk.ID)
	require.NoError(t, err)

	e.now = e.now.Add(48 * time.Hour)

	require.NoError(t, e.run(t, "stats", "--json"))

	var got Stats
	require.NoError(t, json.Unmarshal(e.out.Bytes(), &got))
	assert.Equal(t, Stats{Total: 3, Completed: 1, Pending: 2, Overdue: 1}, got)

	require.NoError(t, e.run(t, "stats"))
	assert.Contains(t, e.stdout(), "Tasks")
	assert.Contains(t, e.stdout(), "Overdue")
}
