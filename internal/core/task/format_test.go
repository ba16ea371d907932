package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/colonyops/todos/pkg/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDueDate(t *testing.T) {
	ref := date.MustParse("2024-06-10")

	tests := []struct {
		name   string
		due    string
		layout string
		want   string
	}{
		{"today", "2024-06-10", "", "Today"},
		{"tomorrow", "2024-06-11", "", "Tomorrow"},
		{"later this week", "2024-06-15", "", "Sat, Jun 15"},
		{"yesterday", "2024-06-09", "", "Sun, Jun 9"},
		{"custom layout", "2024-06-15", "02 Jan 2006", "15 Jun 2024"},
		{"month boundary tomorrow", "2024-07-01", "", "Mon, Jul 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDueDate(date.MustParse(tt.due), ref, tt.layout))
		})
	}

	assert.Equal(t, "Tomorrow", FormatDueDate(date.MustParse("2024-07-01"), date.MustParse("2024-06-30"), ""))
}

func TestTask_JSONWireFormat(t *testing.T) {
	created := time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)
	in := []Task{
		{ID: "b", Text: "Second", DueDate: date.MustParse("2024-06-12"), Completed: true, CreatedAt: created.Add(time.Minute)},
		{ID: "a", Text: "First", DueDate: date.MustParse("2024-06-11"), CreatedAt: created},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, "b", raw[0]["id"])
	assert.Equal(t, "Second", raw[0]["text"])
	assert.Equal(t, "2024-06-12", raw[0]["dueDate"])
	assert.Equal(t, true, raw[0]["completed"])
	assert.Equal(t, "2024-06-10T09:31:00Z", raw[0]["createdAt"])

	var out []Task
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Text, out[i].Text)
		assert.Equal(t, in[i].DueDate, out[i].DueDate)
		assert.Equal(t, in[i].Completed, out[i].Completed)
		assert.True(t, in[i].CreatedAt.Equal(out[i].CreatedAt))
	}
}

func TestTask_DecodesBrowserPayload(t *testing.T) {
	payload := `[{"id":"lx1abc","text":"Pay rent","dueDate":"2024-07-01","completed":false,"createdAt":"2024-06-10T08:00:00.000Z"}]`

	var tasks []Task
	require.NoError(t, json.Unmarshal([]byte(payload), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "lx1abc", tasks[0].ID)
	assert.Equal(t, date.MustParse("2024-07-01"), tasks[0].DueDate)
}

func TestExpandDueShorthand(t *testing.T) {
	today := date.MustParse("2024-06-30")

	tests := []struct {
		raw  string
		want string
	}{
		{"today", "2024-06-30"},
		{" Tomorrow ", "2024-07-01"},
		{"2024-08-01", "2024-08-01"},
		{"  next week ", "next week"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandDueShorthand(tt.raw, today))
		})
	}
}
