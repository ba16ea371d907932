package iojson

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]int{"total": 2}))
	assert.JSONEq(t, `{"total":2}`, out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"ch": make(chan int)}))
	assert.Empty(t, out.String())

	var doc Error
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &doc))
	assert.Equal(t, "iojson: marshal output", doc.Message)
	assert.Contains(t, doc.Data, "json_error")
}

func TestWriteLines(t *testing.T) {
	type row struct {
		ID string `json:"id"`
	}
	var out bytes.Buffer

	require.NoError(t, WriteLines(&out, []row{{ID: "a"}, {ID: "b"}}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"id":"a"}`, lines[0])
	assert.JSONEq(t, `{"id":"b"}`, lines[1])
}

func TestWriteLines_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteLines[int](&out, nil))
	assert.Empty(t, out.String())
}

func TestMarshalError(t *testing.T) {
	var doc Error
	require.NoError(t, json.Unmarshal([]byte(MarshalError("not found", map[string]any{"id": "x"})), &doc))
	assert.Equal(t, "not found", doc.Message)
	assert.Equal(t, "x", doc.Data["id"])
}

func TestFileReader(t *testing.T) {
	type item struct {
		Text string `json:"text"`
	}

	t.Run("reads file flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"text":"a"},{"text":"b"}]`), 0o644))

		fr := &FileReader[[]item]{fileFlagValue: path}
		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, []item{{Text: "a"}, {Text: "b"}}, got)
	})

	t.Run("reads injected stdin", func(t *testing.T) {
		fr := &FileReader[[]item]{stdin: strings.NewReader(`[{"text":"c"}]`)}
		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, []item{{Text: "c"}}, got)
	})

	t.Run("missing file", func(t *testing.T) {
		fr := &FileReader[[]item]{fileFlagValue: filepath.Join(t.TempDir(), "nope.json")}
		_, err := fr.Read()
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("bad json", func(t *testing.T) {
		fr := &FileReader[[]item]{stdin: strings.NewReader(`{`)}
		_, err := fr.Read()
		assert.ErrorContains(t, err, "decode JSON")
	})
}
