package commands

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/core/config"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/printer"
	"github.com/colonyops/todos/internal/tasklist"
	"github.com/colonyops/todos/pkg/tuitest"
)

func TestMain(m *testing.M) {
	cli.OsExiter = func(int) {}
	os.Exit(m.Run())
}

// testEnv runs commands against an in-memory app with a controllable clock.
type testEnv struct {
	app   *app.App
	flags *Flags
	now   time.Time

	interactive bool
	confirm     bool
	prompted    []string

	out    bytes.Buffer
	errOut bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Storage.Backend = config.BackendMemory
	cfg.DataDir = t.TempDir()

	e := &testEnv{now: time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)}

	a, err := app.Open(t.Context(), &cfg, zerolog.Nop(),
		tasklist.WithClock(func() time.Time { return e.now }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	e.app = a
	e.flags = &Flags{Config: &cfg, DataDir: cfg.DataDir}
	return e
}

func (e *testEnv) root() *cli.Command {
	root := &cli.Command{
		Name:           "todos",
		Writer:         &e.out,
		ErrWriter:      &e.errOut,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	add := NewAddCmd(e.flags, e.app)
	add.interactive = func() bool { return false }

	rm := NewRmCmd(e.flags, e.app)
	rm.interactive = func() bool { return e.interactive }
	rm.confirm = func(title string) (bool, error) {
		e.prompted = append(e.prompted, title)
		return e.confirm, nil
	}

	root = add.Register(root)
	root = NewLsCmd(e.flags, e.app).Register(root)
	root = NewToggleCmd(e.flags, e.app).Register(root)
	root = rm.Register(root)
	root = NewStatsCmd(e.flags, e.app).Register(root)
	root = NewBatchCmd(e.flags, e.app).Register(root)
	root = NewExportCmd(e.flags, e.app).Register(root)
	root = NewConfigValidateCmd(e.flags).Register(root)
	root = NewDoctorCmd(e.flags, e.app).Register(root)
	root = NewReportCmd(e.flags, e.app).Register(root)
	return root
}

// run executes one command line. Output buffers are reset first.
func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()

	e.out.Reset()
	e.errOut.Reset()

	ctx := printer.NewContext(t.Context(), printer.New(&e.out, &e.errOut))
	return e.root().Run(ctx, append([]string{"todos"}, args...))
}

func (e *testEnv) stdout() string {
	return tuitest.StripANSI(e.out.String())
}

func (e *testEnv) stderr() string {
	return tuitest.StripANSI(e.errOut.String())
}

func (e *testEnv) mustAdd(t *testing.T, text, due string) task.Task {
	t.Helper()

	created, err := e.app.Tasks.AddTask(t.Context(), text, due)
	require.NoError(t, err)
	return created
}

func TestSentence(t *testing.T) {
	assert.Equal(t, "Due date is required", sentence("due date is required"))
	assert.Equal(t, "Ünicode", sentence("ünicode"))
	assert.Empty(t, sentence(""))
}
