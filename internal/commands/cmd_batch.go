package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/core/logging"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/pkg/iojson"
)

type BatchCmd struct {
	flags *Flags
	app   *app.App
	fr    *iojson.FileReader[BatchInput]
}

// NewBatchCmd creates a new batch command
func NewBatchCmd(flags *Flags, app *app.App) *BatchCmd {
	return &BatchCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[BatchInput]{},
	}
}

// Register adds the batch command to the application
func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "batch",
		Usage: "Add multiple tasks from JSON input",
		UsageText: `todos batch [options]

Read from stdin:
  echo '{"tasks":[{"text":"Buy milk","due":"tomorrow"}]}' | todos batch

Read from file:
  todos batch -f tasks.json`,
		Description: `Adds tasks from a JSON document, in order, as if each were passed to
'todos add'. Each task is validated on its own; invalid tasks are reported
and do not stop the rest.

Processing stops after 3 failures. Tasks not attempted are marked as skipped.

Input JSON schema:
  {
    "tasks": [
      {"text": "description", "due": "YYYY-MM-DD"}
    ]
  }

Output is JSON with the result for each task.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BatchCmd) run(ctx context.Context, c *cli.Command) error {
	out, errOut := c.Root().Writer, c.Root().ErrWriter

	input, err := cmd.fr.Read()
	if err != nil {
		_ = iojson.WriteError(out, fmt.Sprintf("read input: %s", err), nil)
		return cli.Exit("", 1)
	}

	if err := input.Validate(); err != nil {
		_ = iojson.WriteError(out, fmt.Sprintf("invalid input: %s", err), nil)
		return cli.Exit("", 1)
	}

	logger := logging.Component("batch")
	output := BatchOutput{Results: make([]BatchResult, 0, len(input.Tasks))}

	failures := 0
	for i, in := range input.Tasks {
		if failures >= maxFailures {
			logger.Warn().Int("index", i).Msg("skipping remaining tasks due to failure threshold")
			for j := i; j < len(input.Tasks); j++ {
				output.Results = append(output.Results, BatchResult{
					Text:   input.Tasks[j].Text,
					Status: StatusSkipped,
				})
			}
			break
		}

		result := cmd.addTask(ctx, in)
		output.Results = append(output.Results, result)

		if result.Status == StatusFailed {
			failures++
			logger.Error().Int("index", i).Str("error", result.Error).Msg("task creation failed")
		}
	}

	logger.Info().
		Int("total", len(input.Tasks)).
		Int("created", countByStatus(output.Results, StatusCreated)).
		Int("failed", countByStatus(output.Results, StatusFailed)).
		Int("skipped", countByStatus(output.Results, StatusSkipped)).
		Msg("batch processing complete")

	return iojson.WriteWith(out, errOut, output)
}

func (cmd *BatchCmd) addTask(ctx context.Context, in BatchTask) BatchResult {
	tasks := cmd.app.Tasks
	due := task.ExpandDueShorthand(in.Due, tasks.Today())

	created, err := tasks.AddTask(ctx, in.Text, due)
	if err != nil {
		result := BatchResult{Text: in.Text, Status: StatusFailed, Error: err.Error()}

		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			result.Fields = make(map[string]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				result.Fields[fe.Field] = fe.Err.Error()
			}
		}
		return result
	}

	return BatchResult{
		ID:     created.ID,
		Text:   created.Text,
		Due:    created.DueDate.String(),
		Status: StatusCreated,
	}
}

const (
	StatusCreated = "created" // StatusCreated indicates the task was added.
	StatusFailed  = "failed"  // StatusFailed indicates the task was rejected.
	StatusSkipped = "skipped" // StatusSkipped indicates the task was not attempted due to failure threshold.
	maxFailures   = 3         // maxFailures is the number of failures before stopping batch processing.
)

// BatchInput is the JSON input schema for batch task creation.
type BatchInput struct {
	Tasks []BatchTask `json:"tasks"`
}

// Validate checks the document shape. Task contents are validated when each
// task is added.
func (b BatchInput) Validate() error {
	if len(b.Tasks) == 0 {
		return criterio.NewFieldErrors("tasks", errors.New("array is empty"))
	}
	return nil
}

// BatchTask defines a single task to add.
type BatchTask struct {
	Text string `json:"text"`
	Due  string `json:"due"`
}

// BatchResult is the output for a single task.
type BatchResult struct {
	ID     string            `json:"id,omitempty"`
	Text   string            `json:"text"`
	Due    string            `json:"due,omitempty"`
	Status string            `json:"status"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// BatchOutput is the JSON output schema.
type BatchOutput struct {
	Results []BatchResult `json:"results"`
}

func countByStatus(results []BatchResult, status string) int {
	count := 0
	for _, r := range results {
		if r.Status == status {
			count++
		}
	}
	return count
}
