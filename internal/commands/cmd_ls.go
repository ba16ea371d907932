package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/tui/components"
	"github.com/colonyops/todos/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *app.App

	// flags
	filter     string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *app.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks",
		UsageText: "todos ls [--filter all|pending|completed|overdue] [--json]",
		Description: `Displays tasks, most recently added first, followed by a counter of
total and completed tasks. Overdue tasks are pending tasks whose due date is
before today.

Use --json for JSON lines, one task per line.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "status filter (all, pending, completed, overdue)",
				Value:       string(task.FilterAll),
				Destination: &cmd.filter,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	filter, err := task.ParseFilter(cmd.filter)
	if err != nil {
		return err
	}

	tasks := cmd.app.Tasks
	tasks.SetFilter(filter)
	vm := tasks.View(tasks.Today(), cmd.app.Config.Display.DateLayout)

	out := c.Root().Writer

	if cmd.jsonOutput {
		if err := iojson.WriteLines(out, vm.Rows); err != nil {
			return fmt.Errorf("encode tasks: %w", err)
		}
		return nil
	}

	if vm.Empty {
		_, _ = fmt.Fprintln(out, styles.EmptyStyle.Render("No tasks found"))
	}

	showEmoji := cmd.app.Config.Display.ShowEmoji()
	for _, row := range vm.Rows {
		_, _ = fmt.Fprintln(out, components.TaskRow(row, showEmoji))
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, styles.CounterStyle.Render(vm.Summary.String()))
	return nil
}
