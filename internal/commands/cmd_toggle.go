package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/printer"
	"github.com/colonyops/todos/internal/tui/components"
	"github.com/colonyops/todos/pkg/iojson"
)

type ToggleCmd struct {
	flags *Flags
	app   *app.App

	// flags
	jsonOutput bool
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *app.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"done"},
		Usage:     "Mark a task completed, or pending again",
		UsageText: "todos toggle <id>",
		Description: `Flips the completion state of a task. The id may be shortened to any
prefix that matches a single task.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the updated task as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() != 1 {
		return errors.New("expected exactly one task id")
	}

	t, err := cmd.app.Tasks.Resolve(c.Args().First())
	if err != nil {
		return err
	}

	updated, err := cmd.app.Tasks.ToggleCompleted(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteLine(c.Root().Writer, updated)
	}

	if updated.Completed {
		p.Successf("Completed %q", components.SanitizeText(updated.Text))
	} else {
		p.Infof("Reopened %q (%s)", components.SanitizeText(updated.Text), task.Classify(updated, cmd.app.Tasks.Today()))
	}
	return nil
}
