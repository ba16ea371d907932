package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/printer"
	"github.com/colonyops/todos/internal/tui/components"
)

// errNeedsConfirmation is returned when rm cannot prompt and --yes is unset.
var errNeedsConfirmation = errors.New("stdin is not a terminal; pass --yes to delete without confirmation")

type RmCmd struct {
	flags *Flags
	app   *app.App

	// flags
	yes bool

	interactive func() bool
	confirm     func(title string) (bool, error)
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *app.App) *RmCmd {
	return &RmCmd{
		flags:       flags,
		app:         app,
		interactive: stdinIsTerminal,
		confirm:     confirmPrompt,
	}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Aliases:   []string{"delete"},
		Usage:     "Delete a task",
		UsageText: "todos rm <id> [--yes]",
		Description: `Deletes a task after asking for confirmation. The id may be shortened to
any prefix that matches a single task.

When stdin is not a terminal, --yes is required.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() != 1 {
		return errors.New("expected exactly one task id")
	}

	t, err := cmd.app.Tasks.Resolve(c.Args().First())
	if err != nil {
		return err
	}

	if !cmd.yes {
		if !cmd.interactive() {
			return errNeedsConfirmation
		}

		ok, err := cmd.confirm(fmt.Sprintf("Delete %q?", components.SanitizeText(t.Text)))
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			p.Infof("Kept %q", components.SanitizeText(t.Text))
			return nil
		}
	}

	if err := cmd.app.Tasks.DeleteTask(ctx, t.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	p.Success("Task deleted", t.ID)
	return nil
}

func confirmPrompt(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description("This cannot be undone.").
		Affirmative("Delete").
		Negative("Keep").
		Value(&ok).
		Run()
	return ok, err
}
