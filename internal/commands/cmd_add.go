package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/printer"
	"github.com/colonyops/todos/internal/tui/components"
	"github.com/colonyops/todos/pkg/iojson"
)

type AddCmd struct {
	flags *Flags
	app   *app.App

	// flags
	due        string
	jsonOutput bool

	text        string
	interactive func() bool
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *app.App) *AddCmd {
	return &AddCmd{flags: flags, app: app, interactive: stdinIsTerminal}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "todos add <description...> --due YYYY-MM-DD",
		Description: `Adds a pending task to the top of the list.

The description must be 3 to 100 characters. The due date is required and
cannot be in the past; "today" and "tomorrow" are accepted as shorthands.

Run without arguments in a terminal to fill in a form instead.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "due date (YYYY-MM-DD, today, tomorrow)",
				Destination: &cmd.due,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the created task as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	tasks := cmd.app.Tasks

	cmd.text = strings.Join(c.Args().Slice(), " ")
	if cmd.text == "" && cmd.due == "" && !cmd.jsonOutput && cmd.interactive() {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form error: %w", err)
		}
	}

	due := task.ExpandDueShorthand(cmd.due, tasks.Today())

	created, err := tasks.AddTask(ctx, cmd.text, due)
	if err != nil {
		if cmd.jsonOutput {
			if data := fieldErrorData(err); data != nil {
				_ = iojson.WriteError(c.Root().Writer, "invalid task", data)
				return cli.Exit("", 1)
			}
		} else if printFieldErrors(p, err) {
			return cli.Exit("", 1)
		}
		return fmt.Errorf("add task: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteLine(c.Root().Writer, created)
	}

	label := tasks.FormatDueDate(created.DueDate, tasks.Today(), cmd.app.Config.Display.DateLayout)
	p.Success("Task added", created.ID)
	p.Printf("  %s  %s", components.SanitizeText(created.Text), styles.DueLabelStyle.Render(label))
	return nil
}

func (cmd *AddCmd) runForm() error {
	tasks := cmd.app.Tasks

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Description("What needs doing (3 to 100 characters)").
				Validate(func(s string) error {
					return tasks.Validate(s, "").FieldError(task.FieldText)
				}).
				Value(&cmd.text),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, today or tomorrow").
				Placeholder(tasks.Today().AddDays(1).String()).
				Validate(func(s string) error {
					due := task.ExpandDueShorthand(s, tasks.Today())
					return tasks.Validate("", due).FieldError(task.FieldDueDate)
				}).
				Value(&cmd.due),
		),
	).WithTheme(styles.FormTheme()).Run()
}
