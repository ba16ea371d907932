package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/printer"
	"github.com/colonyops/todos/pkg/iojson"
)

type ExportCmd struct {
	flags *Flags
	app   *app.App

	// flags
	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *app.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write all tasks as a JSON array",
		UsageText: "todos export [-o tasks.json]",
		Description: `Writes the full task list, regardless of status, in the same format the
file backend stores it in.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write to file instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	tasks := cmd.app.Tasks.Tasks()

	if cmd.output == "" {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, tasks)
	}

	f, err := os.Create(cmd.output)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := iojson.WriteWith(f, c.Root().ErrWriter, tasks); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	printer.Ctx(ctx).Success(fmt.Sprintf("Exported %d task(s)", len(tasks)), cmd.output)
	return nil
}
