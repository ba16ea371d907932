package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/core/doctor"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	app     *app.App
	format  string
	autofix bool
}

// NewDoctorCmd creates a new doctor command.
func NewDoctorCmd(flags *Flags, app *app.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

// Register adds the doctor command to the application.
func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your todos setup",
		UsageText:   "todos doctor [options]",
		Description: "Runs diagnostic checks on configuration, the data directory and the stored task list.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "automatically fix issues (create the data directory, move aside a malformed task list)",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	cfg := cmd.app.Config

	logFile := cmd.flags.LogFile
	if logFile == "" {
		logFile = filepath.Join(cfg.DataDir, "todos.log")
	}

	return []doctor.Check{
		doctor.ConfigCheck{Config: cfg, ConfigPath: cmd.flags.ConfigPath},
		doctor.DataDirCheck{Dir: cfg.DataDir},
		doctor.StorageCheck{Backend: cfg.Storage.Backend, KV: cmd.app.KV, Key: cfg.Storage.Key},
		doctor.LogFileCheck{Path: logFile},
	}
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks(), cmd.autofix)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(c, results)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(c *cli.Command, results []doctor.Result) error {
	w := c.Root().Writer
	muted := styles.DueLabelStyle

	_, _ = fmt.Fprintln(w, styles.TitleStyle.Render("Todos Doctor"))
	_, _ = fmt.Fprintln(w, muted.Render(strings.Repeat("─", 40)))
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.TitleStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + muted.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.SuccessStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.WarnStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.ErrorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		styles.SuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.WarnStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)

	if !cmd.autofix {
		if fixable := doctor.CountFixable(results); fixable > 0 {
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, muted.Render(fmt.Sprintf("Run 'todos doctor --autofix' to fix %d issue(s)", fixable)))
		}
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
