package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/tasklist"
	"github.com/colonyops/todos/internal/tui/components"
)

type ReportCmd struct {
	flags *Flags
	app   *app.App

	// flags
	raw   bool
	width int
}

// NewReportCmd creates a new report command
func NewReportCmd(flags *Flags, app *app.App) *ReportCmd {
	return &ReportCmd{flags: flags, app: app}
}

// Register adds the report command to the application
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Render the task list as a Markdown report",
		UsageText: "todos report [--raw] [--width 80]",
		Description: `Groups tasks into overdue, pending and completed sections.

Use --raw to print the Markdown source, for example to paste into notes.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print Markdown without terminal styling",
				Destination: &cmd.raw,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "word wrap width for rendered output",
				Value:       80,
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReportCmd) run(_ context.Context, c *cli.Command) error {
	tasks := cmd.app.Tasks
	today := tasks.Today()

	// The report always covers every task; the session filter is restored after.
	prev := tasks.Filter()
	tasks.SetFilter(task.FilterAll)
	view := tasks.View(today, cmd.app.Config.Display.DateLayout)
	tasks.SetFilter(prev)

	md := buildReport(view, today.String())

	if cmd.raw {
		_, err := fmt.Fprint(c.Root().Writer, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(cmd.width, 20)),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	_, err = fmt.Fprint(c.Root().Writer, rendered)
	return err
}

// buildReport renders view as Markdown with one section per derived status.
func buildReport(view tasklist.ViewModel, today string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tasks\n\n_%s, %s_\n", today, view.Summary.String())

	sections := []struct {
		title  string
		status task.Status
	}{
		{"Overdue", task.StatusOverdue},
		{"Pending", task.StatusPending},
		{"Completed", task.StatusCompleted},
	}

	for _, s := range sections {
		var items []string
		for _, row := range view.Rows {
			if row.Status != s.status {
				continue
			}
			box := " "
			if row.Completed {
				box = "x"
			}
			items = append(items, fmt.Sprintf("- [%s] %s (%s)", box, escapeMarkdown(row.Text), row.DueLabel))
		}
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.title, strings.Join(items, "\n"))
	}

	if view.Empty {
		b.WriteString("\nNo tasks found\n")
	}

	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"~", `\~`,
	"|", `\|`,
)

// escapeMarkdown keeps user text from being interpreted as Markdown markup.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(components.SanitizeText(s))
}
