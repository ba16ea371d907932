package commands

import (
	"context"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/core/task"
	"github.com/colonyops/todos/internal/printer"
	"github.com/colonyops/todos/pkg/date"
	"github.com/colonyops/todos/pkg/iojson"
)

type StatsCmd struct {
	flags *Flags
	app   *app.App

	// flags
	jsonOutput bool
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags, app *app.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Show task counters",
		UsageText: "todos stats [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// Stats is the output of todos stats.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	stats := collectStats(cmd.app.Tasks.Tasks(), cmd.app.Tasks.Today())

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, stats)
	}

	p := printer.Ctx(ctx)
	p.Section("Tasks")
	p.Printf("  %-10s %d", "Total", stats.Total)
	p.Printf("  %-10s %s", "Completed", styles.SuccessStyle.Render(strconv.Itoa(stats.Completed)))
	p.Printf("  %-10s %s", "Pending", styles.PendingStyle.Render(strconv.Itoa(stats.Pending)))
	p.Printf("  %-10s %s", "Overdue", styles.OverdueStyle.Render(strconv.Itoa(stats.Overdue)))
	return nil
}

// collectStats counts tasks by derived status. Overdue tasks are also
// counted as pending.
func collectStats(tasks []task.Task, today date.Date) Stats {
	summary := task.Summarize(tasks)
	stats := Stats{
		Total:     summary.Total,
		Completed: summary.Completed,
		Pending:   summary.Pending(),
	}
	for _, t := range tasks {
		if task.Classify(t, today) == task.StatusOverdue {
			stats.Overdue++
		}
	}
	return stats
}
