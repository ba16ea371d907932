package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/printer"
	"github.com/colonyops/todos/internal/tui"
	"github.com/colonyops/todos/pkg/profiler"
	"github.com/colonyops/todos/pkg/utils"
)

type TuiCmd struct {
	flags *Flags
	app   *app.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *app.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("TODOS_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive task list",
		UsageText: "todos tui",
		Description: `Opens the interactive task list. This is also what runs when todos is
started without a command.`,
		Action: cmd.Run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	// Start profiler server if enabled
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	// The program owns the terminal while it runs; anything printed in the
	// meantime is shown once it exits.
	deferred := &utils.DeferredWriter{}
	defer func() {
		if !deferred.Pending() {
			return
		}
		if err := deferred.Flush(os.Stderr); err != nil {
			log.Error().Err(err).Msg("failed to flush deferred output")
		}
	}()

	m := tui.New(ctx, cmd.app.Tasks, tui.Options{
		DateLayout: cmd.app.Config.Display.DateLayout,
		ShowEmoji:  cmd.app.Config.Display.ShowEmoji(),
		Printer:    printer.New(deferred, deferred),
		Logger:     log.Logger,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
