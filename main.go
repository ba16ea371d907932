package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/app"
	"github.com/colonyops/todos/internal/commands"
	"github.com/colonyops/todos/internal/core/config"
	"github.com/colonyops/todos/internal/core/logging"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/printer"
	"github.com/colonyops/todos/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		todosApp  = &app.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "todos",
		Usage:     "Manage a task list from the terminal",
		UsageText: "todos [global options] command [command options]",
		Description: `Todos keeps a list of tasks with due dates. Tasks can be completed,
deleted and filtered by status: all, pending, completed or overdue.

Run 'todos' with no arguments to open the interactive task list.
Run 'todos add' to add a task from the command line.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TODOS_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/todos.log)",
				Sources:     cli.EnvVars("TODOS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TODOS_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TODOS_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "storage",
				Usage:       "storage backend (file, sqlite, memory); overrides storage.backend",
				Sources:     cli.EnvVars("TODOS_STORAGE"),
				Destination: &flags.Storage,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/todos.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "todos.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logging.Install(logger)
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if flags.Storage != "" {
				cfg.Storage.Backend = config.Backend(flags.Storage)
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("--storage: %w", err)
				}
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Display.Theme)
			styles.SetTheme(palette)

			opened, err := app.Open(ctx, cfg, log.Logger)
			if err != nil {
				return ctx, fmt.Errorf("open task list: %w", err)
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*todosApp = *opened

			ctx = printer.NewContext(ctx, printer.New(c.Root().Writer, c.Root().ErrWriter))
			if name := commandName(c); name != "" {
				ctx = logging.WithCommand(ctx, name)
			}
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			var closeErr error
			if todosApp.Tasks != nil {
				if err := todosApp.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close storage")
					closeErr = err
				}
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return closeErr
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, todosApp)

	root = commands.NewAddCmd(flags, todosApp).Register(root)
	root = commands.NewLsCmd(flags, todosApp).Register(root)
	root = commands.NewToggleCmd(flags, todosApp).Register(root)
	root = commands.NewRmCmd(flags, todosApp).Register(root)
	root = commands.NewStatsCmd(flags, todosApp).Register(root)
	root = commands.NewBatchCmd(flags, todosApp).Register(root)
	root = commands.NewExportCmd(flags, todosApp).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)
	root = commands.NewReportCmd(flags, todosApp).Register(root)
	root = commands.NewDoctorCmd(flags, todosApp).Register(root)
	root = tuiCmd.Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'todos --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := root.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

// commandName returns the subcommand about to run, or "" for the default action.
func commandName(c *cli.Command) string {
	if c.Args().Len() == 0 {
		return ""
	}
	return c.Args().First()
}
