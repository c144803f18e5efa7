package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/docgrid"
)

// NewRoot builds the docgrid command tree. The caller sets Version and the
// Before/After hooks that populate app.
func NewRoot(flags *Flags, app *docgrid.App) *cli.Command {
	root := &cli.Command{
		Name:      "docgrid",
		Usage:     "Edit document signature records from the terminal",
		UsageText: "docgrid [global options] command [command options]",
		Description: `docgrid edits the document records served by the document API in a
spreadsheet-like grid. Rows are added, edited, and deleted locally and synced
to the server when committed.

Run 'docgrid login' once to save a credential.
Run 'docgrid' with no arguments to open the grid.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("DOCGRID_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/docgrid.log, '-' prints to stderr on exit)",
				Sources:     cli.EnvVars("DOCGRID_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DOCGRID_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("DOCGRID_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "document API base URL (overrides api.base_url)",
				Sources:     cli.EnvVars("DOCGRID_API_URL"),
				Destination: &flags.APIURL,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "bearer token to use instead of the saved credential",
				Sources:     cli.EnvVars("DOCGRID_TOKEN"),
				Destination: &flags.Token,
			},
		},
		EnableShellCompletion: true,
	}

	tuiCmd := NewTuiCmd(flags, app)

	root = tuiCmd.Register(root)
	root = NewLoginCmd(flags, app).Register(root)
	root = NewAuthCmd(flags, app).Register(root)
	root = NewLsCmd(flags, app).Register(root)
	root = NewShowCmd(flags, app).Register(root)
	root = NewAddCmd(flags, app).Register(root)
	root = NewSetCmd(flags, app).Register(root)
	root = NewRmCmd(flags, app).Register(root)
	root = NewNotificationsCmd(flags, app).Register(root)
	root = NewDoctorCmd(flags, app).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)
	root = NewMockServerCmd(flags).Register(root)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'docgrid --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}
