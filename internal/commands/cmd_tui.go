package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/docgrid"
	"github.com/colonyops/docgrid/internal/docgrid/updatecheck"
	"github.com/colonyops/docgrid/internal/tui/grid"
)

type TuiCmd struct {
	flags *Flags
	app   *docgrid.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *docgrid.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive record grid",
		UsageText: "docgrid tui",
		Description: `Opens a full-screen table of all records.

Rows are edited in place: press e or enter to edit the row under the cursor,
tab to move between fields, enter to save and esc to discard. Every change is
sent to the API before the row leaves edit mode.`,
		Action: cmd.run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if err := cmd.app.RequireLogin(ctx); err != nil {
		return err
	}

	manager, err := cmd.app.Editor()
	if err != nil {
		return fmt.Errorf("create editor: %w", err)
	}

	cfg := cmd.app.Config
	opts := grid.Options{
		Keybindings:   cfg.Keybindings,
		ConfirmDelete: cfg.ShouldConfirmDelete(),
		Version:       cmd.app.Version,
	}
	if cfg.UpdateCheckEnabled() {
		checker := updatecheck.New(cmd.app.KV, nil)
		version := cmd.app.Version
		opts.CheckUpdate = func(ctx context.Context) (*updatecheck.Result, error) {
			return checker.Check(ctx, version)
		}
	}

	m := grid.New(ctx, manager, cmd.app.Notify, opts)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
