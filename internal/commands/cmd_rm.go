package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/core/validate"
	"github.com/colonyops/docgrid/internal/docgrid"
)

type RmCmd struct {
	flags *Flags
	app   *docgrid.App
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *docgrid.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "rm",
		Usage:         "Delete records",
		UsageText:     "docgrid rm <id> [id...]",
		ShellComplete: RecordIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return validate.RecordIDField("id", "")
	}
	for i, id := range ids {
		if err := validate.RecordIDField(fmt.Sprintf("id[%d]", i), id); err != nil {
			return err
		}
	}

	manager, err := loadEditor(ctx, cmd.app)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	for _, id := range ids {
		if err := manager.Delete(ctx, id); err != nil {
			return notFound(id, remoteError(err))
		}
		_, _ = fmt.Fprintf(out, "deleted %s\n", id)
	}
	return nil
}
