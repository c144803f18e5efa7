package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/core/validate"
	"github.com/colonyops/docgrid/internal/docgrid"
)

type SetCmd struct {
	flags *Flags
	app   *docgrid.App

	// flags
	input      fieldInput
	jsonOutput bool
}

// NewSetCmd creates a new set command
func NewSetCmd(flags *Flags, app *docgrid.App) *SetCmd {
	return &SetCmd{flags: flags, app: app}
}

// Register adds the set command to the application
func (cmd *SetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "set",
		Usage:         "Update fields of a record",
		UsageText:     "docgrid set <id> [--set field=value ...] [--file values.json] [--json]",
		ShellComplete: RecordIDCompleter(cmd.app),
		Description: `Changes the given fields of an existing record. Fields that are not
mentioned keep their current value.`,
		Flags: append(cmd.input.Flags(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the updated record as JSON",
				Destination: &cmd.jsonOutput,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *SetCmd) run(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if err := validate.RecordIDField("id", id); err != nil {
		return err
	}

	values, err := cmd.input.Values()
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("nothing to change: use --set field=value or --file")
	}

	manager, err := loadEditor(ctx, cmd.app)
	if err != nil {
		return err
	}

	if err := manager.StartEdit(id); err != nil {
		return notFound(id, err)
	}
	if err := applyValues(manager, id, values); err != nil {
		return err
	}
	if _, err := manager.Commit(ctx, id, nil); err != nil {
		return remoteError(err)
	}

	updated, err := manager.Rows().Get(id)
	if err != nil {
		return err
	}
	return writeRecord(c.Root().Writer, updated.Record, cmd.jsonOutput)
}
