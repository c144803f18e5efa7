package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/docgrid"
)

type AddCmd struct {
	flags *Flags
	app   *docgrid.App

	// flags
	input      fieldInput
	jsonOutput bool
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *docgrid.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Create a record",
		UsageText: "docgrid add [--set field=value ...] [--file values.json] [--json]",
		Description: `Creates a record from --set assignments and/or a JSON object of field
values. Unset fields are sent empty. Prints the id assigned by the API.

Fields: companySigDate, companySignatureName, documentName, documentStatus,
documentType, employeeNumber, employeeSigDate, employeeSignatureName.`,
		Flags: append(cmd.input.Flags(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the created record as JSON",
				Destination: &cmd.jsonOutput,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	values, err := cmd.input.Values()
	if err != nil {
		return err
	}

	if err := cmd.app.RequireLogin(ctx); err != nil {
		return err
	}

	manager, err := cmd.app.Editor()
	if err != nil {
		return fmt.Errorf("create editor: %w", err)
	}

	entry, err := manager.AddPlaceholder()
	if err != nil {
		return err
	}
	if err := applyValues(manager, entry.ID, values); err != nil {
		return err
	}

	id, err := manager.Commit(ctx, entry.ID, nil)
	if err != nil {
		return remoteError(err)
	}

	created, err := manager.Rows().Get(id)
	if err != nil {
		return err
	}
	return writeRecord(c.Root().Writer, created.Record, cmd.jsonOutput)
}
