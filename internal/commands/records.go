package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/core/auth"
	"github.com/colonyops/docgrid/internal/core/editing"
	"github.com/colonyops/docgrid/internal/core/record"
	"github.com/colonyops/docgrid/internal/core/rows"
	"github.com/colonyops/docgrid/internal/core/validate"
	"github.com/colonyops/docgrid/internal/docgrid"
	"github.com/colonyops/docgrid/pkg/iojson"
)

// fieldInput collects record values from repeated --set flags and an
// optional JSON object given with --file.
type fieldInput struct {
	assignments []string
	file        iojson.FileReader[record.Values]
}

func (in *fieldInput) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "set",
			Aliases:     []string{"s"},
			Usage:       "field=value assignment (repeatable)",
			Destination: &in.assignments,
		},
		in.file.Flag(),
	}
}

// Values merges the file input with the --set assignments. Assignments win.
func (in *fieldInput) Values() (record.Values, error) {
	values := record.Values{}

	if in.file.Provided() {
		fromFile, err := in.file.Read()
		if err != nil {
			return nil, err
		}
		for field := range fromFile {
			if _, err := record.ParseField(field); err != nil {
				return nil, fmt.Errorf("file: %w", err)
			}
		}
		maps.Copy(values, fromFile)
	}

	set, err := validate.Assignments(in.assignments)
	if err != nil {
		return nil, err
	}
	maps.Copy(values, set)

	return values, nil
}

// loadEditor returns an edit manager with the current collection loaded.
func loadEditor(ctx context.Context, app *docgrid.App) (*editing.Manager, error) {
	if err := app.RequireLogin(ctx); err != nil {
		return nil, err
	}

	manager, err := app.Editor()
	if err != nil {
		return nil, fmt.Errorf("create editor: %w", err)
	}

	if err := manager.Reload(ctx); err != nil {
		return nil, remoteError(err)
	}
	return manager, nil
}

// remoteError turns an editing failure into the message shown on the
// command line.
func remoteError(err error) error {
	var remote *editing.RemoteError
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return docgrid.ErrNotLoggedIn
	case errors.As(err, &remote):
		return fmt.Errorf("%s: %w", remote.Op, remote.Err)
	default:
		return err
	}
}

// notFound reports a missing record id.
func notFound(id string, err error) error {
	if errors.Is(err, rows.ErrNotFound) {
		return fmt.Errorf("record %q not found", id)
	}
	return err
}

// applyValues writes values into the draft of an edit-mode row.
func applyValues(manager *editing.Manager, id string, values record.Values) error {
	for _, field := range record.Fields {
		value, ok := values[field]
		if !ok {
			continue
		}
		if err := manager.SetField(id, field, value); err != nil {
			return err
		}
	}
	return nil
}

func writeRecord(out io.Writer, rec record.Record, jsonOutput bool) error {
	if jsonOutput {
		return iojson.WriteLine(out, rec)
	}
	_, err := fmt.Fprintln(out, rec.ID)
	return err
}
