package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/docgrid"
)

// RecordIDCompleter returns a ShellCompleteFunc that suggests record ids as
// positional completions. Ids already present on the command line are
// skipped. Nothing is suggested when the user is not logged in.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func RecordIDCompleter(app *docgrid.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		args := cmd.Args().Slice()
		if len(args) > 0 {
			last := args[len(args)-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if !app.LoggedIn(ctx) {
			return
		}

		client, err := app.Client()
		if err != nil {
			return
		}

		recs, err := client.FetchAll(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, rec := range recs {
			if slices.Contains(args, rec.ID) {
				continue
			}
			_, _ = fmt.Fprintln(w, rec.ID)
		}
	}
}
