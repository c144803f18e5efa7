package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/core/record"
	"github.com/colonyops/docgrid/internal/docgrid"
	"github.com/colonyops/docgrid/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *docgrid.App

	// flags
	jsonOutput bool
	match      string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *docgrid.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List all records",
		UsageText: "docgrid ls [--json] [--match glob]",
		Description: `Fetches every record and prints a table of ids, document names, types,
statuses and signature dates.

Use --match to keep only records whose document name matches a glob
(e.g. "contracts/**/*.pdf"). Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "glob matched against the document name",
				Destination: &cmd.match,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.match != "" && !doublestar.ValidatePattern(cmd.match) {
		return fmt.Errorf("invalid --match pattern %q", cmd.match)
	}

	if err := cmd.app.RequireLogin(ctx); err != nil {
		return err
	}

	client, err := cmd.app.Client()
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	recs, err := client.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}

	recs = filterRecords(recs, cmd.match)

	if len(recs) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No records found\n")
		}
		return nil
	}

	out := c.Root().Writer

	// JSON output mode
	if cmd.jsonOutput {
		for _, r := range recs {
			if err := iojson.WriteLine(out, r); err != nil {
				return fmt.Errorf("encode record: %w", err)
			}
		}
		return nil
	}

	// Table output mode
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDOCUMENT\tTYPE\tSTATUS\tEMPLOYEE\tEMPLOYEE SIGNED\tCOMPANY SIGNED")

	for _, r := range recs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.DocumentName, r.DocumentType, r.DocumentStatus,
			r.EmployeeNumber, r.EmployeeSigDate, r.CompanySigDate)
	}

	return w.Flush()
}

// filterRecords keeps records whose document name matches pattern. An empty
// pattern keeps everything.
func filterRecords(recs []record.Record, pattern string) []record.Record {
	if pattern == "" {
		return recs
	}

	out := recs[:0:0]
	for _, r := range recs {
		if ok, _ := doublestar.Match(pattern, r.DocumentName); ok {
			out = append(out, r)
		}
	}
	return out
}
