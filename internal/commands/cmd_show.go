package commands

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/docgrid/internal/core/record"
	"github.com/colonyops/docgrid/internal/core/styles"
	"github.com/colonyops/docgrid/internal/core/validate"
	"github.com/colonyops/docgrid/internal/docgrid"
	"github.com/colonyops/docgrid/pkg/iojson"
)

const defaultWrapWidth = 80

type ShowCmd struct {
	flags *Flags
	app   *docgrid.App

	// flags
	jsonOutput bool
	raw        bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *docgrid.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "show",
		Usage:         "Show a single record",
		UsageText:     "docgrid show <id> [--json] [--raw]",
		ShellComplete: RecordIDCompleter(cmd.app),
		Description:   "Renders all fields of a record as a formatted document.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print the markdown without rendering it",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if err := validate.RecordIDField("id", id); err != nil {
		return err
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
		return fmt.Errorf("fetch records: %w", err)
	}

	i := slices.IndexFunc(recs, func(r record.Record) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("record %q not found", id)
	}
	rec := recs[i]

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, rec)
	}

	md := recordMarkdown(rec)
	if cmd.raw {
		_, err := fmt.Fprint(out, md)
		return err
	}

	rendered, err := renderMarkdown(md)
	if err != nil {
		return fmt.Errorf("render record: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

// recordMarkdown formats a record as a markdown document with a field table.
func recordMarkdown(rec record.Record) string {
	var b strings.Builder

	title := rec.DocumentName
	if title == "" {
		title = "Record " + rec.ID
	}
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(title))
	fmt.Fprintf(&b, "`%s`\n\n", rec.ID)

	b.WriteString("| Field | Value |\n")
	b.WriteString("| --- | --- |\n")
	for _, f := range record.Fields {
		fmt.Fprintf(&b, "| %s | %s |\n", record.Label(f), escapeMarkdown(rec.Get(f)))
	}
	return b.String()
}

func escapeMarkdown(s string) string {
	r := strings.NewReplacer("|", `\|`, "\n", " ", "*", `\*`, "_", `\_`)
	return r.Replace(s)
}

func renderMarkdown(md string) (string, error) {
	width := defaultWrapWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = min(w, 120)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
