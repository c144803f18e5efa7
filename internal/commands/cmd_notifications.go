package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/core/notify"
	"github.com/colonyops/docgrid/internal/docgrid"
	"github.com/colonyops/docgrid/pkg/iojson"
)

type NotificationsCmd struct {
	flags *Flags
	app   *docgrid.App

	// flags
	clear      bool
	jsonOutput bool
	level      string
}

// NewNotificationsCmd creates a new notifications command
func NewNotificationsCmd(flags *Flags, app *docgrid.App) *NotificationsCmd {
	return &NotificationsCmd{flags: flags, app: app}
}

// Register adds the notifications command to the application
func (cmd *NotificationsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "notifications",
		Aliases:   []string{"notes"},
		Usage:     "Show the notification history",
		UsageText: "docgrid notifications [--level error] [--json] [--clear]",
		Description: `Lists the messages shown in the grid's status line, newest first.
The history keeps the last tui.notification_history entries.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "delete the history",
				Destination: &cmd.clear,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "level",
				Usage:       "only show one level (info, warning, error)",
				Destination: &cmd.level,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NotificationsCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	if cmd.clear {
		if err := cmd.app.Notify.Clear(ctx); err != nil {
			return fmt.Errorf("clear notifications: %w", err)
		}
		_, _ = fmt.Fprintln(out, "Notification history cleared")
		return nil
	}

	var level notify.Level
	if cmd.level != "" {
		l, err := notify.ParseLevel(cmd.level)
		if err != nil {
			return err
		}
		level = l
	}

	history, err := cmd.app.Notify.History(ctx)
	if err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}

	if level != "" {
		history = notify.Filter(history, level)
	}

	if len(history) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No notifications\n")
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, n := range history {
			if err := iojson.WriteLine(out, n); err != nil {
				return fmt.Errorf("encode notification: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tLEVEL\tMESSAGE")
	for _, n := range history {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", n.CreatedAt.Local().Format(time.DateTime), n.Level, n.Message)
	}
	return w.Flush()
}
