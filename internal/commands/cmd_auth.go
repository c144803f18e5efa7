package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/core/auth"
	"github.com/colonyops/docgrid/internal/docgrid"
	"github.com/colonyops/docgrid/pkg/iojson"
)

type AuthCmd struct {
	flags *Flags
	app   *docgrid.App

	// flags
	jsonOutput bool
}

// NewAuthCmd creates a new auth command
func NewAuthCmd(flags *Flags, app *docgrid.App) *AuthCmd {
	return &AuthCmd{flags: flags, app: app}
}

// Register adds the auth command to the application
func (cmd *AuthCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "auth",
		Usage: "Credential commands",
		Commands: []*cli.Command{
			{
				Name:        "status",
				Usage:       "Show the saved credential",
				UsageText:   "docgrid auth status [--json]",
				Description: "Prints the account, issue time and, for JWT tokens, the subject and expiry.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runStatus,
			},
		},
	})

	return app
}

// authStatus is the JSON output format for docgrid auth status --json.
type authStatus struct {
	LoggedIn  bool       `json:"loggedIn"`
	Source    string     `json:"source,omitempty"`
	Username  string     `json:"username,omitempty"`
	IssuedAt  *time.Time `json:"issuedAt,omitempty"`
	Opaque    bool       `json:"opaque,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Expired   bool       `json:"expired,omitempty"`
}

func (cmd *AuthCmd) runStatus(ctx context.Context, c *cli.Command) error {
	status, err := cmd.status(ctx)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, status)
	}

	if !status.LoggedIn {
		_, _ = fmt.Fprintln(out, "Not logged in. Run 'docgrid login'.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "SOURCE\t%s\n", status.Source)
	if status.Username != "" {
		_, _ = fmt.Fprintf(w, "USER\t%s\n", status.Username)
	}
	if status.IssuedAt != nil {
		_, _ = fmt.Fprintf(w, "ISSUED\t%s\n", status.IssuedAt.Format(time.RFC3339))
	}
	switch {
	case status.Opaque:
		_, _ = fmt.Fprintln(w, "TOKEN\topaque")
	default:
		if status.Subject != "" {
			_, _ = fmt.Fprintf(w, "SUBJECT\t%s\n", status.Subject)
		}
		if status.ExpiresAt != nil {
			exp := status.ExpiresAt.Format(time.RFC3339)
			if status.Expired {
				exp += " (expired)"
			}
			_, _ = fmt.Fprintf(w, "EXPIRES\t%s\n", exp)
		}
	}
	return w.Flush()
}

func (cmd *AuthCmd) status(ctx context.Context) (authStatus, error) {
	var (
		status authStatus
		token  string
	)

	if cmd.app.TokenOverride != "" {
		status.Source = "flag"
		token = cmd.app.TokenOverride
	} else {
		cred, err := cmd.app.Auth.Load(ctx)
		if errors.Is(err, auth.ErrUnauthenticated) {
			return status, nil
		}
		if err != nil {
			return status, err
		}
		status.Source = "saved"
		status.Username = cred.Username
		status.IssuedAt = &cred.IssuedAt
		token = cred.Token
	}

	status.LoggedIn = true
	desc := auth.Describe(token)
	status.Opaque = desc.Opaque
	status.Subject = desc.Subject
	if !desc.ExpiresAt.IsZero() {
		status.ExpiresAt = &desc.ExpiresAt
		status.Expired = desc.Expired(time.Now())
	}
	return status, nil
}
