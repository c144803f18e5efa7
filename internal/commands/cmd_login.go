package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/docgrid/internal/core/styles"
	"github.com/colonyops/docgrid/internal/docgrid"
)

type LoginCmd struct {
	flags *Flags
	app   *docgrid.App

	// flags
	username string
	password string
}

// NewLoginCmd creates a new login command
func NewLoginCmd(flags *Flags, app *docgrid.App) *LoginCmd {
	return &LoginCmd{flags: flags, app: app}
}

// Register adds the login and logout commands to the application
func (cmd *LoginCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "login",
			Usage:     "Sign in to the document API",
			UsageText: "docgrid login [--username name] [--password secret]",
			Description: `Exchanges a username and password for an API token and saves it in the
local database. Later commands reuse the saved token until 'docgrid logout'.

When either value is missing and stdin is a terminal, an interactive form
prompts for it.`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "username",
					Aliases:     []string{"u"},
					Usage:       "account name",
					Sources:     cli.EnvVars("DOCGRID_USERNAME"),
					Destination: &cmd.username,
				},
				&cli.StringFlag{
					Name:        "password",
					Aliases:     []string{"p"},
					Usage:       "account password",
					Sources:     cli.EnvVars("DOCGRID_PASSWORD"),
					Destination: &cmd.password,
				},
			},
			Action: cmd.runLogin,
		},
		&cli.Command{
			Name:      "logout",
			Usage:     "Remove the saved API token",
			UsageText: "docgrid logout",
			Action:    cmd.runLogout,
		},
	)

	return app
}

func (cmd *LoginCmd) runLogin(ctx context.Context, c *cli.Command) error {
	if (cmd.username == "" || cmd.password == "") && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	cred, err := cmd.app.Login(ctx, cmd.username, cmd.password)
	if err != nil {
		if errors.Is(err, docgrid.ErrMissingCredentials) {
			return err
		}
		return fmt.Errorf("login: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%s %s\n",
		styles.StatusInfoStyle.Render(styles.IconCheck),
		fmt.Sprintf("Logged in as %s", styles.KeyStyle.Render(cred.Username)),
	)
	return nil
}

func (cmd *LoginCmd) runLogout(ctx context.Context, c *cli.Command) error {
	if err := cmd.app.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "Logged out")
	return nil
}

func (cmd *LoginCmd) runForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Validate(requiredValue("username")).
				Value(&cmd.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(requiredValue("password")).
				Value(&cmd.password),
		),
	).WithTheme(huh.ThemeCharm()).Run()
}

func requiredValue(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
