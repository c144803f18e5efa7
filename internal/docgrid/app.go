// Package docgrid wires the core packages into the services used by the CLI
// commands and the TUI.
package docgrid

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/colonyops/docgrid/internal/core/auth"
	"github.com/colonyops/docgrid/internal/core/config"
	"github.com/colonyops/docgrid/internal/core/editing"
	"github.com/colonyops/docgrid/internal/core/eventbus"
	"github.com/colonyops/docgrid/internal/core/kv"
	"github.com/colonyops/docgrid/internal/core/rows"
	"github.com/colonyops/docgrid/internal/data/db"
	"github.com/colonyops/docgrid/internal/data/docsapi"
	"github.com/colonyops/docgrid/internal/tui/notify"
)

// ErrNotLoggedIn is returned by record commands when no credential is
// available.
var ErrNotLoggedIn = errors.New("not logged in: run 'docgrid login'")

// ErrMissingCredentials is returned by Login when either value is blank.
var ErrMissingCredentials = errors.New("Please provide both username and password.") //nolint:staticcheck // user-facing message

// App is the central entry point for all docgrid operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config  *config.Config
	DB      *db.DB
	KV      kv.KV
	Auth    *auth.Store
	Notify  *notify.Bus
	Events  *eventbus.EventBus
	Doctor  *DoctorService
	Version string

	// TokenOverride, when set, takes precedence over the saved credential.
	TokenOverride string
}

// NewApp constructs an App from explicit dependencies.
func NewApp(
	cfg *config.Config,
	database *db.DB,
	kvStore kv.KV,
	notifyBus *notify.Bus,
	events *eventbus.EventBus,
	version string,
) *App {
	authStore := auth.NewStore(kvStore)
	app := &App{
		Config:  cfg,
		DB:      database,
		KV:      kvStore,
		Auth:    authStore,
		Notify:  notifyBus,
		Events:  events,
		Version: version,
	}
	app.Doctor = NewDoctorService(app)
	return app
}

// Tokens returns the credential source for API calls: the --token override
// first, then the saved credential.
func (a *App) Tokens() auth.TokenSource {
	return auth.First(auth.Static(a.TokenOverride), a.Auth)
}

// LoggedIn reports whether any credential is available.
func (a *App) LoggedIn(ctx context.Context) bool {
	_, ok := a.Tokens().Token(ctx)
	return ok
}

// Client builds an API client bound to the app's credential source.
func (a *App) Client() (*docsapi.Client, error) {
	return docsapi.New(docsapi.Config{
		BaseURL:   a.Config.API.BaseURL,
		Timeout:   a.Config.API.Timeout,
		UserAgent: a.userAgent(),
	}, a.Tokens())
}

// Editor builds an edit session manager over a fresh row store. The rows
// are empty until Reload is called.
func (a *App) Editor() (*editing.Manager, error) {
	client, err := a.Client()
	if err != nil {
		return nil, err
	}
	return editing.NewManager(rows.NewStore(), client, a.Events), nil
}

// RequireLogin returns ErrNotLoggedIn when no credential is available.
func (a *App) RequireLogin(ctx context.Context) error {
	if !a.LoggedIn(ctx) {
		return ErrNotLoggedIn
	}
	return nil
}

// Login exchanges username and password for a token and saves it.
func (a *App) Login(ctx context.Context, username, password string) (auth.Credential, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return auth.Credential{}, ErrMissingCredentials
	}

	client, err := docsapi.New(docsapi.Config{
		BaseURL:   a.Config.API.BaseURL,
		Timeout:   a.Config.API.Timeout,
		UserAgent: a.userAgent(),
	}, nil)
	if err != nil {
		return auth.Credential{}, err
	}

	token, err := client.Login(ctx, username, password)
	if err != nil {
		return auth.Credential{}, err
	}

	cred := auth.Credential{Token: token, Username: username}
	if err := a.Auth.Save(ctx, cred); err != nil {
		return auth.Credential{}, fmt.Errorf("save credential: %w", err)
	}

	return a.Auth.Load(ctx)
}

// Logout removes the saved credential.
func (a *App) Logout(ctx context.Context) error {
	return a.Auth.Clear(ctx)
}

func (a *App) userAgent() string {
	ua := a.Config.API.UserAgent
	if a.Version != "" {
		ua += "/" + a.Version
	}
	return ua
}
