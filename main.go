package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/docgrid/internal/commands"
	"github.com/colonyops/docgrid/internal/core/config"
	"github.com/colonyops/docgrid/internal/core/eventbus"
	"github.com/colonyops/docgrid/internal/core/logging"
	"github.com/colonyops/docgrid/internal/core/styles"
	"github.com/colonyops/docgrid/internal/data/db"
	"github.com/colonyops/docgrid/internal/data/stores"
	"github.com/colonyops/docgrid/internal/docgrid"
	"github.com/colonyops/docgrid/internal/docgrid/sweep"
	"github.com/colonyops/docgrid/internal/tui/notify"
	"github.com/colonyops/docgrid/pkg/logutils"
	"github.com/colonyops/docgrid/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

const (
	eventBufferSize  = 256
	deferredLogLines = 500
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// openDatabase opens the local store, moving a corrupt file aside once and
// retrying with a fresh database.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil || !stores.IsCorruptionError(err) {
		return database, err
	}

	log.Warn().Err(err).Msg("database corrupted, starting with a fresh one")
	if err := stores.RecoverFromCorruption(cfg.DataDir); err != nil {
		return nil, err
	}
	return db.Open(cfg.DataDir, opts)
}

func main() {
	ctx := context.Background()

	var (
		logCloser   func()
		deferredLog *utils.DeferredWriter
		docApp      = &docgrid.App{}
		database    *db.DB
		bgCancel    context.CancelFunc
	)

	flags := &commands.Flags{}

	app := commands.NewRoot(flags, docApp)
	app.Version = build()
	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		// Log to a file by default; "-" buffers lines and prints them on exit
		// so they don't corrupt the grid.
		if flags.LogFile == "-" {
			deferredLog = &utils.DeferredWriter{MaxLines: deferredLogLines}
			logger, err := logutils.NewConsole(flags.LogLevel, deferredLog)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
		} else {
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "docgrid.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
		}

		cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		if flags.APIURL != "" {
			cfg.API.BaseURL = flags.APIURL
		}
		flags.Config = cfg

		// Apply configured theme (validation ensures name is valid)
		palette, _ := styles.GetPalette(cfg.TUI.Theme)
		styles.SetTheme(palette)

		database, err = openDatabase(cfg)
		if err != nil {
			return ctx, fmt.Errorf("open database: %w", err)
		}

		kvStore := stores.NewKVStore(database)
		notifyStore := stores.NewNotifyStore(database)

		bgCtx, cancel := context.WithCancel(context.Background())
		bgCancel = cancel

		events := eventbus.New(eventBufferSize)
		eventbus.NewNotificationRouter(events).Register()
		eventbus.RegisterDebugLogger(events, logging.Component("eventbus"))
		go events.Start(bgCtx)

		notifyBus := notify.NewBus(notifyStore)
		notifyBus.SetHistoryLimit(cfg.TUI.NotificationHistory)
		notifyBus.Forward(events)

		// Drop expired credentials and cached release checks
		go sweep.Start(bgCtx, kvStore, sweep.DefaultInterval)

		// Populate the pre-allocated App struct (commands already hold a pointer to it)
		*docApp = *docgrid.NewApp(cfg, database, kvStore, notifyBus, events, version)
		docApp.TokenOverride = flags.Token

		return ctx, nil
	}
	app.After = func(ctx context.Context, c *cli.Command) error {
		// Stop the event bus and background sweep
		if bgCancel != nil {
			bgCancel()
		}

		if database != nil {
			if err := database.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
				return err
			}
		}

		if logCloser != nil {
			logCloser()
		}

		if deferredLog != nil {
			if err := deferredLog.Flush(os.Stderr); err != nil {
				return err
			}
		}
		return nil
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
