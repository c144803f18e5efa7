// Package config handles configuration loading and validation for docgrid.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Built-in action names for keybindings.
const (
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionReload = "reload"
	ActionHelp   = "help"
	ActionQuit   = "quit"
)

// DefaultBaseURL is the document API used when none is configured.
const DefaultBaseURL = "https://test.v5.pryaniky.com/"

// defaultKeybindings provides built-in view-mode keybindings that users can
// override.
var defaultKeybindings = map[string]Keybinding{
	"a":     {Action: ActionAdd, Help: "add"},
	"e":     {Action: ActionEdit, Help: "edit"},
	"enter": {Action: ActionEdit, Help: "edit"},
	"d":     {Action: ActionDelete, Help: "delete"},
	"r":     {Action: ActionReload, Help: "reload"},
	"?":     {Action: ActionHelp, Help: "help"},
	"q":     {Action: ActionQuit, Help: "quit"},
}

// Config holds the application configuration.
type Config struct {
	API         APIConfig             `yaml:"api"`
	Database    DatabaseConfig        `yaml:"database"`
	TUI         TUIConfig             `yaml:"tui"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
	UpdateCheck *bool                 `yaml:"update_check"`
	DataDir     string                `yaml:"-"` // set by caller, not from config file
}

// APIConfig configures the document API client.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// DatabaseConfig configures the local SQLite connection pool.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// TUIConfig configures the interactive grid.
type TUIConfig struct {
	Theme               string `yaml:"theme"`
	ConfirmDelete       *bool  `yaml:"confirm_delete"`
	NotificationHistory int    `yaml:"notification_history"`
}

// Keybinding maps a key to a built-in grid action.
type Keybinding struct {
	Action string `yaml:"action"` // built-in action name
	Help   string `yaml:"help"`   // help text shown in TUI
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   10 * time.Second,
			UserAgent: "docgrid",
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5000,
		},
		TUI: TUIConfig{
			Theme:               "tokyo-night",
			ConfirmDelete:       boolPtr(true),
			NotificationHistory: 200,
		},
		Keybindings: map[string]Keybinding{},
		UpdateCheck: boolPtr(true),
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaults.API.UserAgent
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.ConfirmDelete == nil {
		c.TUI.ConfirmDelete = defaults.TUI.ConfirmDelete
	}
	if c.TUI.NotificationHistory == 0 {
		c.TUI.NotificationHistory = defaults.TUI.NotificationHistory
	}
	if c.UpdateCheck == nil {
		c.UpdateCheck = defaults.UpdateCheck
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))

	for k, v := range defaults {
		result[k] = v
	}

	for k, v := range user {
		if v.Help == "" {
			v.Help = v.Action
		}
		result[k] = v
	}

	return result
}

// ShouldConfirmDelete reports whether the grid asks before deleting a row.
func (c *Config) ShouldConfirmDelete() bool {
	return c.TUI.ConfirmDelete == nil || *c.TUI.ConfirmDelete
}

// UpdateCheckEnabled reports whether the release check runs on startup.
func (c *Config) UpdateCheckEnabled() bool {
	return c.UpdateCheck == nil || *c.UpdateCheck
}

func isValidAction(action string) bool {
	switch action {
	case ActionAdd, ActionEdit, ActionDelete, ActionReload, ActionHelp, ActionQuit:
		return true
	default:
		return false
	}
}

func boolPtr(b bool) *bool { return &b }
