package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, nil)
	return &cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
		msg    string
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }, "data_dir", "cannot be empty"},
		{"relative url", func(c *Config) { c.API.BaseURL = "/api" }, "api.base_url", "scheme"},
		{"no host", func(c *Config) { c.API.BaseURL = "https://" }, "api.base_url", "host is required"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout", "must be positive"},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }, "api.timeout", "must be positive"},
		{"no connections", func(c *Config) { c.Database.MaxOpenConns = 0 }, "database.max_open_conns", "at least 1"},
		{"negative idle", func(c *Config) { c.Database.MaxIdleConns = -1 }, "database.max_idle_conns", "negative"},
		{"negative busy timeout", func(c *Config) { c.Database.BusyTimeout = -1 }, "database.busy_timeout", "negative"},
		{"negative history", func(c *Config) { c.TUI.NotificationHistory = -1 }, "tui.notification_history", "negative"},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "neon" }, "tui.theme", "unknown theme"},
		{
			"keybinding without action",
			func(c *Config) { c.Keybindings["x"] = Keybinding{Help: "nothing"} },
			`keybindings["x"]`, "action is required",
		},
		{
			"keybinding with invalid action",
			func(c *Config) { c.Keybindings["x"] = Keybinding{Action: "explode"} },
			`keybindings["x"]`, "invalid action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), tt.msg)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.API.Timeout = 0
	cfg.TUI.Theme = "neon"
	cfg.Keybindings["x"] = Keybinding{Action: "explode"}

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "is a directory")
}

func TestValidateDeep_MissingConfigFileIsFine(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "data_dir", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "not a directory")
}

func TestWarnings(t *testing.T) {
	t.Run("clean config", func(t *testing.T) {
		assert.Empty(t, validConfig(t).Warnings())
	})

	t.Run("plain http to remote host", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.API.BaseURL = "http://docs.example.com/"

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "base_url", warnings[0].Item)
	})

	t.Run("plain http to localhost", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.API.BaseURL = "http://localhost:8080/"
		assert.Empty(t, cfg.Warnings())
	})

	t.Run("idle above open", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Database.MaxIdleConns = 20

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Database", warnings[0].Category)
	})

	t.Run("quit unbound", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Keybindings["q"] = Keybinding{Action: ActionReload, Help: "reload"}

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, ActionQuit, warnings[0].Item)
	})
}
