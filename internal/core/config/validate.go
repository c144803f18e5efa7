package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/docgrid/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid. All field
// errors are collected and returned as criterio.FieldErrors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("api.base_url", c.API.BaseURL, absoluteURL),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		c.validateLimits(),
		c.validateKeybindings(),
	)
}

// ValidateDeep performs Validate plus file accessibility checks. The
// configPath argument specifies the config file location to validate (empty
// string skips the config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if u, err := url.Parse(c.API.BaseURL); err == nil && u.Scheme == "http" && u.Hostname() != "localhost" && u.Hostname() != "127.0.0.1" {
		warnings = append(warnings, ValidationWarning{
			Category: "API",
			Item:     "base_url",
			Message:  "credentials are sent over plain http",
		})
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		warnings = append(warnings, ValidationWarning{
			Category: "Database",
			Item:     "max_idle_conns",
			Message:  "max_idle_conns exceeds max_open_conns and will be capped",
		})
	}

	actions := make(map[string]bool)
	for _, kb := range c.Keybindings {
		actions[kb.Action] = true
	}
	for _, a := range []string{ActionQuit, ActionHelp} {
		if !actions[a] {
			warnings = append(warnings, ValidationWarning{
				Category: "Keybindings",
				Item:     a,
				Message:  "no key is bound to " + a,
			})
		}
	}

	return warnings
}

func (c *Config) validateLimits() error {
	var errs criterio.FieldErrorsBuilder

	if c.API.Timeout <= 0 {
		errs = errs.Append("api.timeout", fmt.Errorf("must be positive, got %s", c.API.Timeout))
	}
	if c.Database.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", fmt.Errorf("must be at least 1"))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("cannot be negative"))
	}
	if c.Database.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", fmt.Errorf("cannot be negative"))
	}
	if c.TUI.NotificationHistory < 0 {
		errs = errs.Append("tui.notification_history", fmt.Errorf("cannot be negative"))
	}

	return errs.ToError()
}

// validateKeybindings checks every keybinding names a built-in action.
func (c *Config) validateKeybindings() error {
	keys := make([]string, 0, len(c.Keybindings))
	for k := range c.Keybindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs criterio.FieldErrorsBuilder
	for _, key := range keys {
		kb := c.Keybindings[key]
		field := fmt.Sprintf("keybindings[%q]", key)

		switch {
		case strings.TrimSpace(key) == "":
			errs = errs.Append(field, fmt.Errorf("key cannot be empty"))
		case kb.Action == "":
			errs = errs.Append(field, fmt.Errorf("action is required"))
		case !isValidAction(kb.Action):
			errs = errs.Append(field, fmt.Errorf("invalid action %q", kb.Action))
		}
	}
	return errs.ToError()
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

// absoluteURL validates an http(s) URL with a host.
func absoluteURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

func knownTheme(name string) error {
	if slices.Contains(styles.ThemeNames(), name) {
		return nil
	}
	return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
