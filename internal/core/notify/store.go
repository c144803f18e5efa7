// Package notify defines user-facing notifications and their persistence
// contract.
package notify

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

var levels = []Level{LevelInfo, LevelWarning, LevelError}

// ParseLevel accepts a level name case-insensitively. "warn" is accepted
// for LevelWarning.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if l == "warn" {
		return LevelWarning, nil
	}
	if !slices.Contains(levels, l) {
		return "", fmt.Errorf("unknown level %q", s)
	}
	return l, nil
}

// Filter returns the notifications at level, preserving order.
func Filter(items []Notification, level Level) []Notification {
	out := make([]Notification, 0, len(items))
	for _, n := range items {
		if n.Level == level {
			out = append(out, n)
		}
	}
	return out
}

// Notification is a single message shown in the status line and kept in the
// notification history.
type Notification struct {
	ID        int64
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Store is the notification history. The status line only ever shows the
// latest entry; the rest is reachable through "docgrid notifications".
type Store interface {
	Save(ctx context.Context, n Notification) (int64, error)
	// List returns notifications newest first.
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	// Prune deletes all but the newest keep notifications.
	Prune(ctx context.Context, keep int) error
}
