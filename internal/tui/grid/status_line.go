package grid

import (
	"time"

	"github.com/colonyops/docgrid/internal/core/notify"
)

const (
	defaultStatusTTL   = 5 * time.Second
	defaultMaxStatuses = 5
	statusTickInterval = 250 * time.Millisecond
)

type statusEntry struct {
	notification notify.Notification
	remaining    time.Duration
}

// StatusLine keeps the most recent notifications and expires them after a
// TTL. Only the newest entry is rendered.
type StatusLine struct {
	entries []statusEntry
	ttl     time.Duration
	ticking bool
}

// NewStatusLine creates a status line whose entries live for ttl.
func NewStatusLine(ttl time.Duration) *StatusLine {
	if ttl <= 0 {
		ttl = defaultStatusTTL
	}
	return &StatusLine{ttl: ttl}
}

// Push adds a notification. Errors stay twice as long as other levels.
func (s *StatusLine) Push(n notify.Notification) {
	ttl := s.ttl
	if n.Level == notify.LevelError {
		ttl *= 2
	}
	s.entries = append(s.entries, statusEntry{notification: n, remaining: ttl})
	if len(s.entries) > defaultMaxStatuses {
		s.entries = s.entries[len(s.entries)-defaultMaxStatuses:]
	}
}

// Tick decrements the remaining TTL on all entries by d and removes any
// that have expired.
func (s *StatusLine) Tick(d time.Duration) {
	alive := s.entries[:0]
	for _, e := range s.entries {
		e.remaining -= d
		if e.remaining > 0 {
			alive = append(alive, e)
		}
	}
	s.entries = alive
}

// Dismiss removes the newest entry.
func (s *StatusLine) Dismiss() {
	if len(s.entries) > 0 {
		s.entries = s.entries[:len(s.entries)-1]
	}
}

// Current returns the newest live notification.
func (s *StatusLine) Current() (notify.Notification, bool) {
	if len(s.entries) == 0 {
		return notify.Notification{}, false
	}
	return s.entries[len(s.entries)-1].notification, true
}

// Len returns the number of live entries.
func (s *StatusLine) Len() int {
	return len(s.entries)
}

// Ticking returns whether the tick timer is currently running.
func (s *StatusLine) Ticking() bool {
	return s.ticking
}

// SetTicking sets the tick timer state.
func (s *StatusLine) SetTicking(v bool) {
	s.ticking = v
}
