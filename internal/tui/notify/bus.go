// Package notify provides the in-process notification bus used by the TUI
// and the record commands.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/docgrid/internal/core/eventbus"
	"github.com/colonyops/docgrid/internal/core/notify"
)

// DefaultHistoryLimit is the number of notifications kept in the store.
const DefaultHistoryLimit = 200

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus is a synchronous in-process notification bus. It persists each
// notification to a Store and then dispatches it to subscribers inline.
type Bus struct {
	store        notify.Store
	historyLimit int

	mu          sync.Mutex
	subscribers []Subscriber
}

// NewBus creates a notification bus backed by the given store.
// If store is nil, notifications are dispatched to subscribers but not persisted.
func NewBus(store notify.Store) *Bus {
	return &Bus{
		store:        store,
		historyLimit: DefaultHistoryLimit,
	}
}

// SetHistoryLimit changes how many notifications are retained. Zero or less
// disables pruning.
func (b *Bus) SetHistoryLimit(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.historyLimit = n
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish persists a notification and dispatches it to all subscribers.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	limit := b.historyLimit
	b.mu.Unlock()

	// Persist first so subscribers see the assigned ID.
	if b.store != nil {
		ctx := context.Background()
		id, err := b.store.Save(ctx, n)
		if err != nil {
			log.Error().Err(err).Str("message", n.Message).Msg("failed to persist notification")
		} else {
			n.ID = id
		}

		if limit > 0 {
			if err := b.store.Prune(ctx, limit); err != nil {
				log.Warn().Err(err).Msg("failed to prune notifications")
			}
		}
	}

	for _, fn := range subs {
		fn(n)
	}
}

// Errorf publishes an error-level notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.publishf(notify.LevelError, format, args...)
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.publishf(notify.LevelWarning, format, args...)
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(format string, args ...any) {
	b.publishf(notify.LevelInfo, format, args...)
}

func (b *Bus) publishf(level notify.Level, format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}

// History returns all persisted notifications (newest first).
// Returns nil if no store is configured.
func (b *Bus) History(ctx context.Context) ([]notify.Notification, error) {
	if b.store == nil {
		return nil, nil
	}
	return b.store.List(ctx)
}

// Clear deletes all persisted notifications.
func (b *Bus) Clear(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	return b.store.Clear(ctx)
}

// Forward publishes every NotificationPublished event from events onto b.
func (b *Bus) Forward(events *eventbus.EventBus) {
	if events == nil {
		return
	}
	events.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		b.Publish(notify.Notification{Level: p.Level, Message: p.Message})
	})
}
