package eventbus

import (
	"errors"
	"fmt"

	"github.com/colonyops/docgrid/internal/core/auth"
	"github.com/colonyops/docgrid/internal/core/notify"
)

// failureMessages are the user-facing messages for failed remote operations,
// keyed by operation name.
var failureMessages = map[string]string{
	"create": "Failed to add record.",
	"update": "Failed to update record.",
	"delete": "Failed to delete record.",
	"fetch":  "Failed to load data.",
}

// NotificationRouter maps row events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeRowFailed(func(p RowFailedPayload) {
		r.notifyf(notify.LevelError, "%s", FailureMessage(p.Op, p.Err))
	})

	r.bus.SubscribeRowCommitted(func(p RowCommittedPayload) {
		if p.Created {
			r.notifyf(notify.LevelInfo, "record %s added", p.Record.ID)
			return
		}
		r.notifyf(notify.LevelInfo, "record %s saved", p.Record.ID)
	})

	r.bus.SubscribeRowDeleted(func(p RowDeletedPayload) {
		r.notifyf(notify.LevelInfo, "record %s deleted", p.ID)
	})
}

// FailureMessage returns the user-facing message for a failed operation.
func FailureMessage(op string, err error) string {
	if errors.Is(err, auth.ErrUnauthenticated) {
		return "Unauthorized: No token provided."
	}
	if msg, ok := failureMessages[op]; ok {
		return msg
	}
	return fmt.Sprintf("Failed to %s record.", op)
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
