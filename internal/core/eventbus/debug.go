package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger traces bus traffic. Publishes log at debug level with
// the row they concern, drops at warn, and subscriber panics at error.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		ev := logger.Debug().Str("event", string(event))
		addRowFields(ev, payload)
		ev.Msg("event published")
	})

	bus.OnDrop(func(event Event, payload any) {
		ev := logger.Warn().Str("event", string(event))
		addRowFields(ev, payload)
		ev.Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}

func addRowFields(ev *zerolog.Event, payload any) {
	switch p := payload.(type) {
	case RowAddedPayload:
		ev.Str("row", p.TempID)
	case RowCancelledPayload:
		ev.Str("row", p.ID).Bool("discarded", p.Discarded)
	case RowCommittedPayload:
		ev.Str("row", p.Record.ID).Bool("created", p.Created)
		if p.PreviousID != p.Record.ID {
			ev.Str("previous", p.PreviousID)
		}
	case RowDeletedPayload:
		ev.Str("row", p.ID)
	case RowFailedPayload:
		ev.Str("op", p.Op).Str("row", p.RowID).AnErr("cause", p.Err)
	case RowsReloadedPayload:
		ev.Int("count", p.Count)
	case NotificationPublishedPayload:
		ev.Str("severity", string(p.Level))
	}
}
