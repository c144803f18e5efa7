// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within docgrid.
package eventbus

import (
	"github.com/colonyops/docgrid/internal/core/notify"
	"github.com/colonyops/docgrid/internal/core/record"
)

// Event names a kind of event.
type Event string

// Keep list sorted A-Z.
const (
	EventNotificationPublished Event = "notification.published"
	EventRowAdded              Event = "row.added"
	EventRowCancelled          Event = "row.cancelled"
	EventRowCommitted          Event = "row.committed"
	EventRowDeleted            Event = "row.deleted"
	EventRowFailed             Event = "row.failed"
	EventRowsReloaded          Event = "rows.reloaded"
)

// NotificationPublishedPayload is emitted when a user-facing notification
// should be shown.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}

// RowAddedPayload is emitted when a placeholder row is inserted.
type RowAddedPayload struct {
	TempID string
}

// RowCancelledPayload is emitted when an edit is cancelled. Discarded is true
// when the row was a placeholder and has been removed.
type RowCancelledPayload struct {
	ID        string
	Discarded bool
}

// RowCommittedPayload is emitted after a successful create or update.
// PreviousID differs from Record.ID only for a promoted placeholder.
type RowCommittedPayload struct {
	PreviousID string
	Record     record.Record
	Created    bool
}

// RowDeletedPayload is emitted after a row is deleted.
type RowDeletedPayload struct {
	ID string
}

// RowFailedPayload is emitted when a remote operation for a row fails.
// RowID is empty for collection-wide operations.
type RowFailedPayload struct {
	Op    string
	RowID string
	Err   error
}

// RowsReloadedPayload is emitted after the collection is re-fetched.
type RowsReloadedPayload struct {
	Count int
}
