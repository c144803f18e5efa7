package eventbus_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/docgrid/internal/core/eventbus"
	"github.com/colonyops/docgrid/internal/core/eventbus/testbus"
	"github.com/colonyops/docgrid/internal/core/record"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRegisterDebugLogger_RowFields(t *testing.T) {
	tb := testbus.New(t)
	var out lockedBuffer
	eventbus.RegisterDebugLogger(tb.EventBus, zerolog.New(&out))

	tb.PublishRowCommitted(eventbus.RowCommittedPayload{
		PreviousID: "new-1",
		Record:     record.Record{ID: "42"},
		Created:    true,
	})
	tb.PublishRowFailed(eventbus.RowFailedPayload{Op: "delete", RowID: "7", Err: errors.New("boom")})
	tb.AssertPublished(t, eventbus.EventRowFailed)

	logs := out.String()
	assert.Contains(t, logs, `"row":"42","created":true,"previous":"new-1"`)
	assert.Contains(t, logs, `"op":"delete","row":"7","cause":"boom"`)
}

func TestRegisterDebugLogger(t *testing.T) {
	tb := testbus.New(t)

	// Register with a nop logger; verifies no panic.
	eventbus.RegisterDebugLogger(tb.EventBus, zerolog.Nop())

	tb.PublishRowAdded(eventbus.RowAddedPayload{TempID: "new-1"})
	tb.PublishRowsReloaded(eventbus.RowsReloadedPayload{Count: 3})
	tb.PublishRowDeleted(eventbus.RowDeletedPayload{ID: "7"})

	tb.AssertPublished(t, eventbus.EventRowDeleted)
}

func TestEventBus_NilIsNoop(t *testing.T) {
	var bus *eventbus.EventBus
	bus.PublishRowDeleted(eventbus.RowDeletedPayload{ID: "1"})
}

func TestEventBus_SubscriberPanicIsRecovered(t *testing.T) {
	tb := testbus.New(t)

	panicked := make(chan struct{}, 1)
	tb.OnPanic(func(eventbus.Event, any, any) { panicked <- struct{}{} })
	tb.SubscribeRowDeleted(func(eventbus.RowDeletedPayload) { panic("boom") })

	tb.PublishRowDeleted(eventbus.RowDeletedPayload{ID: "1"})
	tb.AssertPublished(t, eventbus.EventRowDeleted)
	<-panicked
}
