package editing_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docgrid/internal/core/auth"
	"github.com/colonyops/docgrid/internal/core/editing"
	"github.com/colonyops/docgrid/internal/core/eventbus"
	"github.com/colonyops/docgrid/internal/core/eventbus/testbus"
	"github.com/colonyops/docgrid/internal/core/record"
	"github.com/colonyops/docgrid/internal/core/rows"
)

func seedRecords() []record.Record {
	return []record.Record{
		{ID: "5", DocumentName: "Offer", DocumentStatus: "signed", DocumentType: "letter", EmployeeNumber: "1001"},
		{ID: "7", DocumentName: "Contract", DocumentStatus: "draft", DocumentType: "contract", EmployeeNumber: "1002"},
		{ID: "9", DocumentName: "Policy", DocumentStatus: "pending", DocumentType: "policy", EmployeeNumber: "1003"},
	}
}

type fixture struct {
	mgr    *editing.Manager
	store  *rows.Store
	syncer *fakeSyncer
	bus    *testbus.Bus
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := rows.NewStore()
	store.ReplaceAll(seedRecords())
	syncer := newFakeSyncer()
	bus := testbus.New(t)
	eventbus.NewNotificationRouter(bus.EventBus).Register()
	return fixture{
		mgr:    editing.NewManager(store, syncer, bus.EventBus),
		store:  store,
		syncer: syncer,
		bus:    bus,
	}
}

func ids(entries []rows.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

// waitEntered blocks until the fake syncer reports a call has started.
func waitEntered(t *testing.T, f *fakeSyncer) string {
	t.Helper()
	select {
	case call := <-f.entered:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("remote call never started")
		return ""
	}
}

func TestMode_DefaultsToView(t *testing.T) {
	fx := newFixture(t)

	assert.Equal(t, editing.ModeView, fx.mgr.Mode("7"))
	assert.Equal(t, editing.ModeView, fx.mgr.Mode("does-not-exist"))
	assert.Equal(t, "view", editing.ModeView.String())
	assert.Equal(t, "edit", editing.ModeEdit.String())

	_, ok := fx.mgr.Session("7")
	assert.False(t, ok)
}

func TestAddPlaceholder(t *testing.T) {
	fx := newFixture(t)

	entry, err := fx.mgr.AddPlaceholder()
	require.NoError(t, err)

	assert.True(t, entry.IsNew)
	assert.True(t, rows.IsTempID(entry.ID))
	assert.Equal(t, record.Record{ID: entry.ID}, entry.Record)
	assert.Equal(t, editing.ModeEdit, fx.mgr.Mode(entry.ID))
	assert.Equal(t, entry.ID, fx.mgr.Focus())

	s, ok := fx.mgr.Session(entry.ID)
	require.True(t, ok)
	assert.Equal(t, record.FieldCompanySigDate, s.FocusField)

	assert.Equal(t, []string{"5", "7", "9", entry.ID}, ids(fx.store.List()))
	fx.bus.AssertPublished(t, eventbus.EventRowAdded)
}

func TestStartEdit(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.mgr.StartEdit("7"))
	assert.Equal(t, editing.ModeEdit, fx.mgr.Mode("7"))
	assert.Equal(t, "7", fx.mgr.Focus())

	require.NoError(t, fx.mgr.SetField("7", record.FieldDocumentName, "Contract v2"))

	// Already editing: no-op that keeps the draft.
	require.NoError(t, fx.mgr.StartEdit("7"))
	s, _ := fx.mgr.Session("7")
	assert.Equal(t, "Contract v2", s.Draft[record.FieldDocumentName])

	err := fx.mgr.StartEdit("404")
	assert.ErrorIs(t, err, rows.ErrNotFound)
}

func TestSetField_Errors(t *testing.T) {
	fx := newFixture(t)

	err := fx.mgr.SetField("7", record.FieldDocumentName, "x")
	require.ErrorIs(t, err, editing.ErrNotEditing)

	require.NoError(t, fx.mgr.StartEdit("7"))
	err = fx.mgr.SetField("7", "salary", "x")
	require.ErrorIs(t, err, record.ErrUnknownField)

	require.NoError(t, fx.mgr.SetFocusField("7", record.FieldDocumentType))
	s, _ := fx.mgr.Session("7")
	assert.Equal(t, record.FieldDocumentType, s.FocusField)
}

func TestValues_OverlaysDraft(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.mgr.StartEdit("7"))
	require.NoError(t, fx.mgr.SetField("7", record.FieldDocumentStatus, "approved"))

	v, err := fx.mgr.Values("7")
	require.NoError(t, err)
	assert.Equal(t, "approved", v[record.FieldDocumentStatus])
	assert.Equal(t, "Contract", v[record.FieldDocumentName])

	stored, _ := fx.store.Get("7")
	assert.Equal(t, "draft", stored.DocumentStatus)
}

func TestStartEditCancel_NeverChangesData(t *testing.T) {
	fx := newFixture(t)
	before := fx.store.List()

	rng := rand.New(rand.NewPCG(1, 2))
	rowIDs := []string{"5", "7", "9"}

	for step := range 500 {
		id := rowIDs[rng.IntN(len(rowIDs))]
		switch rng.IntN(3) {
		case 0:
			require.NoError(t, fx.mgr.StartEdit(id), "step %d", step)
		case 1:
			if fx.mgr.Mode(id) == editing.ModeEdit {
				field := record.Fields[rng.IntN(len(record.Fields))]
				require.NoError(t, fx.mgr.SetField(id, field, fmt.Sprintf("junk-%d", step)))
			}
		case 2:
			require.NoError(t, fx.mgr.Cancel(id), "step %d", step)
		}
	}

	for _, id := range rowIDs {
		require.NoError(t, fx.mgr.Cancel(id))
	}

	assert.Equal(t, before, fx.store.List())
}

func TestCancel_ExistingRow(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.mgr.StartEdit("7"))
	require.NoError(t, fx.mgr.SetField("7", record.FieldDocumentStatus, "approved"))
	require.NoError(t, fx.mgr.Cancel("7"))

	assert.Equal(t, editing.ModeView, fx.mgr.Mode("7"))
	s, ok := fx.mgr.Session("7")
	require.True(t, ok)
	assert.True(t, s.IgnoreModificationsOnExit)
	assert.Empty(t, s.Draft)
	assert.Empty(t, fx.mgr.Focus())

	stored, _ := fx.store.Get("7")
	assert.Equal(t, "draft", stored.DocumentStatus)

	// Cancel in view mode is a no-op.
	require.NoError(t, fx.mgr.Cancel("5"))
	_, ok = fx.mgr.Session("5")
	assert.False(t, ok)
}

func TestCancel_NewRowIsDiscarded(t *testing.T) {
	fx := newFixture(t)

	entry, err := fx.mgr.AddPlaceholder()
	require.NoError(t, err)
	require.NoError(t, fx.mgr.SetField(entry.ID, record.FieldDocumentName, "NDA"))

	require.NoError(t, fx.mgr.Cancel(entry.ID))

	assert.False(t, fx.store.Has(entry.ID))
	_, ok := fx.mgr.Session(entry.ID)
	assert.False(t, ok)
	assert.Empty(t, fx.mgr.Focus())
	assert.Equal(t, []string{"5", "7", "9"}, ids(fx.store.List()))

	fx.bus.AssertPublished(t, eventbus.EventRowCancelled)
	raw, _ := fx.bus.Last(eventbus.EventRowCancelled)
	assert.Equal(t, eventbus.RowCancelledPayload{ID: entry.ID, Discarded: true}, raw)
}

func TestCommit_ExistingRow(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.mgr.StartEdit("7"))
	require.NoError(t, fx.mgr.SetField("7", record.FieldDocumentName, "Contract v2"))

	id, err := fx.mgr.Commit(context.Background(), "7", record.Values{record.FieldDocumentStatus: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "7", id)

	got, err := fx.store.Get("7")
	require.NoError(t, err)
	assert.False(t, got.IsNew)
	assert.Equal(t, record.Record{
		ID:             "7",
		DocumentName:   "Contract v2",
		DocumentStatus: "approved",
		DocumentType:   "contract",
		EmployeeNumber: "1002",
	}, got.Record)

	assert.Equal(t, editing.ModeView, fx.mgr.Mode("7"))
	s, ok := fx.mgr.Session("7")
	require.True(t, ok, "session entry is cleared, not removed")
	assert.Empty(t, s.Draft)

	// The update request carries the full record.
	sent := fx.syncer.updates["7"]
	assert.Len(t, sent, len(record.Fields))
	assert.Equal(t, "approved", sent[record.FieldDocumentStatus])
	assert.Equal(t, "1002", sent[record.FieldEmployeeNumber])

	assert.Equal(t, []string{"5", "7", "9"}, ids(fx.store.List()))
	fx.bus.AssertPublished(t, eventbus.EventRowCommitted)
}

func TestCommit_NewRowPromotesInPlace(t *testing.T) {
	fx := newFixture(t)

	first, err := fx.mgr.AddPlaceholder()
	require.NoError(t, err)
	second, err := fx.mgr.AddPlaceholder()
	require.NoError(t, err)

	fx.syncer.created = record.Record{ID: "srv-1", DocumentName: "Handbook", DocumentStatus: "pending"}

	id, err := fx.mgr.Commit(context.Background(), first.ID, record.Values{record.FieldDocumentName: "Handbook"})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", id)

	assert.False(t, fx.store.Has(first.ID))
	assert.Equal(t, []string{"5", "7", "9", "srv-1", second.ID}, ids(fx.store.List()))

	got, err := fx.store.Get("srv-1")
	require.NoError(t, err)
	assert.False(t, got.IsNew)
	assert.Equal(t, fx.syncer.created, got.Record)

	assert.Equal(t, editing.ModeView, fx.mgr.Mode("srv-1"))
	_, ok := fx.mgr.Session(first.ID)
	assert.False(t, ok)
	assert.Equal(t, editing.ModeEdit, fx.mgr.Mode(second.ID))

	fx.bus.AssertPublished(t, eventbus.EventRowCommitted)
	raw, _ := fx.bus.Last(eventbus.EventRowCommitted)
	p, ok := raw.(eventbus.RowCommittedPayload)
	require.True(t, ok)
	assert.True(t, p.Created)
	assert.Equal(t, first.ID, p.PreviousID)
	assert.Equal(t, "srv-1", p.Record.ID)
}

func TestScenario_AddCommitServerNormalizes(t *testing.T) {
	store := rows.NewStore()
	syncer := newFakeSyncer()
	syncer.created = record.Record{
		ID:             "42",
		DocumentName:   "NDA",
		DocumentType:   "contract",
		DocumentStatus: "pending",
	}
	mgr := editing.NewManager(store, syncer, nil)

	entry, err := mgr.AddPlaceholder()
	require.NoError(t, err)

	id, err := mgr.Commit(context.Background(), entry.ID, record.Values{
		record.FieldDocumentName: "NDA",
		record.FieldDocumentType: "contract",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	list := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, "42", list[0].ID)
	assert.False(t, list[0].IsNew)
	assert.Equal(t, "pending", list[0].DocumentStatus)

	// The create request holds every field and no id.
	require.Len(t, syncer.creates, 1)
	assert.Len(t, syncer.creates[0], len(record.Fields))
	assert.Equal(t, "NDA", syncer.creates[0][record.FieldDocumentName])
	assert.Equal(t, "", syncer.creates[0][record.FieldDocumentStatus])
}

func TestScenario_UpdateFailureKeepsDraft(t *testing.T) {
	fx := newFixture(t)
	fx.syncer.updateErr = errNetwork

	require.NoError(t, fx.mgr.StartEdit("7"))
	require.NoError(t, fx.mgr.SetField("7", record.FieldDocumentStatus, "approved"))

	id, err := fx.mgr.Commit(context.Background(), "7", nil)
	require.Error(t, err)
	assert.Equal(t, "7", id)

	require.ErrorIs(t, err, editing.ErrRemoteFailure)
	require.ErrorIs(t, err, errNetwork)
	assert.True(t, editing.IsRecoverable(err))

	var remote *editing.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, editing.OpUpdate, remote.Op)
	assert.Equal(t, "7", remote.RowID)

	assert.Equal(t, editing.ModeEdit, fx.mgr.Mode("7"))
	s, _ := fx.mgr.Session("7")
	assert.Equal(t, "approved", s.Draft[record.FieldDocumentStatus])
	assert.False(t, s.InFlight)

	stored, _ := fx.store.Get("7")
	assert.Equal(t, "draft", stored.DocumentStatus)

	fx.bus.AssertPublished(t, eventbus.EventRowFailed)
	fx.bus.AssertPublished(t, eventbus.EventNotificationPublished)

	// Retry succeeds with the retained draft.
	fx.syncer.updateErr = nil
	_, err = fx.mgr.Commit(context.Background(), "7", nil)
	require.NoError(t, err)
	stored, _ = fx.store.Get("7")
	assert.Equal(t, "approved", stored.DocumentStatus)
}

func TestCommit_CreateFailureKeepsPlaceholder(t *testing.T) {
	fx := newFixture(t)
	fx.syncer.createErr = errNetwork

	entry, err := fx.mgr.AddPlaceholder()
	require.NoError(t, err)

	id, err := fx.mgr.Commit(context.Background(), entry.ID, record.Values{record.FieldDocumentName: "NDA"})
	require.ErrorIs(t, err, editing.ErrRemoteFailure)
	assert.Equal(t, entry.ID, id)

	got, err := fx.store.Get(entry.ID)
	require.NoError(t, err)
	assert.True(t, got.IsNew)
	assert.Equal(t, editing.ModeEdit, fx.mgr.Mode(entry.ID))

	v, err := fx.mgr.Values(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "NDA", v[record.FieldDocumentName])
}

func TestCommit_CreateWithoutServerID(t *testing.T) {
	fx := newFixture(t)
	fx.syncer.created = record.Record{DocumentName: "NDA"}

	entry, err := fx.mgr.AddPlaceholder()
	require.NoError(t, err)

	_, err = fx.mgr.Commit(context.Background(), entry.ID, nil)
	require.ErrorIs(t, err, editing.ErrRemoteFailure)
	assert.True(t, fx.store.Has(entry.ID))
}

func TestCommit_Unauthenticated(t *testing.T) {
	fx := newFixture(t)
	fx.syncer.updateErr = fmt.Errorf("update 7: %w", auth.ErrUnauthenticated)

	require.NoError(t, fx.mgr.StartEdit("7"))
	_, err := fx.mgr.Commit(context.Background(), "7", record.Values{record.FieldDocumentStatus: "approved"})

	require.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.NotErrorIs(t, err, editing.ErrRemoteFailure)
	assert.True(t, editing.IsRecoverable(err))
	assert.Equal(t, editing.ModeEdit, fx.mgr.Mode("7"))
}

func TestCommit_Rejections(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.mgr.Commit(ctx, "7", nil)
	require.ErrorIs(t, err, editing.ErrNotEditing)
	assert.False(t, editing.IsRecoverable(err))

	_, err = fx.mgr.Commit(ctx, "404", nil)
	require.ErrorIs(t, err, rows.ErrNotFound)

	require.NoError(t, fx.mgr.StartEdit("7"))
	_, err = fx.mgr.Commit(ctx, "7", record.Values{"salary": "1"})
	require.ErrorIs(t, err, record.ErrUnknownField)

	assert.Empty(t, fx.syncer.updates)
}

func TestCommit_InFlightRejectsSecondTransition(t *testing.T) {
	fx := newFixture(t)
	fx.syncer.created = record.Record{ID: "42", DocumentName: "NDA"}
	fx.syncer.blocking()

	entry, err := fx.mgr.AddPlaceholder()
	require.NoError(t, err)

	type result struct {
		id  string
		err error
	}
	done := make(chan result, 1)
	go func() {
		id, err := fx.mgr.Commit(context.Background(), entry.ID, record.Values{record.FieldDocumentName: "NDA"})
		done <- result{id, err}
	}()

	assert.Equal(t, "create", waitEntered(t, fx.syncer))
	assert.True(t, fx.mgr.InFlight(entry.ID))
	assert.True(t, fx.mgr.Busy())

	_, err = fx.mgr.Commit(context.Background(), entry.ID, nil)
	require.ErrorIs(t, err, editing.ErrOperationInProgress)
	require.ErrorIs(t, fx.mgr.Cancel(entry.ID), editing.ErrOperationInProgress)
	require.ErrorIs(t, fx.mgr.Delete(context.Background(), entry.ID), editing.ErrOperationInProgress)
	require.ErrorIs(t, fx.mgr.SetField(entry.ID, record.FieldDocumentType, "x"), editing.ErrOperationInProgress)
	require.ErrorIs(t, fx.mgr.Reload(context.Background()), editing.ErrOperationInProgress)

	fx.syncer.release()

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, "42", r.id)
	case <-time.After(2 * time.Second):
		t.Fatal("commit never finished")
	}

	assert.Equal(t, []string{"5", "7", "9", "42"}, ids(fx.store.List()))
	assert.False(t, fx.mgr.Busy())
}

func TestCommit_DistinctRowsProceedIndependently(t *testing.T) {
	fx := newFixture(t)
	fx.syncer.blocking()

	require.NoError(t, fx.mgr.StartEdit("5"))
	require.NoError(t, fx.mgr.StartEdit("9"))

	errs := make(chan error, 2)
	go func() {
		_, err := fx.mgr.Commit(context.Background(), "5", record.Values{record.FieldDocumentStatus: "archived"})
		errs <- err
	}()
	go func() {
		_, err := fx.mgr.Commit(context.Background(), "9", record.Values{record.FieldDocumentStatus: "signed"})
		errs <- err
	}()

	calls := []string{waitEntered(t, fx.syncer), waitEntered(t, fx.syncer)}
	assert.ElementsMatch(t, []string{"update 5", "update 9"}, calls)

	fx.syncer.release()
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	five, _ := fx.store.Get("5")
	nine, _ := fx.store.Get("9")
	assert.Equal(t, "archived", five.DocumentStatus)
	assert.Equal(t, "signed", nine.DocumentStatus)
}

func TestDelete(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.mgr.Delete(context.Background(), "7"))

	assert.Equal(t, []string{"5", "9"}, ids(fx.store.List()))
	_, ok := fx.mgr.Session("7")
	assert.False(t, ok)
	assert.Equal(t, []string{"7"}, fx.syncer.deleteCalls())
	fx.bus.AssertPublished(t, eventbus.EventRowDeleted)

	err := fx.mgr.Delete(context.Background(), "7")
	assert.ErrorIs(t, err, rows.ErrNotFound)
}

func TestDelete_FailureLeavesRowUntouched(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, mgr *editing.Manager)
		mode  editing.Mode
	}{
		{
			name:  "view mode",
			setup: func(*testing.T, *editing.Manager) {},
			mode:  editing.ModeView,
		},
		{
			name: "edit mode with draft",
			setup: func(t *testing.T, mgr *editing.Manager) {
				require.NoError(t, mgr.StartEdit("7"))
				require.NoError(t, mgr.SetField("7", record.FieldDocumentName, "unsaved"))
			},
			mode: editing.ModeEdit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			fx.syncer.deleteErr = errNetwork
			tt.setup(t, fx.mgr)

			before := fx.store.List()
			sessionBefore, hadSession := fx.mgr.Session("7")

			err := fx.mgr.Delete(context.Background(), "7")
			require.ErrorIs(t, err, editing.ErrRemoteFailure)

			assert.Equal(t, before, fx.store.List())
			assert.Equal(t, tt.mode, fx.mgr.Mode("7"))

			sessionAfter, hasSession := fx.mgr.Session("7")
			assert.Equal(t, hadSession, hasSession)
			assert.Equal(t, sessionBefore, sessionAfter)
		})
	}
}

func TestDelete_PlaceholderIsLocal(t *testing.T) {
	fx := newFixture(t)

	entry, err := fx.mgr.AddPlaceholder()
	require.NoError(t, err)

	require.NoError(t, fx.mgr.Delete(context.Background(), entry.ID))

	assert.False(t, fx.store.Has(entry.ID))
	assert.Empty(t, fx.syncer.deleteCalls())
	_, ok := fx.mgr.Session(entry.ID)
	assert.False(t, ok)
}

func TestReload(t *testing.T) {
	fx := newFixture(t)

	placeholder, err := fx.mgr.AddPlaceholder()
	require.NoError(t, err)
	require.NoError(t, fx.mgr.StartEdit("7"))
	require.NoError(t, fx.mgr.SetField("7", record.FieldDocumentStatus, "approved"))
	require.NoError(t, fx.mgr.StartEdit("9"))

	fx.syncer.fetched = []record.Record{
		{ID: "7", DocumentName: "Contract", DocumentStatus: "draft"},
		{ID: "11", DocumentName: "Timesheet"},
	}

	require.NoError(t, fx.mgr.Reload(context.Background()))

	assert.Equal(t, []string{"7", "11"}, ids(fx.store.List()))
	for _, e := range fx.store.List() {
		assert.False(t, e.IsNew)
	}

	_, ok := fx.mgr.Session(placeholder.ID)
	assert.False(t, ok)
	_, ok = fx.mgr.Session("9")
	assert.False(t, ok)

	// A surviving row keeps its edit session.
	assert.Equal(t, editing.ModeEdit, fx.mgr.Mode("7"))
	assert.Empty(t, fx.mgr.Focus())

	fx.bus.AssertPublished(t, eventbus.EventRowsReloaded)
	raw, _ := fx.bus.Last(eventbus.EventRowsReloaded)
	assert.Equal(t, eventbus.RowsReloadedPayload{Count: 2}, raw)
}

func TestReload_Failure(t *testing.T) {
	fx := newFixture(t)
	fx.syncer.fetchErr = errNetwork
	before := fx.store.List()

	err := fx.mgr.Reload(context.Background())
	require.ErrorIs(t, err, editing.ErrRemoteFailure)

	var remote *editing.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, editing.OpFetch, remote.Op)
	assert.Empty(t, remote.RowID)

	assert.Equal(t, before, fx.store.List())
	assert.False(t, fx.mgr.Busy())
}

func TestReload_RejectsTransitionsWhileFetching(t *testing.T) {
	fx := newFixture(t)
	fx.syncer.fetched = seedRecords()
	require.NoError(t, fx.mgr.StartEdit("7"))
	fx.syncer.blocking()

	done := make(chan error, 1)
	go func() { done <- fx.mgr.Reload(context.Background()) }()

	assert.Equal(t, "fetch", waitEntered(t, fx.syncer))

	_, err := fx.mgr.AddPlaceholder()
	require.ErrorIs(t, err, editing.ErrOperationInProgress)
	_, err = fx.mgr.Commit(context.Background(), "7", nil)
	require.ErrorIs(t, err, editing.ErrOperationInProgress)
	require.ErrorIs(t, fx.mgr.Delete(context.Background(), "5"), editing.ErrOperationInProgress)

	fx.syncer.release()
	require.NoError(t, <-done)
}

func TestManager_NilEventBus(t *testing.T) {
	store := rows.NewStore()
	store.ReplaceAll(seedRecords())
	mgr := editing.NewManager(store, newFakeSyncer(), nil)

	require.NoError(t, mgr.StartEdit("5"))
	require.NoError(t, mgr.Cancel("5"))
	require.NoError(t, mgr.Delete(context.Background(), "5"))
	assert.Same(t, store, mgr.Rows())
}
