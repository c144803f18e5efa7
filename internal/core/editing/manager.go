// Package editing implements the per-row view/edit state machine that sits
// between the grid and the remote document API.
package editing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/docgrid/internal/core/eventbus"
	"github.com/colonyops/docgrid/internal/core/logging"
	"github.com/colonyops/docgrid/internal/core/record"
	"github.com/colonyops/docgrid/internal/core/rows"
)

// Mode is the state of a single row.
type Mode int

const (
	ModeView Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "view"
}

// Session is the edit state tracked for a row. Draft holds only the fields
// changed since the edit started.
type Session struct {
	Mode                      Mode
	IgnoreModificationsOnExit bool
	FocusField                string
	Draft                     record.Values
	InFlight                  bool
}

func (s *Session) clone() Session {
	out := *s
	out.Draft = s.Draft.Clone()
	return out
}

// Syncer persists row changes to the remote collection.
type Syncer interface {
	CreateRecord(ctx context.Context, fields record.Values) (record.Record, error)
	UpdateRecord(ctx context.Context, id string, fields record.Values) error
	DeleteRecord(ctx context.Context, id string) error
	FetchAll(ctx context.Context) ([]record.Record, error)
}

// Manager mediates start-edit, commit, cancel, delete and reload for the rows
// in a rows.Store. Remote calls run outside the lock with the row marked in
// flight, so at most one remote operation per row is outstanding.
type Manager struct {
	rows   *rows.Store
	syncer Syncer
	events *eventbus.EventBus
	log    zerolog.Logger

	mu        sync.Mutex
	sessions  map[string]*Session
	focus     string
	inflight  int
	reloading bool
}

// NewManager creates a manager over store. events may be nil.
func NewManager(store *rows.Store, syncer Syncer, events *eventbus.EventBus) *Manager {
	return &Manager{
		rows:     store,
		syncer:   syncer,
		events:   events,
		log:      logging.Component("editing"),
		sessions: make(map[string]*Session),
	}
}

// Rows returns the store the manager mutates.
func (m *Manager) Rows() *rows.Store {
	return m.rows
}

// Mode returns the row's mode. Rows without a session are in view mode.
func (m *Manager) Mode(id string) Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s.Mode
	}
	return ModeView
}

// Session returns a copy of the row's session, if one exists.
func (m *Manager) Session(id string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

// InFlight reports whether a remote call for the row is outstanding.
func (m *Manager) InFlight(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return ok && s.InFlight
}

// Busy reports whether any remote call, including a reload, is outstanding.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inflight > 0 || m.reloading
}

// Focus returns the row currently targeted for field input, or "".
func (m *Manager) Focus() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focus
}

// Values returns the row's stored values overlaid with its unsaved draft.
func (m *Manager) Values(id string) (record.Values, error) {
	entry, err := m.rows.Get(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok && s.Mode == ModeEdit {
		return entry.Values().Merge(s.Draft), nil
	}
	return entry.Values(), nil
}

// AddPlaceholder appends a blank, unsaved row in edit mode and makes it the
// focus target.
func (m *Manager) AddPlaceholder() (rows.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx := context.Background()
	if m.reloading {
		return rows.Entry{}, m.reject(ctx, "add", "", ErrOperationInProgress)
	}

	id := rows.NewTempID()
	entry, err := m.rows.InsertPlaceholder(id, record.Blank())
	if err != nil {
		return rows.Entry{}, m.reject(ctx, "add", id, err)
	}

	m.sessions[id] = &Session{
		Mode:       ModeEdit,
		FocusField: record.FieldCompanySigDate,
		Draft:      record.Values{},
	}
	m.focus = id

	m.events.PublishRowAdded(eventbus.RowAddedPayload{TempID: id})
	return entry, nil
}

// StartEdit moves a row from view to edit mode. Starting an edit on a row
// already in edit mode only moves the focus.
func (m *Manager) StartEdit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx := context.Background()
	if _, err := m.rows.Get(id); err != nil {
		return m.reject(ctx, "start edit", id, err)
	}

	s := m.sessions[id]
	switch {
	case s != nil && s.InFlight:
		return m.reject(ctx, "start edit", id, ErrOperationInProgress)
	case s != nil && s.Mode == ModeEdit:
		m.focus = id
		return nil
	}

	m.sessions[id] = &Session{
		Mode:       ModeEdit,
		FocusField: record.Fields[0],
		Draft:      record.Values{},
	}
	m.focus = id
	return nil
}

// SetField records an unsaved value for an edit-mode row.
func (m *Manager) SetField(id, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx := context.Background()
	if _, err := record.ParseField(field); err != nil {
		return m.reject(ctx, "set field", id, err)
	}

	s, err := m.editing(id)
	if err != nil {
		return m.reject(ctx, "set field", id, err)
	}
	if s.InFlight {
		return m.reject(ctx, "set field", id, ErrOperationInProgress)
	}

	if s.Draft == nil {
		s.Draft = record.Values{}
	}
	s.Draft[field] = value
	return nil
}

// SetFocusField records which column of an edit-mode row has input focus.
func (m *Manager) SetFocusField(id, field string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx := context.Background()
	if _, err := record.ParseField(field); err != nil {
		return m.reject(ctx, "focus", id, err)
	}

	s, err := m.editing(id)
	if err != nil {
		return m.reject(ctx, "focus", id, err)
	}
	s.FocusField = field
	m.focus = id
	return nil
}

// Commit persists the row's draft merged with edited. A placeholder is
// created remotely and promoted to the server's id; an existing row is
// updated and patched locally. The row leaves edit mode only after the
// remote call succeeds. Commit returns the id the row now lives under.
func (m *Manager) Commit(ctx context.Context, id string, edited record.Values) (string, error) {
	m.mu.Lock()

	entry, err := m.rows.Get(id)
	if err != nil {
		m.mu.Unlock()
		return id, m.reject(ctx, "commit", id, err)
	}

	for field := range edited {
		if _, err := record.ParseField(field); err != nil {
			m.mu.Unlock()
			return id, m.reject(ctx, "commit", id, err)
		}
	}

	s, err := m.editing(id)
	switch {
	case err != nil:
		m.mu.Unlock()
		return id, m.reject(ctx, "commit", id, err)
	case s.InFlight || m.reloading:
		m.mu.Unlock()
		return id, m.reject(ctx, "commit", id, ErrOperationInProgress)
	}

	s.Draft = s.Draft.Merge(edited)
	s.InFlight = true
	m.inflight++

	changes := s.Draft.Clone()
	full := entry.Values().Merge(changes)
	m.mu.Unlock()

	if entry.IsNew {
		return m.commitCreate(ctx, id, full)
	}
	return id, m.commitUpdate(ctx, id, full, changes)
}

func (m *Manager) commitCreate(ctx context.Context, tempID string, fields record.Values) (string, error) {
	ctx = logging.WithOperation(logging.WithRowID(ctx, tempID), OpCreate)
	server, err := m.syncer.CreateRecord(ctx, fields)
	if err == nil && server.ID == "" {
		err = errors.New("response carries no record id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.settle(tempID)

	if err != nil {
		return tempID, m.remoteFailed(ctx, OpCreate, tempID, err)
	}

	if err := m.rows.Promote(tempID, server); err != nil {
		return tempID, m.reject(ctx, OpCreate, tempID, err)
	}

	delete(m.sessions, tempID)
	m.sessions[server.ID] = &Session{Mode: ModeView}
	if m.focus == tempID {
		m.focus = server.ID
	}

	m.log.Debug().Ctx(ctx).Str("server_id", server.ID).Msg("placeholder promoted")
	m.events.PublishRowCommitted(eventbus.RowCommittedPayload{
		PreviousID: tempID,
		Record:     server,
		Created:    true,
	})
	return server.ID, nil
}

func (m *Manager) commitUpdate(ctx context.Context, id string, full, changes record.Values) error {
	ctx = logging.WithOperation(logging.WithRowID(ctx, id), OpUpdate)
	err := m.syncer.UpdateRecord(ctx, id, full)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.settle(id)

	if err != nil {
		return m.remoteFailed(ctx, OpUpdate, id, err)
	}

	if err := m.rows.Patch(id, changes); err != nil {
		return m.reject(ctx, OpUpdate, id, err)
	}
	m.sessions[id] = &Session{Mode: ModeView}

	updated, _ := m.rows.Get(id)
	m.log.Debug().Ctx(ctx).Int("fields", len(changes)).Msg("row updated")
	m.events.PublishRowCommitted(eventbus.RowCommittedPayload{
		PreviousID: id,
		Record:     updated.Record,
	})
	return nil
}

// Cancel abandons an edit. A placeholder is removed from the store together
// with its session; an existing row returns to view mode with its data
// untouched. Cancelling a row in view mode is a no-op.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx := context.Background()
	s := m.sessions[id]
	if s != nil && s.InFlight {
		return m.reject(ctx, "cancel", id, ErrOperationInProgress)
	}

	entry, err := m.rows.Get(id)
	if err != nil {
		return m.reject(ctx, "cancel", id, err)
	}

	if entry.IsNew {
		if err := m.rows.Remove(id); err != nil {
			return m.reject(ctx, "cancel", id, err)
		}
		m.drop(id)
		m.events.PublishRowCancelled(eventbus.RowCancelledPayload{ID: id, Discarded: true})
		return nil
	}

	if s == nil || s.Mode == ModeView {
		return nil
	}

	m.sessions[id] = &Session{Mode: ModeView, IgnoreModificationsOnExit: true}
	if m.focus == id {
		m.focus = ""
	}
	m.events.PublishRowCancelled(eventbus.RowCancelledPayload{ID: id})
	return nil
}

// Delete removes a row remotely and then locally. A placeholder has never
// been persisted and is removed without a remote call. On failure the row
// is left exactly as it was.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()

	entry, err := m.rows.Get(id)
	if err != nil {
		m.mu.Unlock()
		return m.reject(ctx, OpDelete, id, err)
	}

	prev := m.sessions[id]
	if (prev != nil && prev.InFlight) || m.reloading {
		m.mu.Unlock()
		return m.reject(ctx, OpDelete, id, ErrOperationInProgress)
	}

	if entry.IsNew {
		defer m.mu.Unlock()
		if err := m.rows.Remove(id); err != nil {
			return m.reject(ctx, OpDelete, id, err)
		}
		m.drop(id)
		m.events.PublishRowDeleted(eventbus.RowDeletedPayload{ID: id})
		return nil
	}

	s := prev
	if s == nil {
		s = &Session{Mode: ModeView}
		m.sessions[id] = s
	}
	s.InFlight = true
	m.inflight++
	m.mu.Unlock()

	ctx = logging.WithOperation(logging.WithRowID(ctx, id), OpDelete)
	err = m.syncer.DeleteRecord(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.settle(id)

	if err != nil {
		if prev == nil {
			delete(m.sessions, id)
		}
		return m.remoteFailed(ctx, OpDelete, id, err)
	}

	if err := m.rows.Remove(id); err != nil {
		return m.reject(ctx, OpDelete, id, err)
	}
	m.drop(id)

	m.log.Debug().Ctx(ctx).Msg("row deleted")
	m.events.PublishRowDeleted(eventbus.RowDeletedPayload{ID: id})
	return nil
}

// Reload fetches the whole collection and replaces the store. Placeholders
// and sessions for rows that no longer exist are discarded. Reload is
// rejected while any row has a remote call in flight.
func (m *Manager) Reload(ctx context.Context) error {
	m.mu.Lock()
	if m.inflight > 0 || m.reloading {
		m.mu.Unlock()
		return m.reject(ctx, OpFetch, "", ErrOperationInProgress)
	}
	m.reloading = true
	m.mu.Unlock()

	ctx = logging.WithOperation(ctx, OpFetch)
	recs, err := m.syncer.FetchAll(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.reloading = false

	if err != nil {
		return m.remoteFailed(ctx, OpFetch, "", err)
	}

	m.rows.ReplaceAll(recs)
	for id := range m.sessions {
		if !m.rows.Has(id) {
			delete(m.sessions, id)
		}
	}
	if m.focus != "" && !m.rows.Has(m.focus) {
		m.focus = ""
	}

	count := m.rows.Len()
	m.log.Debug().Ctx(ctx).Int("count", count).Msg("rows reloaded")
	m.events.PublishRowsReloaded(eventbus.RowsReloadedPayload{Count: count})
	return nil
}

// editing returns the session of an edit-mode row. Callers hold m.mu.
func (m *Manager) editing(id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok || s.Mode != ModeEdit {
		return nil, fmt.Errorf("row %q: %w", id, ErrNotEditing)
	}
	return s, nil
}

// settle clears the in-flight mark after a remote call. Callers hold m.mu.
func (m *Manager) settle(id string) {
	if s, ok := m.sessions[id]; ok {
		s.InFlight = false
	}
	m.inflight--
}

// drop forgets the row's session and focus. Callers hold m.mu.
func (m *Manager) drop(id string) {
	delete(m.sessions, id)
	if m.focus == id {
		m.focus = ""
	}
}

// reject logs a refused transition at error level and returns err with the
// operation and row attached.
func (m *Manager) reject(ctx context.Context, op, id string, err error) error {
	ctx = logging.WithOperation(logging.WithRowID(ctx, id), op)
	m.log.Error().Ctx(ctx).Err(err).Msg("transition rejected")
	if id == "" {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s %q: %w", op, id, err)
}

// remoteFailed logs a failed Syncer call, announces it and returns it as a
// *RemoteError. Callers hold m.mu.
func (m *Manager) remoteFailed(ctx context.Context, op, id string, err error) error {
	m.log.Warn().Ctx(ctx).Err(err).Msg("remote operation failed")
	m.events.PublishRowFailed(eventbus.RowFailedPayload{Op: op, RowID: id, Err: err})
	return &RemoteError{Op: op, RowID: id, Err: err}
}
