package grid

import (
	"errors"
	"fmt"
	"slices"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/docgrid/internal/core/config"
	"github.com/colonyops/docgrid/internal/core/editing"
	"github.com/colonyops/docgrid/internal/core/eventbus"
	"github.com/colonyops/docgrid/internal/core/notify"
	"github.com/colonyops/docgrid/internal/core/record"
	"github.com/colonyops/docgrid/internal/core/rows"
)

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case reloadedMsg:
		return m.handleReloaded(msg)
	case committedMsg:
		return m.handleCommitted(msg)
	case deletedMsg:
		return m.handleDeleted(msg)
	case statusReadyMsg:
		return m.handleStatusReady()
	case statusTickMsg:
		return m.handleStatusTick()
	case updateAvailableMsg:
		return m.handleUpdateAvailable(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.Editing() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	_, fieldW := m.columnWidths()
	m.input.SetWidth(max(fieldW-3, 1))
	m.clamp()
	return m
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	if m.Editing() {
		return m.handleEditKey(msg)
	}
	return m.handleViewKey(msg)
}

func (m Model) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	c := m.confirm.Update(msg)
	switch {
	case c.confirmed:
		m.confirm = nil
		return m, m.deleteCmd(c.id)
	case c.cancelled:
		m.confirm = nil
	default:
		m.confirm = &c
	}
	return m, nil
}

func (m Model) handleViewKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if action, ok := m.keys.Action(msg.String()); ok {
		return m.dispatchAction(action)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.PrevCell):
		m.col = max(m.col-1, 0)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.NextCell):
		m.col = min(m.col+1, len(record.Fields)-1)
	case key.Matches(msg, m.keys.Cancel):
		return m.cancelCurrent()
	}
	return m, nil
}

func (m Model) dispatchAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case config.ActionAdd:
		return m.addRow()
	case config.ActionEdit:
		return m.editCurrent()
	case config.ActionDelete:
		return m.deleteCurrent()
	case config.ActionReload:
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.reloadCmd()
	case config.ActionHelp:
		m.showHelp = !m.showHelp
		m.clamp()
		return m, nil
	case config.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	id := m.editingID

	switch {
	case key.Matches(msg, m.keys.Commit):
		m.detach()
		return m, m.commitCmd(id)
	case key.Matches(msg, m.keys.Cancel):
		return m.cancelCurrent()
	case key.Matches(msg, m.keys.NextCell):
		return m.moveField(1)
	case key.Matches(msg, m.keys.PrevCell):
		return m.moveField(-1)
	case msg.Code == tea.KeyUp:
		m.detach()
		m.moveRow(-1)
		return m, nil
	case msg.Code == tea.KeyDown:
		m.detach()
		m.moveRow(1)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		if err := m.manager.SetField(id, m.currentField(), after); err != nil {
			return m, tea.Batch(cmd, m.report("", err))
		}
	}
	return m, cmd
}

func (m Model) addRow() (tea.Model, tea.Cmd) {
	entry, err := m.manager.AddPlaceholder()
	if err != nil {
		return m, m.report("", err)
	}

	m.row = slices.IndexFunc(m.entries(), func(e rows.Entry) bool { return e.ID == entry.ID })
	if sess, ok := m.manager.Session(entry.ID); ok {
		m.col = max(slices.Index(record.Fields, sess.FocusField), 0)
	}
	m.clamp()
	return m, m.attach(entry.ID)
}

func (m Model) editCurrent() (tea.Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m, nil
	}
	if err := m.manager.StartEdit(entry.ID); err != nil {
		return m, m.report("", err)
	}
	if err := m.manager.SetFocusField(entry.ID, m.currentField()); err != nil {
		return m, m.report("", err)
	}
	return m, m.attach(entry.ID)
}

func (m Model) cancelCurrent() (tea.Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok || m.manager.Mode(entry.ID) != editing.ModeEdit {
		m.status.Dismiss()
		return m, nil
	}

	m.detach()
	if err := m.manager.Cancel(entry.ID); err != nil {
		return m, m.report("", err)
	}
	m.clamp()
	return m, nil
}

func (m Model) deleteCurrent() (tea.Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m, nil
	}
	if m.manager.InFlight(entry.ID) {
		return m, m.report("", editing.ErrOperationInProgress)
	}

	if m.opts.ConfirmDelete {
		label := "Delete record " + entry.ID + "?"
		if entry.IsNew {
			label = "Discard new record?"
		}
		m.confirm = newConfirmDelete(entry.ID, label)
		return m, nil
	}
	return m, m.deleteCmd(entry.ID)
}

// moveField shifts the focused cell of the edited row, wrapping around.
func (m Model) moveField(delta int) (tea.Model, tea.Cmd) {
	n := len(record.Fields)
	m.col = ((m.col+delta)%n + n) % n
	if err := m.manager.SetFocusField(m.editingID, m.currentField()); err != nil {
		m.detach()
		return m, m.report("", err)
	}
	return m, m.attach(m.editingID)
}

func (m *Model) moveRow(delta int) {
	m.row += delta
	m.clamp()
}

// attach binds the focused cell of row id to the text input.
func (m *Model) attach(id string) tea.Cmd {
	values, err := m.manager.Values(id)
	if err != nil {
		return m.report("", err)
	}
	m.editingID = id
	m.input.SetValue(values[m.currentField()])
	m.input.CursorEnd()
	return m.input.Focus()
}

// detach unbinds the input. The row's draft is kept.
func (m *Model) detach() {
	m.editingID = ""
	m.input.Blur()
}

// clamp keeps the cursor inside the row list and scrolls it into view.
func (m *Model) clamp() {
	n := m.manager.Rows().Len()
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.editingID != "" && !m.manager.Rows().Has(m.editingID) {
		m.detach()
	}

	visible := m.visibleRows()
	if m.row < m.offset {
		m.offset = m.row
	}
	if m.row >= m.offset+visible {
		m.offset = m.row - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) handleReloaded(msg reloadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.clamp()
	if msg.err != nil {
		return m, m.report(editing.OpFetch, msg.err)
	}
	return m, nil
}

func (m Model) handleCommitted(msg committedMsg) (tea.Model, tea.Cmd) {
	m.clamp()
	if msg.err == nil {
		return m, nil
	}

	cmds := []tea.Cmd{m.report("", msg.err)}
	// Put the cursor back into the failed row so the user can retry.
	if entry, ok := m.currentEntry(); ok && entry.ID == msg.prevID && !m.Editing() &&
		m.manager.Mode(entry.ID) == editing.ModeEdit {
		cmds = append(cmds, m.attach(entry.ID))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	m.clamp()
	if msg.err != nil {
		return m, m.report(editing.OpDelete, msg.err)
	}
	return m, nil
}

func (m Model) handleStatusReady() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.queue.wait()}
	for _, n := range m.queue.drain() {
		if cmd := m.pushStatus(n); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleStatusTick() (tea.Model, tea.Cmd) {
	m.status.Tick(statusTickInterval)
	if m.status.Len() == 0 {
		m.status.SetTicking(false)
		return m, nil
	}
	return m, scheduleStatusTick()
}

func (m Model) handleUpdateAvailable(msg updateAvailableMsg) (tea.Model, tea.Cmd) {
	if msg.result == nil {
		return m, nil
	}
	m.update = msg.result
	return m, m.pushStatus(notify.Notification{
		Level:   notify.LevelInfo,
		Message: fmt.Sprintf("docgrid %s is available (running %s)", msg.result.Latest, msg.result.Current),
	})
}

// report surfaces an operation error in the status line. Remote failures
// already reach the user through the notification bus, so they are only
// shown directly when no bus is attached.
func (m *Model) report(op string, err error) tea.Cmd {
	if editing.IsRecoverable(err) {
		if m.bus != nil {
			return nil
		}
		var remote *editing.RemoteError
		if errors.As(err, &remote) {
			op = remote.Op
		}
		return m.pushStatus(notify.Notification{
			Level:   notify.LevelError,
			Message: eventbus.FailureMessage(op, err),
		})
	}

	m.log.Debug().Err(err).Msg("grid action rejected")
	return m.pushStatus(notify.Notification{
		Level:   notify.LevelWarning,
		Message: err.Error(),
	})
}

// pushStatus adds n to the status line and starts the expiry timer if it is
// not already running.
func (m *Model) pushStatus(n notify.Notification) tea.Cmd {
	m.status.Push(n)
	if m.status.Ticking() {
		return nil
	}
	m.status.SetTicking(true)
	return scheduleStatusTick()
}
