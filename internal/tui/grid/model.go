// Package grid implements the interactive record grid: a scrollable table of
// documents with inline, per-row editing.
package grid

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/docgrid/internal/core/config"
	"github.com/colonyops/docgrid/internal/core/editing"
	"github.com/colonyops/docgrid/internal/core/logging"
	"github.com/colonyops/docgrid/internal/core/notify"
	"github.com/colonyops/docgrid/internal/core/record"
	"github.com/colonyops/docgrid/internal/core/rows"
	"github.com/colonyops/docgrid/internal/core/styles"
	"github.com/colonyops/docgrid/internal/docgrid/updatecheck"
	tuinotify "github.com/colonyops/docgrid/internal/tui/notify"
)

// Options configures the grid.
type Options struct {
	Keybindings   map[string]config.Keybinding
	ConfirmDelete bool
	Version       string
	// CheckUpdate is run once at startup when set. A nil result means the
	// running version is current.
	CheckUpdate func(ctx context.Context) (*updatecheck.Result, error)
	// SkipInitialLoad disables the reload issued by Init.
	SkipInitialLoad bool
}

// Model is the Bubble Tea model for the record grid.
type Model struct {
	ctx     context.Context
	manager *editing.Manager
	bus     *tuinotify.Bus
	queue   *statusQueue
	status  *StatusLine
	keys    KeyMap
	opts    Options
	log     zerolog.Logger

	width  int
	height int

	// cursor position: row index into the store, column index into
	// record.Fields.
	row    int
	col    int
	offset int

	// editingID is the row whose focused cell is bound to input, or "".
	editingID string
	input     textinput.Model

	spinner  spinner.Model
	loading  bool
	showHelp bool
	confirm  *confirmDelete
	update   *updatecheck.Result
	quitting bool
}

// New creates a grid over manager. bus may be nil, in which case only
// rejections raised by the grid itself reach the status line.
func New(ctx context.Context, manager *editing.Manager, bus *tuinotify.Bus, opts Options) Model {
	input := textinput.New()
	input.SetStyles(textinput.DefaultStyles(styles.CurrentPalette.IsDark()))
	input.Prompt = ""

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.StatusInfoStyle

	m := Model{
		ctx:     ctx,
		manager: manager,
		bus:     bus,
		queue:   newStatusQueue(),
		status:  NewStatusLine(defaultStatusTTL),
		keys:    NewKeyMap(opts.Keybindings),
		opts:    opts,
		log:     logging.Component("grid"),
		input:   input,
		spinner: s,
		loading: !opts.SkipInitialLoad,
	}

	if bus != nil {
		queue := m.queue
		bus.Subscribe(func(n notify.Notification) {
			queue.push(n)
		})
	}

	return m
}

// Init starts the spinner, the initial load and the notification listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.queue.wait()}
	if !m.opts.SkipInitialLoad {
		cmds = append(cmds, m.reloadCmd())
	}
	if m.opts.CheckUpdate != nil {
		cmds = append(cmds, m.checkUpdateCmd())
	}
	return tea.Batch(cmds...)
}

// entries returns the current row snapshot.
func (m Model) entries() []rows.Entry {
	return m.manager.Rows().List()
}

// currentEntry returns the row under the cursor.
func (m Model) currentEntry() (rows.Entry, bool) {
	list := m.entries()
	if m.row < 0 || m.row >= len(list) {
		return rows.Entry{}, false
	}
	return list[m.row], true
}

// currentField returns the field under the cursor.
func (m Model) currentField() string {
	return record.Fields[m.col]
}

// Editing reports whether a cell is bound to the text input.
func (m Model) Editing() bool {
	return m.editingID != ""
}

// Cursor returns the cursor's row index and field name.
func (m Model) Cursor() (int, string) {
	return m.row, m.currentField()
}

func (m Model) reloadCmd() tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		return reloadedMsg{err: manager.Reload(ctx)}
	}
}

func (m Model) commitCmd(id string) tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		newID, err := manager.Commit(ctx, id, nil)
		return committedMsg{prevID: id, id: newID, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		return deletedMsg{id: id, err: manager.Delete(ctx, id)}
	}
}

func (m Model) checkUpdateCmd() tea.Cmd {
	ctx, check := m.ctx, m.opts.CheckUpdate
	return func() tea.Msg {
		res, err := check(ctx)
		if err != nil {
			logging.Component("grid").Debug().Err(err).Msg("update check failed")
			return updateAvailableMsg{}
		}
		return updateAvailableMsg{result: res}
	}
}

func scheduleStatusTick() tea.Cmd {
	return tea.Tick(statusTickInterval, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}
