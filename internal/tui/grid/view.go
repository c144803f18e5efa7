package grid

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/docgrid/internal/core/editing"
	"github.com/colonyops/docgrid/internal/core/notify"
	"github.com/colonyops/docgrid/internal/core/record"
	"github.com/colonyops/docgrid/internal/core/rows"
	"github.com/colonyops/docgrid/internal/core/styles"
)

const (
	defaultWidth = 160
	markerWidth  = 2
	idWidth      = 10
	minCellWidth = 8
	// title, header, status and help lines.
	chromeLines = 4
)

// View renders the grid.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render returns the full screen content.
func (m Model) render() string {
	body := m.renderBody()
	if m.confirm == nil {
		return body
	}

	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = lipgloss.Height(body)
	}
	return overlayCenter(body, m.confirm.View(), w, h)
}

func (m Model) renderBody() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	entries := m.entries()
	switch {
	case m.loading && len(entries) == 0:
		b.WriteString(m.spinner.View() + " Loading...")
		b.WriteString("\n")
	case len(entries) == 0:
		b.WriteString(styles.HelpDescStyle.Render("No records. Press a to add one."))
		b.WriteString("\n")
	default:
		end := min(m.offset+m.visibleRows(), len(entries))
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderRow(i, entries[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderTitle() string {
	title := styles.TitleStyle.UnsetMarginBottom().Render(styles.IconDocument + " docgrid")
	count := styles.HelpDescStyle.Render(fmt.Sprintf("  %d records", m.manager.Rows().Len()))
	if m.loading {
		count += " " + m.spinner.View()
	}
	if m.update != nil {
		count += styles.StatusWarnStyle.Render("  " + m.update.Latest + " available")
	}
	return title + count
}

func (m Model) renderHeader() string {
	idW, fieldW := m.columnWidths()
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", markerWidth))
	b.WriteString(cell(styles.HeaderStyle, "ID", idW))
	for _, f := range record.Fields {
		b.WriteString(cell(styles.HeaderStyle, record.Label(f), fieldW))
	}
	return b.String()
}

func (m Model) renderRow(i int, entry rows.Entry) string {
	idW, fieldW := m.columnWidths()
	mode := m.manager.Mode(entry.ID)
	busy := m.manager.InFlight(entry.ID)

	base := styles.CellStyle
	if i%2 == 1 {
		base = styles.StripeCellStyle
	}
	switch {
	case busy:
		base = styles.BusyRowStyle
	case entry.IsNew:
		base = styles.NewRowStyle
	case mode == editing.ModeEdit:
		base = styles.EditRowStyle
	}

	var b strings.Builder
	b.WriteString(rowMarker(m, entry, mode, busy))

	id := entry.ID
	if entry.IsNew {
		id = "new"
	}
	b.WriteString(cell(base, id, idW))

	values, err := m.manager.Values(entry.ID)
	if err != nil {
		values = entry.Values()
	}

	for c, f := range record.Fields {
		onCursor := i == m.row && c == m.col
		switch {
		case onCursor && m.editingID == entry.ID:
			b.WriteString(styles.EditCellStyle.Width(fieldW).MaxWidth(fieldW).Render(m.input.View()))
		case onCursor:
			b.WriteString(cell(styles.CursorCellStyle, values[f], fieldW))
		case f == record.FieldDocumentStatus && !busy:
			b.WriteString(cell(base.Foreground(styles.StatusColor(values[f])), values[f], fieldW))
		default:
			b.WriteString(cell(base, values[f], fieldW))
		}
	}
	return b.String()
}

func rowMarker(m Model, entry rows.Entry, mode editing.Mode, busy bool) string {
	var marker string
	switch {
	case busy:
		marker = m.spinner.View()
	case entry.IsNew:
		marker = styles.StatusInfoStyle.Render(styles.IconPlus)
	case mode == editing.ModeEdit:
		marker = styles.KeyStyle.Render(styles.IconPencil)
	}
	return ansi.Truncate(marker, markerWidth, "") + strings.Repeat(" ", max(markerWidth-ansi.StringWidth(marker), 0))
}

func (m Model) renderStatus() string {
	n, ok := m.status.Current()
	if !ok {
		return ""
	}
	switch n.Level {
	case notify.LevelError:
		return styles.StatusErrorStyle.Render(styles.IconWarning + " " + n.Message)
	case notify.LevelWarning:
		return styles.StatusWarnStyle.Render(styles.IconWarning + " " + n.Message)
	default:
		return styles.StatusInfoStyle.Render(styles.IconCheck + " " + n.Message)
	}
}

func (m Model) renderHelp() string {
	if m.Editing() {
		return helpLine([]key.Binding{m.keys.Commit, m.keys.Cancel, m.keys.NextCell, m.keys.PrevCell})
	}
	if !m.showHelp {
		return helpLine(m.keys.ShortHelp())
	}

	groups := m.keys.FullHelp()
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, helpLine(g))
	}
	return strings.Join(lines, "\n")
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpDescStyle.Render(" • "))
}

// columnWidths returns the width of the id column and of each field column.
func (m Model) columnWidths() (int, int) {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	fieldW := (w - markerWidth - idWidth) / len(record.Fields)
	return idWidth, max(fieldW, minCellWidth)
}

// visibleRows is the number of table rows that fit on screen.
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return m.manager.Rows().Len() + 1
	}
	extra := 0
	if m.showHelp {
		extra = len(m.keys.FullHelp()) - 1
	}
	return max(m.height-chromeLines-extra, 1)
}

// cell renders value truncated to fit a column of width w.
func cell(style lipgloss.Style, value string, w int) string {
	inner := max(w-style.GetHorizontalPadding(), 1)
	return style.Width(w).MaxWidth(w).Render(ansi.Truncate(value, inner, "…"))
}

// overlayCenter draws content centered over background.
func overlayCenter(background, content string, width, height int) string {
	x := max((width-lipgloss.Width(content))/2, 0)
	y := max((height-lipgloss.Height(content))/2, 0)

	bg := lipgloss.NewLayer(background)
	fg := lipgloss.NewLayer(content)
	fg.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bg, fg).Render()
}
