// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color

	// ColorStripe is the alternate row background, halfway between
	// background and surface.
	ColorStripe color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style
	KeyStyle           lipgloss.Style
	ValueStyle         lipgloss.Style

	// Grid styles.
	HeaderStyle     lipgloss.Style
	CellStyle       lipgloss.Style
	StripeCellStyle lipgloss.Style
	CursorCellStyle lipgloss.Style
	EditCellStyle   lipgloss.Style
	EditRowStyle    lipgloss.Style
	NewRowStyle     lipgloss.Style
	BusyRowStyle    lipgloss.Style
	TitleStyle      lipgloss.Style

	// Status line styles.
	StatusInfoStyle  lipgloss.Style
	StatusWarnStyle  lipgloss.Style
	StatusErrorStyle lipgloss.Style
	HelpKeyStyle     lipgloss.Style
	HelpDescStyle    lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
)

// statusColors maps well-known documentStatus values to palette colors.
var statusColors map[string]color.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorStripe = Blend(p.Background, p.Surface, 0.5)

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	KeyStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	ValueStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	CellStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Padding(0, 1)
	StripeCellStyle = CellStyle.
		Background(ColorStripe)
	CursorCellStyle = CellStyle.
		Background(ColorSurface).
		Bold(true)
	EditCellStyle = CellStyle.
		Foreground(ColorBackground).
		Background(ColorPrimary)
	EditRowStyle = CellStyle.
		Foreground(ColorSecondary)
	NewRowStyle = CellStyle.
		Foreground(ColorSuccess).
		Italic(true)
	BusyRowStyle = CellStyle.
		Foreground(ColorMuted)
	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)

	StatusInfoStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	StatusWarnStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	statusColors = map[string]color.Color{
		"pending":  ColorWarning,
		"signed":   ColorSuccess,
		"approved": ColorSuccess,
		"rejected": ColorError,
	}
}

// StatusColor returns the color used for a documentStatus value. Unknown
// statuses get the foreground color.
func StatusColor(status string) color.Color {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return ColorForeground
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
