package styles

import (
	"testing"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames_SortedAndResolvable(t *testing.T) {
	names := ThemeNames()
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, DefaultTheme)

	for _, name := range names {
		_, ok := GetPalette(name)
		assert.True(t, ok, name)
	}

	_, ok := GetPalette("nope")
	assert.False(t, ok)
}

func TestBlend(t *testing.T) {
	black := lipgloss.Color("#000000")
	white := lipgloss.Color("#ffffff")

	start, _ := colorful.MakeColor(Blend(black, white, 0))
	end, _ := colorful.MakeColor(Blend(black, white, 1))
	mid, _ := colorful.MakeColor(Blend(black, white, 0.5))

	assert.Equal(t, "#000000", start.Hex())
	assert.Equal(t, "#ffffff", end.Hex())

	l, _, _ := mid.Lab()
	assert.InDelta(t, 0.5, l, 0.05)
}

func TestPalette_IsDark(t *testing.T) {
	dark, _ := GetPalette("tokyo-night")
	light, _ := GetPalette("material-light")

	assert.True(t, dark.IsDark())
	assert.False(t, light.IsDark())
}

func TestSetTheme_RebuildsGlamourStyle(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, _ := GetPalette("gruvbox")
	SetTheme(p)

	cfg := GlamourStyle()
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, "#ebdbb2", *cfg.Document.Color)
	assert.NotNil(t, ColorStripe)
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, ColorWarning, StatusColor("pending"))
	assert.Equal(t, ColorForeground, StatusColor("whatever"))
}
