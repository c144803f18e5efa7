package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docgrid/internal/core/config"
)

func TestKeyMap_Action(t *testing.T) {
	km := NewKeyMap(defaultKeybindings(t))

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"a", config.ActionAdd, true},
		{"e", config.ActionEdit, true},
		{"enter", config.ActionEdit, true},
		{"d", config.ActionDelete, true},
		{"r", config.ActionReload, true},
		{"?", config.ActionHelp, true},
		{"q", config.ActionQuit, true},
		{"x", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := km.Action(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyMap_ShortHelpGroupsKeysPerAction(t *testing.T) {
	km := NewKeyMap(map[string]config.Keybinding{
		"e":     {Action: config.ActionEdit, Help: "edit"},
		"enter": {Action: config.ActionEdit, Help: "edit"},
		"x":     {Action: config.ActionQuit, Help: "exit"},
	})

	help := km.ShortHelp()
	require.Len(t, help, 2)
	assert.Equal(t, "e/enter", help[0].Help().Key)
	assert.Equal(t, "edit", help[0].Help().Desc)
	assert.Equal(t, "x", help[1].Help().Key)
	assert.Equal(t, "exit", help[1].Help().Desc)
}

func TestKeyMap_NilBindings(t *testing.T) {
	km := NewKeyMap(nil)

	_, ok := km.Action("a")
	assert.False(t, ok)
	assert.Empty(t, km.ShortHelp())
	assert.Len(t, km.FullHelp(), 3)
}

func defaultKeybindings(t *testing.T) map[string]config.Keybinding {
	t.Helper()
	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	return cfg.Keybindings
}
