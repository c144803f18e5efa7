package grid

import (
	"maps"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/colonyops/docgrid/internal/core/config"
)

// actionOrder is the order actions appear in help.
var actionOrder = []string{
	config.ActionAdd,
	config.ActionEdit,
	config.ActionDelete,
	config.ActionReload,
	config.ActionHelp,
	config.ActionQuit,
}

// KeyMap holds the grid's fixed navigation and edit keys plus the
// configurable view-mode actions.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	NextCell  key.Binding
	PrevCell  key.Binding
	Commit    key.Binding
	Cancel    key.Binding
	ForceQuit key.Binding

	actions  map[string]config.Keybinding
	bindings map[string]key.Binding
}

// NewKeyMap builds a KeyMap from the merged keybinding config.
func NewKeyMap(keybindings map[string]config.Keybinding) KeyMap {
	km := KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		NextCell:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevCell:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		actions:   maps.Clone(keybindings),
		bindings:  make(map[string]key.Binding),
	}
	if km.actions == nil {
		km.actions = map[string]config.Keybinding{}
	}

	byAction := make(map[string][]string)
	helpText := make(map[string]string)
	for _, k := range slices.Sorted(maps.Keys(km.actions)) {
		kb := km.actions[k]
		byAction[kb.Action] = append(byAction[kb.Action], k)
		if _, ok := helpText[kb.Action]; !ok {
			helpText[kb.Action] = kb.Help
		}
	}

	for action, keys := range byAction {
		km.bindings[action] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), helpText[action]),
		)
	}

	return km
}

// Action resolves a pressed key to a configured action.
func (k KeyMap) Action(pressed string) (string, bool) {
	kb, ok := k.actions[pressed]
	if !ok {
		return "", false
	}
	return kb.Action, true
}

// ShortHelp returns the view-mode bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(actionOrder))
	for _, action := range actionOrder {
		if b, ok := k.bindings[action]; ok {
			out = append(out, b)
		}
	}
	return out
}

// FullHelp returns all bindings grouped into navigation, editing and
// actions.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextCell, k.PrevCell, k.Commit, k.Cancel},
		k.ShortHelp(),
	}
}
