package grid

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/docgrid/internal/core/styles"
)

// confirmDelete is the yes/no prompt shown before a row is deleted.
type confirmDelete struct {
	id        string
	message   string
	confirmed bool
	cancelled bool
}

func newConfirmDelete(id, message string) *confirmDelete {
	return &confirmDelete{id: id, message: message}
}

// Update handles input for the prompt.
func (c confirmDelete) Update(msg tea.KeyPressMsg) confirmDelete {
	switch msg.String() {
	case "y", "Y", "enter":
		c.confirmed = true
	case "n", "N", "esc":
		c.cancelled = true
	}
	return c
}

// View renders the prompt.
func (c confirmDelete) View() string {
	title := styles.ModalTitleStyle.Render(c.message)
	help := styles.ModalHelpStyle.Render("y confirm • n cancel")
	return styles.ModalStyle.Render(title + "\n\n" + help)
}
