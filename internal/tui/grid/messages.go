package grid

import (
	"time"

	"github.com/colonyops/docgrid/internal/docgrid/updatecheck"
)

// reloadedMsg reports the result of a full reload.
type reloadedMsg struct {
	err error
}

// committedMsg reports the result of a commit. id is the id the row lives
// under afterwards; it differs from prevID when a placeholder was created.
type committedMsg struct {
	prevID string
	id     string
	err    error
}

// deletedMsg reports the result of a delete.
type deletedMsg struct {
	id  string
	err error
}

// statusReadyMsg signals that the status queue has entries.
type statusReadyMsg struct{}

// statusTickMsg ages the status line.
type statusTickMsg time.Time

// updateAvailableMsg carries a newer release, if any.
type updateAvailableMsg struct {
	result *updatecheck.Result
}
