package editing

import (
	"errors"
	"fmt"

	"github.com/colonyops/docgrid/internal/core/auth"
)

var (
	// ErrOperationInProgress is returned when a transition is attempted on a
	// row that has a remote call in flight.
	ErrOperationInProgress = errors.New("operation in progress")
	// ErrNotEditing is returned when an edit-only operation targets a row in
	// view mode.
	ErrNotEditing = errors.New("row is not in edit mode")
	// ErrRemoteFailure matches any failed create, update, delete or fetch
	// call other than a missing credential.
	ErrRemoteFailure = errors.New("remote operation failed")
)

// Remote operation names.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpFetch  = "fetch"
)

// RemoteError reports a failed call to the Syncer. RowID is empty for
// collection-wide operations.
type RemoteError struct {
	Op    string
	RowID string
	Err   error
}

func (e *RemoteError) Error() string {
	if e.RowID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.RowID, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is reports ErrRemoteFailure for every cause except a missing credential,
// which stays distinguishable as auth.ErrUnauthenticated.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteFailure && !errors.Is(e.Err, auth.ErrUnauthenticated)
}

// IsRecoverable reports whether err is an expected condition that leaves the
// row usable: a remote failure or a missing credential.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrRemoteFailure) || errors.Is(err, auth.ErrUnauthenticated)
}
