package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/docgrid/internal/core/auth"
)

// CredentialStore loads and clears the saved session credential.
type CredentialStore interface {
	Load(ctx context.Context) (auth.Credential, error)
	Clear(ctx context.Context) error
}

// CredentialCheck reports on the saved login credential.
type CredentialCheck struct {
	store   CredentialStore
	autofix bool
	now     func() time.Time
}

// NewCredentialCheck creates a credential check. When autofix is set, an
// expired credential is cleared.
func NewCredentialCheck(store CredentialStore, autofix bool) *CredentialCheck {
	return &CredentialCheck{store: store, autofix: autofix, now: time.Now}
}

func (c *CredentialCheck) Name() string {
	return "Credential"
}

func (c *CredentialCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	cred, err := c.store.Load(ctx)
	if errors.Is(err, auth.ErrUnauthenticated) {
		result.add("token", StatusWarn, "not logged in: run 'docgrid login'")
		return result
	}
	if err != nil {
		result.add("token", StatusFail, err.Error())
		return result
	}

	label := "token"
	if cred.Username != "" {
		label = "token (" + cred.Username + ")"
	}

	desc := auth.Describe(cred.Token)
	switch {
	case desc.Opaque:
		result.add(label, StatusPass, "opaque token")
	case desc.Expired(c.now()):
		if c.autofix {
			if err := c.store.Clear(ctx); err != nil {
				result.add(label, StatusFail, fmt.Sprintf("clear expired token: %v", err))
			} else {
				result.add(label, StatusPass, "expired token cleared")
			}
			return result
		}
		result.Items = append(result.Items, CheckItem{
			Label:   label,
			Status:  StatusFail,
			Detail:  "expired " + desc.ExpiresAt.Format(time.RFC3339),
			Fixable: true,
		})
	case desc.ExpiresAt.IsZero():
		result.add(label, StatusPass, "no expiry")
	default:
		result.add(label, StatusPass, "expires "+desc.ExpiresAt.Format(time.RFC3339))
	}

	return result
}
