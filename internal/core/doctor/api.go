package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/docgrid/internal/core/auth"
	"github.com/colonyops/docgrid/internal/core/record"
)

// Fetcher loads the record list from the document API.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]record.Record, error)
}

// APICheck performs one authenticated fetch against the document API.
type APICheck struct {
	fetcher Fetcher
	baseURL string
	timeout time.Duration
}

// NewAPICheck creates an API reachability check.
func NewAPICheck(fetcher Fetcher, baseURL string, timeout time.Duration) *APICheck {
	return &APICheck{fetcher: fetcher, baseURL: baseURL, timeout: timeout}
}

func (c *APICheck) Name() string {
	return "Document API"
}

func (c *APICheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	records, err := c.fetcher.FetchAll(ctx)
	elapsed := time.Since(start).Round(time.Millisecond)

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		result.add(c.baseURL, StatusWarn, "skipped: not logged in")
	case err != nil:
		result.add(c.baseURL, StatusFail, err.Error())
	default:
		result.add(c.baseURL, StatusPass, fmt.Sprintf("%d records in %s", len(records), elapsed))
	}

	return result
}
