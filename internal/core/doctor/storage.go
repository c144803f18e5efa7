package doctor

import (
	"context"
	"database/sql"
	"fmt"
)

// Sweeper counts and removes expired cache entries.
type Sweeper interface {
	CountExpired(ctx context.Context) (int, error)
	SweepExpired(ctx context.Context) error
}

// StorageCheck verifies the local SQLite database is reachable and intact.
type StorageCheck struct {
	conn    *sql.DB
	sweeper Sweeper
	autofix bool
}

// NewStorageCheck creates a storage check. When autofix is set, expired
// cache entries are swept.
func NewStorageCheck(conn *sql.DB, sweeper Sweeper, autofix bool) *StorageCheck {
	return &StorageCheck{conn: conn, sweeper: sweeper, autofix: autofix}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.conn == nil {
		result.add("database", StatusFail, "not open")
		return result
	}

	if err := c.conn.PingContext(ctx); err != nil {
		result.add("database", StatusFail, err.Error())
		return result
	}
	result.add("database", StatusPass, "reachable")

	var verdict string
	if err := c.conn.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&verdict); err != nil {
		result.add("integrity", StatusFail, err.Error())
	} else if verdict != "ok" {
		result.add("integrity", StatusFail, verdict)
	} else {
		result.add("integrity", StatusPass, "ok")
	}

	if c.sweeper == nil {
		return result
	}

	expired, err := c.sweeper.CountExpired(ctx)
	switch {
	case err != nil:
		result.add("cache", StatusWarn, err.Error())
	case expired == 0:
		result.add("cache", StatusPass, "no expired entries")
	case c.autofix:
		if err := c.sweeper.SweepExpired(ctx); err != nil {
			result.add("cache", StatusFail, fmt.Sprintf("sweep failed: %v", err))
		} else {
			result.add("cache", StatusPass, fmt.Sprintf("swept %d expired entries", expired))
		}
	default:
		result.Items = append(result.Items, CheckItem{
			Label:   "cache",
			Status:  StatusWarn,
			Detail:  fmt.Sprintf("%d expired entries", expired),
			Fixable: true,
		})
	}

	return result
}
