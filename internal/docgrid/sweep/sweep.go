// Package sweep removes expired KV entries in the background.
package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultInterval is how often expired entries are swept.
const DefaultInterval = 5 * time.Minute

// Sweeper deletes expired entries.
type Sweeper interface {
	SweepExpired(ctx context.Context) error
}

// Start sweeps once immediately and then on every tick until ctx is
// cancelled. It blocks; run it in a goroutine.
func Start(ctx context.Context, s Sweeper, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.SweepExpired(ctx); err != nil && ctx.Err() == nil {
			log.Debug().Err(err).Msg("kv sweep failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
