package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSweepInterval is how often a cache is swept when the caller does not
// configure an interval.
const DefaultSweepInterval = 60 * time.Second

// Target is a cache that supports expired-entry eviction. Satisfied by
// *Cache[T] for any T.
type Target interface {
	Name() string
	Sweep() int
}

// RunSweeper sweeps target on a fixed interval until ctx is cancelled. It
// blocks, so callers run it in a goroutine, one per cache instance; the
// owning context decides the sweeper's lifetime so timers never outlive the
// component that started them.
func RunSweeper(ctx context.Context, target Target, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Debug().Str("cache", target.Name()).Dur("interval", interval).Msg("sweeper started")
	for {
		select {
		case <-ctx.Done():
			logger.Debug().Str("cache", target.Name()).Msg("sweeper stopped")
			return
		case <-ticker.C:
			target.Sweep()
		}
	}
}
