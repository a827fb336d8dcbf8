package ratelimit

import (
	"context"
	"time"

	"minerals/backend/internal/scheduler"
	"minerals/backend/pkg/logger"
)

// NewReaper returns a stopped scheduler that sweeps store every interval and
// passes the number of removed windows to onSwept (which may be nil).
func NewReaper(store *MemoryStore, interval time.Duration, onSwept func(removed int)) *scheduler.Scheduler {
	if interval <= 0 {
		interval = ReapInterval
	}
	return scheduler.New("ratelimit-reaper", interval, func(ctx context.Context) error {
		removed, err := store.Sweep(ctx)
		if err != nil {
			return err
		}
		if onSwept != nil {
			onSwept(removed)
		}
		if removed > 0 {
			logger.Debug("rate limit windows swept", "module", "ratelimit", "action", "sweep", "resource", "window", "result", "ok", "removed", removed, "remaining", store.Len())
		}
		return nil
	})
}
