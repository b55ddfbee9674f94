package store

import (
	"context"
	"log/slog"
	"time"
)

const janitorInterval = 10 * time.Minute

// StartJanitor runs a background goroutine that periodically sweeps for
// session records idle longer than ttl and removes them.
func StartJanitor(ctx context.Context, repo Repository, ttl time.Duration) {
	ticker := time.NewTicker(janitorInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("Session janitor started", "interval", janitorInterval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				removed, err := repo.CleanupExpiredSessions(ctx, ttl)
				if err != nil {
					slog.Error("Session janitor sweep failed", "error", err)
					continue
				}
				if removed > 0 {
					slog.Info("Session janitor removed expired sessions", "count", removed)
				}
			case <-ctx.Done():
				slog.Info("Session janitor shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
