package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/internal/service"
)

// CacheWarmer keeps the default latest page warm in the cache so that the
// first read after an ingest or moderation pass does not hit Postgres.
type CacheWarmer struct {
	querier  service.PointQuerier
	interval time.Duration
	logger   *slog.Logger
}

func NewCacheWarmer(querier service.PointQuerier, interval time.Duration, logger *slog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &CacheWarmer{querier: querier, interval: interval, logger: logger}
}

func (w *CacheWarmer) Run(ctx context.Context) {
	w.logger.Info("cache warmer started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("cache warmer stopped", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			if _, err := w.querier.Latest(ctx, domain.LatestRequest{Limit: domain.LatestDefaultLimit}); err != nil {
				w.logger.Warn("cache warm pass failed", slog.Any("error", err))
			}
		}
	}
}
