package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kallejre/quick-gps-bookmark/internal/api"
	"github.com/kallejre/quick-gps-bookmark/internal/config"
	"github.com/kallejre/quick-gps-bookmark/internal/redis"
	"github.com/kallejre/quick-gps-bookmark/internal/render"
	"github.com/kallejre/quick-gps-bookmark/internal/service"
	"github.com/kallejre/quick-gps-bookmark/internal/storage/postgres"
	"github.com/kallejre/quick-gps-bookmark/internal/workers"
	"github.com/kallejre/quick-gps-bookmark/pkg/logger"
)

const templateGlob = "web/templates/*.html"

type Components struct {
	logger      *slog.Logger
	HttpServer  *api.Server
	Postgres    *postgres.Postgres
	Redis       *redis.Redis
	CacheWarmer *workers.CacheWarmer
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	cache := redis.NewPointsCache(redisClient, cfg.Redis.CacheTTL)

	ingestSvc := service.NewIngestService(storage.PointRepository(), cache, logger, cfg.Ingest.TrustClientDerived)
	querySvc := service.NewQueryService(storage.PointRepository(), cache, logger)
	moderationSvc := service.NewModerationService(storage.ModerationRepository(), cache, logger)
	statsSvc := service.NewStatsService(storage.StatsRepository())

	srv := service.NewService(ingestSvc, querySvc, moderationSvc, statsSvc)

	renderer, err := render.NewRenderer(templateGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	httpServer := api.NewServer(cfg, logger, srv, renderer)
	warmer := workers.NewCacheWarmer(querySvc, cfg.Ingest.CacheWarmInterval, logger)
	logger.Info("Initialized server")

	return &Components{
		logger:      logger,
		HttpServer:  httpServer,
		Postgres:    storage,
		Redis:       redisClient,
		CacheWarmer: warmer,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
