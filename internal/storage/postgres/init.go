package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kallejre/quick-gps-bookmark/internal/config"
	"github.com/kallejre/quick-gps-bookmark/pkg/e"
)

type Postgres struct {
	Pool       *pgxpool.Pool
	Points     *PointRepo
	Moderation *ModerationRepo
	Stat       *StatsRepo
}

func NewPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.SSLMode,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("Failed to parse pgx config", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.ParseConfig", err)
	}
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	poolCfg.MinConns = cfg.Postgres.MinConns
	poolCfg.MaxConnLifetime = cfg.Postgres.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("Failed to create pgx pool", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Failed to ping Postgres database", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Ping", err)
	}
	logger.Info("Connected to Postgres successfully")

	if err := EnsureSchema(ctx, pool); err != nil {
		logger.Error("Schema bootstrap failed", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.EnsureSchema", err)
	}

	return &Postgres{
		Pool:       pool,
		Points:     NewPointRepo(pool, logger),
		Moderation: NewModerationRepo(pool, logger),
		Stat:       NewStatsRepo(pool, logger),
	}, nil
}

// EnsureSchema creates the single gps_points table when it does not exist
// yet, matching the wire field names the ingest endpoint accepts.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS gps_points (
			id BIGSERIAL PRIMARY KEY,

			received_at TIMESTAMPTZ NOT NULL,
			sent_at TEXT,
			reason TEXT,

			category TEXT NOT NULL,
			"user" TEXT,
			captured_at TEXT NOT NULL,

			p1_lat DOUBLE PRECISION NOT NULL,
			p1_lon DOUBLE PRECISION NOT NULL,
			p1_accuracy_m DOUBLE PRECISION,
			p1_timestamp_ms BIGINT,

			p2_lat DOUBLE PRECISION NOT NULL,
			p2_lon DOUBLE PRECISION NOT NULL,
			p2_accuracy_m DOUBLE PRECISION,
			p2_timestamp_ms BIGINT,

			dt_sec DOUBLE PRECISION,
			distance_m DOUBLE PRECISION,
			speed_kmh DOUBLE PRECISION,
			direction_deg DOUBLE PRECISION,

			raw_json JSONB,

			hidden_at TIMESTAMPTZ,
			hidden_reason TEXT
		)
	`)
	return err
}
