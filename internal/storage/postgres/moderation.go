package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kallejre/quick-gps-bookmark/pkg/e"
)

type ModerationRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewModerationRepo(pool *pgxpool.Pool, logger *slog.Logger) *ModerationRepo {
	return &ModerationRepo{pool: pool, logger: logger}
}

func (p *ModerationRepo) Hide(ctx context.Context, id int64, reason *string) error {
	const op = "postgres.Moderation.Hide"

	const query = `
		UPDATE gps_points
		SET hidden_at = NOW(),
			hidden_reason = $2
		WHERE id = $1
	`

	cmd, err := p.pool.Exec(ctx, query, id, reason)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.Int64("id", id))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

func (p *ModerationRepo) Unhide(ctx context.Context, id int64) error {
	const op = "postgres.Moderation.Unhide"

	const query = `
		UPDATE gps_points
		SET hidden_at = NULL,
			hidden_reason = NULL
		WHERE id = $1
	`

	cmd, err := p.pool.Exec(ctx, query, id)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.Int64("id", id))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}
