package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/pkg/e"
)

type PointRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPointRepo(pool *pgxpool.Pool, logger *slog.Logger) *PointRepo {
	return &PointRepo{pool: pool, logger: logger}
}

// InsertBatch writes every record inside one transaction. Any failure
// rolls the whole batch back; callers must not assume partial writes.
// IDs are filled in from the sequence on success.
func (p *PointRepo) InsertBatch(ctx context.Context, records []*domain.GpsRecord) error {
	const op = "postgres.Points.InsertBatch"

	if len(records) == 0 {
		return nil
	}

	const query = `
		INSERT INTO gps_points (
			received_at, sent_at, reason,
			category, "user", captured_at,
			p1_lat, p1_lon, p1_accuracy_m, p1_timestamp_ms,
			p2_lat, p2_lon, p2_accuracy_m, p2_timestamp_ms,
			dt_sec, distance_m, speed_kmh, direction_deg,
			raw_json
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17, $18,
			$19
		)
		RETURNING id
	`

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Error("tx begin failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, r := range records {
		err := tx.QueryRow(ctx, query,
			r.ReceivedAt, r.SentAt, r.Reason,
			r.Category, r.User, r.CapturedAt,
			r.Point1.Lat, r.Point1.Lon, r.Point1.AccuracyM, r.Point1.TimestampMs,
			r.Point2.Lat, r.Point2.Lon, r.Point2.AccuracyM, r.Point2.TimestampMs,
			r.Derived.ElapsedSec, r.Derived.DistanceM, r.Derived.SpeedKmh, r.Derived.BearingDeg,
			r.RawJSON,
		).Scan(&r.ID)
		if err != nil {
			p.logger.Error("batch insert failed", slog.String("op", op), slog.Any("error", err))
			return e.WrapError(ctx, op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("tx commit failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

const recordColumns = `
		id, received_at, sent_at, reason,
		category, "user", captured_at,
		p1_lat, p1_lon, p1_accuracy_m, p1_timestamp_ms,
		p2_lat, p2_lon, p2_accuracy_m, p2_timestamp_ms,
		dt_sec, distance_m, speed_kmh, direction_deg,
		hidden_at, hidden_reason`

func (p *PointRepo) ListLatest(ctx context.Context, limit int) ([]domain.GpsRecord, error) {
	const op = "postgres.Points.ListLatest"

	query := `
		SELECT` + recordColumns + `
		FROM gps_points
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := p.pool.Query(ctx, query, limit)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	records := make([]domain.GpsRecord, 0, limit)
	for rows.Next() {
		var r domain.GpsRecord
		if err := rows.Scan(
			&r.ID, &r.ReceivedAt, &r.SentAt, &r.Reason,
			&r.Category, &r.User, &r.CapturedAt,
			&r.Point1.Lat, &r.Point1.Lon, &r.Point1.AccuracyM, &r.Point1.TimestampMs,
			&r.Point2.Lat, &r.Point2.Lon, &r.Point2.AccuracyM, &r.Point2.TimestampMs,
			&r.Derived.ElapsedSec, &r.Derived.DistanceM, &r.Derived.SpeedKmh, &r.Derived.BearingDeg,
			&r.HiddenAt, &r.HiddenReason,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return records, nil
}

func (p *PointRepo) Count(ctx context.Context) (int64, error) {
	const op = "postgres.Points.Count"

	var cnt int64
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM gps_points`).Scan(&cnt); err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	return cnt, nil
}
