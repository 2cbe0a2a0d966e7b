package service

import (
	"context"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// Ingestor processes one batch submission end to end.
type Ingestor interface {
	Ingest(ctx context.Context, req domain.BatchRequest) (domain.BatchResult, error)
}

// PointQuerier serves the latest-N read path.
type PointQuerier interface {
	Latest(ctx context.Context, req domain.LatestRequest) (*domain.LatestResponse, error)
}

// Moderator toggles the soft-hide flag on stored records.
type Moderator interface {
	Hide(ctx context.Context, id int64, req domain.HideRequest) (domain.ModerationResult, error)
	Unhide(ctx context.Context, id int64) (domain.ModerationResult, error)
}

// StatsProvider reports ingestion volume over a recent window.
type StatsProvider interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.PointStats, error)
}

// PointRepository is the storage contract the services depend on.
// InsertBatch must write all records in one transaction or none of them.
type PointRepository interface {
	InsertBatch(ctx context.Context, records []*domain.GpsRecord) error
	ListLatest(ctx context.Context, limit int) ([]domain.GpsRecord, error)
	Count(ctx context.Context) (int64, error)
}

type ModerationRepository interface {
	Hide(ctx context.Context, id int64, reason *string) error
	Unhide(ctx context.Context, id int64) error
}

type StatsRepository interface {
	CountSince(ctx context.Context, minutes int) (int64, error)
	CountByCategorySince(ctx context.Context, minutes int) (map[string]int64, error)
}

// LatestCache is a best-effort read cache; every service method tolerates
// a nil cache and cache failures.
type LatestCache interface {
	GetLatest(ctx context.Context, limit int) (*domain.LatestResponse, error)
	SetLatest(ctx context.Context, limit int, resp *domain.LatestResponse) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	Ingestor      Ingestor
	PointQuerier  PointQuerier
	Moderator     Moderator
	StatsProvider StatsProvider
}

func NewService(
	ingestor Ingestor,
	querier PointQuerier,
	moderator Moderator,
	stats StatsProvider,
) *Service {
	return &Service{
		Ingestor:      ingestor,
		PointQuerier:  querier,
		Moderator:     moderator,
		StatsProvider: stats,
	}
}
