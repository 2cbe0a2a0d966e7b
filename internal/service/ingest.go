package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/pkg/e"
)

type ingestService struct {
	repo               PointRepository
	cache              LatestCache
	logger             *slog.Logger
	trustClientDerived bool
	now                func() time.Time
}

func NewIngestService(
	repo PointRepository,
	cache LatestCache,
	logger *slog.Logger,
	trustClientDerived bool,
) Ingestor {
	return &ingestService{
		repo:               repo,
		cache:              cache,
		logger:             logger,
		trustClientDerived: trustClientDerived,
		now:                time.Now,
	}
}

// Ingest runs the batch pipeline: screen every item, compute metrics for
// the survivors, then commit them in one transaction. Per-item failures
// are collected and returned; only a failed commit is fatal.
func (s *ingestService) Ingest(ctx context.Context, req domain.BatchRequest) (domain.BatchResult, error) {
	if req.Items == nil {
		return domain.BatchResult{}, fmt.Errorf("%w: missing items[]", e.ErrMalformedInput)
	}

	batchID := uuid.New()
	receivedAt := s.now().UTC()

	sentAt := req.SentAt
	if sentAt == "" {
		sentAt = receivedAt.Format(time.RFC3339)
	}
	reason := req.Reason
	if reason == "" {
		reason = "unknown"
	}

	l := s.logger.With(slog.String("batch_id", batchID.String()))
	l.Info("batch ingest started",
		slog.Int("items", len(req.Items)),
		slog.String("reason", reason),
	)

	records := make([]*domain.GpsRecord, 0, len(req.Items))
	itemErrs := make([]domain.ItemError, 0)

	for i, raw := range req.Items {
		item, err := ValidateItem(raw)
		if err != nil {
			itemErrs = append(itemErrs, domain.ItemError{Index: i, Error: err.Error()})
			continue
		}

		derived := ComputeDerived(item.Point1, item.Point2)
		if s.trustClientDerived && item.ClientDerived != nil {
			derived = *item.ClientDerived
		}

		records = append(records, &domain.GpsRecord{
			ReceivedAt: receivedAt,
			SentAt:     sentAt,
			Reason:     reason,
			Category:   item.Category,
			User:       item.User,
			CapturedAt: item.CapturedAt,
			Point1:     item.Point1,
			Point2:     item.Point2,
			Derived:    derived,
			RawJSON:    item.Raw,
		})
	}

	if len(records) > 0 {
		if err := s.repo.InsertBatch(ctx, records); err != nil {
			l.Error("batch insert failed, rolled back", slog.Any("error", err))
			return domain.BatchResult{}, fmt.Errorf("%w: %v", e.ErrStorageFailure, err)
		}
		if s.cache != nil {
			if err := s.cache.Invalidate(ctx); err != nil {
				l.Warn("latest cache invalidation failed", slog.Any("error", err))
			}
		}
	}

	l.Info("batch ingest finished",
		slog.Int("inserted", len(records)),
		slog.Int("skipped", len(itemErrs)),
	)

	return domain.BatchResult{
		BatchID:  batchID.String(),
		Inserted: len(records),
		Errors:   itemErrs,
	}, nil
}
