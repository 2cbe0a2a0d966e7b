package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/pkg/e"
)

type queryService struct {
	repo   PointRepository
	cache  LatestCache
	logger *slog.Logger
}

func NewQueryService(repo PointRepository, cache LatestCache, logger *slog.Logger) PointQuerier {
	return &queryService{repo: repo, cache: cache, logger: logger}
}

func (s *queryService) Latest(ctx context.Context, req domain.LatestRequest) (*domain.LatestResponse, error) {
	limit := req.ClampLimit()

	if s.cache != nil {
		resp, err := s.cache.GetLatest(ctx, limit)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, e.ErrCacheMiss) {
			s.logger.Warn("latest cache read failed", slog.Any("error", err))
		}
	}

	rows, err := s.repo.ListLatest(ctx, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	resp := &domain.LatestResponse{
		Total: total,
		Limit: limit,
		Count: len(rows),
		Rows:  rows,
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, limit, resp); err != nil {
			s.logger.Warn("latest cache write failed", slog.Any("error", err))
		}
	}

	return resp, nil
}
