package service

import (
	"context"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
)

type statsService struct {
	repo StatsRepository
}

func NewStatsService(repo StatsRepository) StatsProvider {
	return &statsService{repo: repo}
}

func (s *statsService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.PointStats, error) {
	minutes := req.Minutes
	if minutes == 0 {
		minutes = 60
	}

	total, err := s.repo.CountSince(ctx, minutes)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.repo.CountByCategorySince(ctx, minutes)
	if err != nil {
		return nil, err
	}

	return &domain.PointStats{
		Total:      total,
		ByCategory: byCategory,
		Minutes:    minutes,
	}, nil
}
