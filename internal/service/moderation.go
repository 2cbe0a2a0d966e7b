package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
)

type moderationService struct {
	repo   ModerationRepository
	cache  LatestCache
	logger *slog.Logger
}

func NewModerationService(repo ModerationRepository, cache LatestCache, logger *slog.Logger) Moderator {
	return &moderationService{repo: repo, cache: cache, logger: logger}
}

func (s *moderationService) Hide(ctx context.Context, id int64, req domain.HideRequest) (domain.ModerationResult, error) {
	var reason *string
	if req.Reason != nil {
		if r := strings.TrimSpace(*req.Reason); r != "" {
			reason = &r
		}
	}

	if err := s.repo.Hide(ctx, id, reason); err != nil {
		return domain.ModerationResult{}, err
	}

	s.logger.Info("record hidden", slog.Int64("id", id))
	s.invalidate(ctx)

	return domain.ModerationResult{ID: id, Hidden: true}, nil
}

func (s *moderationService) Unhide(ctx context.Context, id int64) (domain.ModerationResult, error) {
	if err := s.repo.Unhide(ctx, id); err != nil {
		return domain.ModerationResult{}, err
	}

	s.logger.Info("record unhidden", slog.Int64("id", id))
	s.invalidate(ctx)

	return domain.ModerationResult{ID: id, Hidden: false}, nil
}

func (s *moderationService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("latest cache invalidation failed", slog.Any("error", err))
	}
}
