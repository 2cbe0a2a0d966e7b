package service_test

import (
	"context"
	"testing"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/internal/service"
	"github.com/kallejre/quick-gps-bookmark/pkg/e"
)

// storingCache remembers the last SetLatest call and can serve one
// canned response.
type storingCache struct {
	stored map[int]*domain.LatestResponse
}

func newStoringCache() *storingCache {
	return &storingCache{stored: make(map[int]*domain.LatestResponse)}
}

func (c *storingCache) GetLatest(_ context.Context, limit int) (*domain.LatestResponse, error) {
	if resp, ok := c.stored[limit]; ok {
		return resp, nil
	}
	return nil, e.ErrCacheMiss
}

func (c *storingCache) SetLatest(_ context.Context, limit int, resp *domain.LatestResponse) error {
	c.stored[limit] = resp
	return nil
}

func (c *storingCache) Invalidate(context.Context) error {
	c.stored = make(map[int]*domain.LatestResponse)
	return nil
}

func seededRepo(t *testing.T, n int) *fakePointRepo {
	t.Helper()
	repo := &fakePointRepo{}
	svc := service.NewIngestService(repo, nil, newTestLogger(), false)
	for i := 0; i < n; i++ {
		if _, err := svc.Ingest(context.Background(), domain.BatchRequest{Items: batchItems(t, validItem())}); err != nil {
			t.Fatalf("seed insert: %v", err)
		}
	}
	return repo
}

func TestLatest_ClampsLimit(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t, 3)
	svc := service.NewQueryService(repo, nil, newTestLogger())

	cases := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"explicit_zero", 0, 1},
		{"negative", -5, 1},
		{"too_large", 9999, domain.LatestMaxLimit},
		{"in_range", 2, 2},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			resp, err := svc.Latest(context.Background(), domain.LatestRequest{Limit: c.limit})
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if resp.Limit != c.wantLimit {
				t.Fatalf("limit = %d, want %d", resp.Limit, c.wantLimit)
			}
			if resp.Total != 3 {
				t.Fatalf("total = %d, want 3", resp.Total)
			}
		})
	}
}

func TestLatest_NewestFirst(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t, 3)
	svc := service.NewQueryService(repo, nil, newTestLogger())

	resp, err := svc.Latest(context.Background(), domain.LatestRequest{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Count != 2 || len(resp.Rows) != 2 {
		t.Fatalf("count = %d rows = %d, want 2", resp.Count, len(resp.Rows))
	}
	if resp.Rows[0].ID <= resp.Rows[1].ID {
		t.Fatalf("rows not newest-first: %d then %d", resp.Rows[0].ID, resp.Rows[1].ID)
	}
}

func TestLatest_UsesCache(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t, 1)
	cache := newStoringCache()
	svc := service.NewQueryService(repo, cache, newTestLogger())

	first, err := svc.Latest(context.Background(), domain.LatestRequest{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.stored[10] == nil {
		t.Fatalf("response not written to cache")
	}

	// grow the repo behind the cache's back; the cached page must win
	if _, err := service.NewIngestService(repo, nil, newTestLogger(), false).
		Ingest(context.Background(), domain.BatchRequest{Items: batchItems(t, validItem())}); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	second, err := svc.Latest(context.Background(), domain.LatestRequest{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.Total != first.Total {
		t.Fatalf("expected cached response, got a fresh read (total %d vs %d)", second.Total, first.Total)
	}
}

func TestModeration_HideTrimsReasonAndInvalidatesCache(t *testing.T) {
	t.Parallel()

	repo := &fakeModerationRepo{}
	cache := newStoringCache()
	cache.stored[50] = &domain.LatestResponse{}
	svc := service.NewModerationService(repo, cache, newTestLogger())

	reason := "  spam  "
	res, err := svc.Hide(context.Background(), 7, domain.HideRequest{Reason: &reason})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.Hidden || res.ID != 7 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if repo.lastReason == nil || *repo.lastReason != "spam" {
		t.Fatalf("reason not trimmed: %v", repo.lastReason)
	}
	if len(cache.stored) != 0 {
		t.Fatalf("cache not invalidated after hide")
	}

	res, err = svc.Unhide(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Hidden {
		t.Fatalf("unhide must report hidden=false")
	}
}

type fakeModerationRepo struct {
	lastReason *string
}

func (f *fakeModerationRepo) Hide(_ context.Context, id int64, reason *string) error {
	f.lastReason = reason
	return nil
}

func (f *fakeModerationRepo) Unhide(context.Context, int64) error { return nil }
