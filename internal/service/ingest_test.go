package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/internal/service"
	"github.com/kallejre/quick-gps-bookmark/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakePointRepo stages batches in memory with all-or-nothing semantics.
type fakePointRepo struct {
	records    []*domain.GpsRecord
	failInsert error
	calls      int
}

func (f *fakePointRepo) InsertBatch(_ context.Context, records []*domain.GpsRecord) error {
	f.calls++
	if f.failInsert != nil {
		return f.failInsert
	}
	for i, r := range records {
		r.ID = int64(len(f.records) + i + 1)
	}
	f.records = append(f.records, records...)
	return nil
}

func (f *fakePointRepo) ListLatest(_ context.Context, limit int) ([]domain.GpsRecord, error) {
	out := make([]domain.GpsRecord, 0, limit)
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.records[i])
	}
	return out, nil
}

func (f *fakePointRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

type fakeCache struct {
	invalidations int
}

func (f *fakeCache) GetLatest(context.Context, int) (*domain.LatestResponse, error) {
	return nil, e.ErrCacheMiss
}
func (f *fakeCache) SetLatest(context.Context, int, *domain.LatestResponse) error { return nil }
func (f *fakeCache) Invalidate(context.Context) error {
	f.invalidations++
	return nil
}

func batchItems(t *testing.T, items ...map[string]any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(items))
	for _, m := range items {
		out = append(out, rawItem(t, m))
	}
	return out
}

func TestIngest_MixedBatch(t *testing.T) {
	t.Parallel()

	repo := &fakePointRepo{}
	cache := &fakeCache{}
	svc := service.NewIngestService(repo, cache, newTestLogger(), false)

	bad := validItem()
	delete(bad, "category")

	req := domain.BatchRequest{
		Items:  batchItems(t, validItem(), bad, validItem()),
		SentAt: "2026-08-30T10:05:00Z",
		Reason: "field-survey",
	}

	res, err := svc.Ingest(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if res.Inserted != 2 {
		t.Fatalf("inserted = %d, want 2", res.Inserted)
	}
	if len(res.Errors) != 1 || res.Errors[0].Index != 1 {
		t.Fatalf("errors = %+v, want one error at index 1", res.Errors)
	}
	if res.BatchID == "" {
		t.Fatalf("expected non-empty batch id")
	}

	if len(repo.records) != 2 {
		t.Fatalf("repo holds %d records, want 2", len(repo.records))
	}
	for _, r := range repo.records {
		if r.Category != "WALK" {
			t.Fatalf("category = %q, want WALK", r.Category)
		}
		if r.SentAt != "2026-08-30T10:05:00Z" || r.Reason != "field-survey" {
			t.Fatalf("batch metadata not applied: %+v", r)
		}
		if r.Derived.ElapsedSec == nil || *r.Derived.ElapsedSec != 2.0 {
			t.Fatalf("derived not computed: %+v", r.Derived)
		}
	}

	// one receivedAt per batch call
	if !repo.records[0].ReceivedAt.Equal(repo.records[1].ReceivedAt) {
		t.Fatalf("records in one batch must share receivedAt")
	}

	if cache.invalidations != 1 {
		t.Fatalf("cache invalidations = %d, want 1", cache.invalidations)
	}
}

func TestIngest_AllInvalidStillSucceeds(t *testing.T) {
	t.Parallel()

	repo := &fakePointRepo{}
	svc := service.NewIngestService(repo, &fakeCache{}, newTestLogger(), false)

	bad1 := validItem()
	delete(bad1, "point1")
	bad2 := validItem()
	bad2["point2"].(map[string]any)["lat"] = "north"

	res, err := svc.Ingest(context.Background(), domain.BatchRequest{Items: batchItems(t, bad1, bad2)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Inserted != 0 || len(res.Errors) != 2 {
		t.Fatalf("got %+v, want 0 inserted and 2 errors", res)
	}
	if res.Errors[0].Index != 0 || res.Errors[1].Index != 1 {
		t.Fatalf("error indexes wrong: %+v", res.Errors)
	}
	if repo.calls != 0 {
		t.Fatalf("repo should not be touched for an all-invalid batch")
	}
}

func TestIngest_EmptyBatch(t *testing.T) {
	t.Parallel()

	repo := &fakePointRepo{}
	svc := service.NewIngestService(repo, &fakeCache{}, newTestLogger(), false)

	res, err := svc.Ingest(context.Background(), domain.BatchRequest{Items: []json.RawMessage{}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Inserted != 0 || len(res.Errors) != 0 {
		t.Fatalf("got %+v, want empty success", res)
	}
}

func TestIngest_MissingItemsIsMalformed(t *testing.T) {
	t.Parallel()

	svc := service.NewIngestService(&fakePointRepo{}, &fakeCache{}, newTestLogger(), false)

	_, err := svc.Ingest(context.Background(), domain.BatchRequest{})
	if !errors.Is(err, e.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestIngest_StorageFailureRollsBackWholeBatch(t *testing.T) {
	t.Parallel()

	repo := &fakePointRepo{failInsert: errors.New("connection reset")}
	cache := &fakeCache{}
	svc := service.NewIngestService(repo, cache, newTestLogger(), false)

	_, err := svc.Ingest(context.Background(), domain.BatchRequest{
		Items: batchItems(t, validItem(), validItem()),
	})
	if !errors.Is(err, e.ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure, got %v", err)
	}

	if len(repo.records) != 0 {
		t.Fatalf("no rows may survive a failed commit, found %d", len(repo.records))
	}
	if cache.invalidations != 0 {
		t.Fatalf("cache must not be invalidated on a failed commit")
	}
}

func TestIngest_Defaults(t *testing.T) {
	t.Parallel()

	repo := &fakePointRepo{}
	svc := service.NewIngestService(repo, &fakeCache{}, newTestLogger(), false)

	if _, err := svc.Ingest(context.Background(), domain.BatchRequest{Items: batchItems(t, validItem())}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	r := repo.records[0]
	if r.Reason != "unknown" {
		t.Fatalf("reason = %q, want unknown default", r.Reason)
	}
	if r.SentAt == "" {
		t.Fatalf("sentAt default not applied")
	}
}

func TestIngest_TrustClientDerived(t *testing.T) {
	t.Parallel()

	withDerived := validItem()
	withDerived["derived"] = map[string]any{
		"dtSec": 9.0, "distanceM": 1.0, "speedKmh": 0.4, "directionDeg": 359.0,
	}

	t.Run("trusted", func(t *testing.T) {
		t.Parallel()

		repo := &fakePointRepo{}
		svc := service.NewIngestService(repo, &fakeCache{}, newTestLogger(), true)

		if _, err := svc.Ingest(context.Background(), domain.BatchRequest{Items: batchItems(t, withDerived)}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}

		d := repo.records[0].Derived
		if d.ElapsedSec == nil || *d.ElapsedSec != 9.0 || d.DistanceM == nil || *d.DistanceM != 1.0 {
			t.Fatalf("client derived not stored verbatim: %+v", d)
		}
	})

	t.Run("recomputed_by_default", func(t *testing.T) {
		t.Parallel()

		repo := &fakePointRepo{}
		svc := service.NewIngestService(repo, &fakeCache{}, newTestLogger(), false)

		if _, err := svc.Ingest(context.Background(), domain.BatchRequest{Items: batchItems(t, withDerived)}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}

		d := repo.records[0].Derived
		if d.ElapsedSec == nil || *d.ElapsedSec != 2.0 {
			t.Fatalf("server must recompute derived metrics, got %+v", d)
		}
	})
}
