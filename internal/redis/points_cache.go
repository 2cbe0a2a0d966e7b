package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/pkg/e"
)

// PointsCache stores rendered latest-N responses under a versioned key.
// Invalidate bumps the version instead of scanning for per-limit keys;
// stale entries fall out through the TTL.
type PointsCache struct {
	client *goredis.Client
	ttl    time.Duration
}

const (
	latestVersionKey = "points:latest:ver"
	latestKeyFormat  = "points:latest:%d:v%d"
)

func NewPointsCache(r *Redis, ttl time.Duration) *PointsCache {
	return &PointsCache{client: r.Client, ttl: ttl}
}

func (c *PointsCache) GetLatest(ctx context.Context, limit int) (*domain.LatestResponse, error) {
	ver, err := c.version(ctx)
	if err != nil {
		return nil, err
	}

	data, err := c.client.Get(ctx, c.key(limit, ver)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, e.ErrCacheMiss
		}
		return nil, err
	}

	var resp domain.LatestResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *PointsCache) SetLatest(ctx context.Context, limit int, resp *domain.LatestResponse) error {
	ver, err := c.version(ctx)
	if err != nil {
		return err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.key(limit, ver), b, c.ttl).Err()
}

func (c *PointsCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, latestVersionKey).Err()
}

func (c *PointsCache) key(limit int, ver int64) string {
	return fmt.Sprintf(latestKeyFormat, limit, ver)
}

func (c *PointsCache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, latestVersionKey).Int64()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return ver, nil
}
