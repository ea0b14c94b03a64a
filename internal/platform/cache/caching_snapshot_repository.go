// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/feature/drawing/usecase"
)

// CachingSnapshotRepository decorates a SnapshotRepository with Redis
// caching. It implements the decorator pattern, transparently adding caching
// without modifying the underlying repository. Each chart maps to exactly
// one key, so writes go straight through instead of invalidating by pattern.
type CachingSnapshotRepository struct {
	inner     usecase.SnapshotRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.SnapshotRepository = (*CachingSnapshotRepository)(nil)

// NewCachingSnapshotRepository decorates a SnapshotRepository with Redis
// caching. If ttl is 0, it defaults to 5 minutes. If namespace is empty, it
// uses "snapshots".
func NewCachingSnapshotRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SnapshotRepository, namespace string) *CachingSnapshotRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "snapshots"
	}
	return &CachingSnapshotRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Save persists the snapshot and refreshes the cache entry (write-through).
func (c *CachingSnapshotRepository) Save(ctx context.Context, chartID string, snap entity.Snapshot) error {
	// First persist to the underlying repository
	if err := c.inner.Save(ctx, chartID, snap); err != nil {
		return err
	}
	// Exit early if Redis is not configured
	if c.rdb == nil {
		return nil
	}

	// Refresh the cache entry (best effort: don't fail the save on cache errors)
	if b, err := json.Marshal(snap); err == nil {
		_ = c.rdb.Set(ctx, c.cacheKey(chartID), b, c.ttl).Err()
	}
	return nil
}

// Load retrieves the snapshot, checking cache first then falling back to
// the database.
func (c *CachingSnapshotRepository) Load(ctx context.Context, chartID string) (entity.Snapshot, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Load(ctx, chartID)
	}

	key := c.cacheKey(chartID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Snapshot
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	// Not-found also falls through here: absence is a domain answer, not a
	// cacheable value.
	out, err := c.inner.Load(ctx, chartID)
	if err != nil {
		return entity.Snapshot{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates the cache key for a chart's snapshot.
func (c *CachingSnapshotRepository) cacheKey(chartID string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(chartID))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
