package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ordbok-backend/application/ports"
	"ordbok-backend/pkg/observability"
)

// Cache tier names used in metrics
const (
	TierMemory = "memory"
	TierRedis  = "redis"
)

// TieredCache reads through a local tier before a shared tier and backfills
// the local tier on shared hits. The shared tier is optional.
type TieredCache struct {
	local    ports.Cache
	shared   ports.Cache
	localTTL time.Duration
	metrics  *observability.Collector
	logger   *zap.Logger
}

// NewTieredCache creates a two-tier cache. shared may be nil.
func NewTieredCache(local, shared ports.Cache, localTTL time.Duration, metrics *observability.Collector, logger *zap.Logger) *TieredCache {
	return &TieredCache{
		local:    local,
		shared:   shared,
		localTTL: localTTL,
		metrics:  metrics,
		logger:   logger,
	}
}

// Get returns the first hit, local tier first
func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if value, ok, err := c.local.Get(ctx, key); err == nil && ok {
		c.metrics.RecordCacheResult(TierMemory, "hit")
		return value, true, nil
	}
	c.metrics.RecordCacheResult(TierMemory, "miss")

	if c.shared == nil {
		return nil, false, nil
	}

	value, ok, err := c.shared.Get(ctx, key)
	if err != nil {
		c.metrics.RecordCacheResult(TierRedis, "error")
		return nil, false, err
	}
	if !ok {
		c.metrics.RecordCacheResult(TierRedis, "miss")
		return nil, false, nil
	}
	c.metrics.RecordCacheResult(TierRedis, "hit")

	if err := c.local.Set(ctx, key, value, c.localTTL); err != nil {
		c.logger.Debug("local cache backfill failed", zap.String("key", key), zap.Error(err))
	}
	return value, true, nil
}

// Set writes to both tiers. The shared tier uses ttl; the local tier never
// outlives it.
func (c *TieredCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	localTTL := c.localTTL
	if ttl > 0 && (localTTL <= 0 || ttl < localTTL) {
		localTTL = ttl
	}
	if err := c.local.Set(ctx, key, value, localTTL); err != nil {
		return err
	}
	if c.shared == nil {
		return nil
	}
	return c.shared.Set(ctx, key, value, ttl)
}

// Delete removes the key from both tiers
func (c *TieredCache) Delete(ctx context.Context, key string) error {
	if err := c.local.Delete(ctx, key); err != nil {
		return err
	}
	if c.shared == nil {
		return nil
	}
	return c.shared.Delete(ctx, key)
}

// Clear empties both tiers
func (c *TieredCache) Clear(ctx context.Context) error {
	if err := c.local.Clear(ctx); err != nil {
		return err
	}
	if c.shared == nil {
		return nil
	}
	return c.shared.Clear(ctx)
}
