package entitlement

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisCache shares snapshots between instances through Redis, so an
// invalidation issued on one node takes effect everywhere immediately
// instead of waiting out the TTL of each process-local cache.
type redisCache struct {
	db     redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// DefaultRedisKeyPrefix namespaces snapshot keys in a shared Redis database.
const DefaultRedisKeyPrefix = "entitlement:snapshot:"

// NewRedisCache creates a snapshot cache backed by Redis. An empty prefix
// falls back to DefaultRedisKeyPrefix. Redis failures degrade to cache
// misses; they never fail an entitlement check.
func NewRedisCache(client redis.UniversalClient, prefix string, logger *slog.Logger) SnapshotCache {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &redisCache{db: client, prefix: prefix, logger: logger}
}

func (c *redisCache) key(tenantID uuid.UUID) string {
	return c.prefix + tenantID.String()
}

func (c *redisCache) Get(ctx context.Context, tenantID uuid.UUID) (*TenantPlanInfo, bool) {
	data, err := c.db.Get(ctx, c.key(tenantID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "snapshot cache read failed", "error", err)
		}
		return nil, false
	}

	var info TenantPlanInfo
	if err := json.Unmarshal(data, &info); err != nil {
		c.logger.WarnContext(ctx, "snapshot cache entry corrupted", "error", err)
		c.db.Del(ctx, c.key(tenantID))
		return nil, false
	}
	return &info, true
}

func (c *redisCache) Set(ctx context.Context, tenantID uuid.UUID, info *TenantPlanInfo, ttl time.Duration) {
	data, err := json.Marshal(info)
	if err != nil {
		c.logger.WarnContext(ctx, "snapshot cache encode failed", "error", err)
		return
	}
	if err := c.db.Set(ctx, c.key(tenantID), data, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "snapshot cache write failed", "error", err)
	}
}

func (c *redisCache) Delete(ctx context.Context, tenantID uuid.UUID) {
	if err := c.db.Del(ctx, c.key(tenantID)).Err(); err != nil {
		// A failed delete leaves the stale snapshot live until its TTL.
		c.logger.WarnContext(ctx, "snapshot cache invalidation failed", "error", err)
	}
}

func (c *redisCache) Close() error {
	// The client is shared; its owner closes it.
	return nil
}
