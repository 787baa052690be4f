// Package cache stores gateway responses in Redis, encoded with msgpack.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/dileep-u-k/inventory-agent/internal/logging"
)

// Cache status values reported to clients.
const (
	StatusHit      = "HIT"
	StatusMiss     = "MISS"
	StatusDisabled = "DISABLED"
)

// DefaultTTL is how long entries live unless configured otherwise.
const DefaultTTL = 24 * time.Hour

// Cache is a best-effort response cache. Failures are logged and reported as
// misses, so callers never fail because of it.
type Cache interface {
	// Get decodes the value stored at key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) bool
	// Set stores v at key.
	Set(ctx context.Context, key string, v any)
	// Status is StatusDisabled for a no-op cache, StatusMiss otherwise.
	Status() string
}

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache wraps an existing client. A zero ttl means DefaultTTL.
func NewRedisCache(rdb *redis.Client, ttl time.Duration, logger logging.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &RedisCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.Warnf("redis GET %s failed: %v", key, err)
		return false
	}
	if err := msgpack.Unmarshal(raw, dst); err != nil {
		c.logger.Warnf("cached value at %s is unreadable: %v", key, err)
		return false
	}
	return true
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, v any) {
	raw, err := msgpack.Marshal(v)
	if err != nil {
		c.logger.Warnf("could not encode value for %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warnf("redis SET %s failed: %v", key, err)
	}
}

// Status implements Cache.
func (c *RedisCache) Status() string { return StatusMiss }

// Noop is used when no Redis address is configured.
type Noop struct{}

var _ Cache = Noop{}

func (Noop) Get(context.Context, string, any) bool { return false }
func (Noop) Set(context.Context, string, any)      {}
func (Noop) Status() string                        { return StatusDisabled }
