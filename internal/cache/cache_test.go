package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/inventory-agent/internal/pricing"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	opts, err := redis.ParseURL("redis://" + mr.Addr())
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb, time.Minute, nil), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	q, err := pricing.PriceBulk(10, 50, pricing.Kilogram)
	require.NoError(t, err)

	var got pricing.Quote
	assert.False(t, c.Get(ctx, "quote:1", &got))

	c.Set(ctx, "quote:1", q)
	assert.True(t, mr.Exists("quote:1"))
	assert.Equal(t, time.Minute, mr.TTL("quote:1"))

	require.True(t, c.Get(ctx, "quote:1", &got))
	assert.Equal(t, q, got)
	assert.Equal(t, StatusMiss, c.Status())
}

func TestRedisCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", map[string]int{"a": 1})
	mr.FastForward(2 * time.Minute)

	var got map[string]int
	assert.False(t, c.Get(ctx, "k", &got))
}

func TestRedisCacheErrorsAreMisses(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("garbage", "\xc1"))
	var got pricing.Quote
	assert.False(t, c.Get(ctx, "garbage", &got))

	mr.Close()
	assert.False(t, c.Get(ctx, "quote:1", &got))
	c.Set(ctx, "quote:1", got)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	c.Set(context.Background(), "k", 1)
	var got int
	assert.False(t, c.Get(context.Background(), "k", &got))
	assert.Equal(t, StatusDisabled, c.Status())
}
