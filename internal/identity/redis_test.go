package identity

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) *RedisCache {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return NewRedisCache(client)
}

func TestRedisCache(t *testing.T) {
	cache := newTestRedisCache(t)
	ctx := context.Background()
	key := "identity:test:" + uuid.NewString()

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, key, &Identity{ID: "user-1", Email: "user@example.com"}, time.Minute))
	id, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, &Identity{ID: "user-1", Email: "user@example.com"}, id)

	ttl, err := cache.client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
