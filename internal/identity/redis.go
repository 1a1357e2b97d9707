package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Cache shared by every instance of the service.
type RedisCache struct {
	client *redis.Client
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

type cachedIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Identity, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	var cached cachedIdentity
	err = json.Unmarshal(data, &cached)
	if err != nil || cached.ID == "" {
		// Treat garbage as absent; the next Set overwrites it.
		return nil, ErrCacheMiss
	}
	return &Identity{ID: cached.ID, Email: cached.Email}, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, id *Identity, ttl time.Duration) error {
	data, err := json.Marshal(cachedIdentity{ID: id.ID, Email: id.Email})
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	err = c.client.Set(ctx, key, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	return nil
}
