package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

var ErrCacheMiss = errors.New("identity cache miss")

// Cache keeps resolved identities for a short time. Get returns
// ErrCacheMiss for unknown keys.
type Cache interface {
	Get(ctx context.Context, key string) (*Identity, error)
	Set(ctx context.Context, key string, id *Identity, ttl time.Duration) error
}

// CachingIntrospector answers repeated introspections of the same token
// from the cache. Rejected tokens are never cached, and cache failures
// fall through to the wrapped introspector.
type CachingIntrospector struct {
	logger zerolog.Logger
	next   Introspector
	cache  Cache
	ttl    time.Duration
}

var _ Introspector = (*CachingIntrospector)(nil)

func NewCachingIntrospector(
	logger zerolog.Logger,
	next Introspector,
	cache Cache,
	ttl time.Duration,
) *CachingIntrospector {
	return &CachingIntrospector{
		logger: logger,
		next:   next,
		cache:  cache,
		ttl:    ttl,
	}
}

func (c *CachingIntrospector) Introspect(ctx context.Context, token string) (*Identity, error) {
	key := tokenCacheKey(token)

	id, err := c.cache.Get(ctx, key)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn().
			Err(err).
			Msg("failed to read identity cache")
	}

	id, err = c.next.Introspect(ctx, token)
	if err != nil {
		return nil, err
	}

	err = c.cache.Set(ctx, key, id, c.ttl)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("user_id", id.ID).
			Msg("failed to write identity cache")
	}
	return id, nil
}

// tokenCacheKey never stores the raw token.
func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "identity:token:" + hex.EncodeToString(sum[:])
}
