package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSearchPrefix = "search:"

// SearchCache stores serialized search results for a short TTL.
type SearchCache struct {
	client redis.UniversalClient
	prefix string
}

// NewSearchCache creates a cache using the "search:" key prefix.
func NewSearchCache(client redis.UniversalClient) *SearchCache {
	return &SearchCache{client: client, prefix: defaultSearchPrefix}
}

// Get returns the cached payload and whether it was found.
func (c *SearchCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get search: %w", err)
	}
	return val, true, nil
}

// Set stores payload under key for ttl.
func (c *SearchCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, c.prefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set search: %w", err)
	}
	return nil
}
