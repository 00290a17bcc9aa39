// Package cache provides a Redis cache-aside layer for job-search responses.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SearchCache stores serialized search results keyed by keyword.
type SearchCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New creates a SearchCache over an existing Redis client.
func New(client *redis.Client, prefix string, ttl time.Duration) *SearchCache {
	return &SearchCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get retrieves a cached value into dest. The boolean reports a cache hit;
// a missing key is not an error.
func (c *SearchCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal: %w", err)
	}
	return true, nil
}

// Set stores a value under the configured TTL.
func (c *SearchCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *SearchCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (c *SearchCache) Close() error {
	return c.client.Close()
}
