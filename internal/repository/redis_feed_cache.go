package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jainnhimanshuu/savorini/pkg/redis"
)

// RedisFeedCache stores rendered feed pages keyed by the full query
// shape. Entries are short-lived; a miss is never an error to callers.
type RedisFeedCache struct {
	client *redis.Client
	prefix string
}

// NewRedisFeedCache creates a new RedisFeedCache
func NewRedisFeedCache(client *redis.Client) *RedisFeedCache {
	return &RedisFeedCache{
		client: client,
		prefix: "feed:",
	}
}

// Get returns the cached payload for key, with found=false on a miss
func (c *RedisFeedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read feed cache: %w", err)
	}
	return data, true, nil
}

// Set stores payload under key for ttl
func (c *RedisFeedCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write feed cache: %w", err)
	}
	return nil
}
