package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "sentinews:cache:"

// ResponseCache keeps rendered API responses in Redis for the configured
// TTL, mirroring what the dashboard used to get from an in-process cache.
// A nil *ResponseCache is a no-op, so the API runs fine without Redis.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl}
}

// Key builds a cache key from the route and its raw query string.
func Key(parts ...string) string {
	return keyPrefix + strings.Join(parts, ":")
}

func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *ResponseCache) Set(ctx context.Context, key string, value []byte) {
	if c == nil {
		return
	}

	// Cache writes are best effort; a Redis hiccup must not fail a read
	// request that already has its data.
	c.client.Set(ctx, key, value, c.ttl)
}
