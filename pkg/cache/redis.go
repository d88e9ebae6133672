package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hanouti-api/pkg/config"

	"github.com/go-redis/redis/v8"
)

// Client wraps the Redis connection used for listing caches. A nil
// *Client is valid and behaves as a cache that never hits, so callers
// don't have to guard every call when caching is disabled.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// New initializes and returns a new Redis cache client. Returns
// (nil, nil) when no Redis address is configured.
func New(cfg *config.Config) (*Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: cfg.Redis.ListTTL}, nil
}

// GetJSON loads key into dest. Returns false on miss or any Redis error;
// listing endpoints fall back to the database in that case.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON stores value under key with the configured TTL. Errors are
// ignored; a broken cache must never break a read path.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, c.ttl)
}

// Invalidate removes the given keys after an admin mutation.
func (c *Client) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}

// Close closes the Redis connection
func (c *Client) Close() {
	if c != nil && c.rdb != nil {
		c.rdb.Close()
	}
}
