package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores summaries in Redis, for dashboards run behind several
// processes sharing one dataset.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{client: client, ttl: ttl, prefix: "assetdash:summary:"}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Result, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis get failed", "err", err)
		}
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		slog.Warn("discarding undecodable cached summary", "err", err)
		return nil, false
	}
	return &res, true
}

func (c *RedisCache) Set(ctx context.Context, key string, res *Result) {
	raw, err := json.Marshal(res)
	if err != nil {
		slog.Warn("failed to marshal summary", "err", err)
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		slog.Warn("redis set failed", "err", err)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
