package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mindpace/mindpace-backend/internal/platform/envutil"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

// Cache is a thin TTL cache over redis. A nil *Cache is a valid no-op cache,
// so callers never need to branch on whether redis is configured.
type Cache struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewCache connects to redis when REDIS_ADDR is set and returns (nil, nil)
// when it is not.
func NewCache(baseLog *logger.Logger) (*Cache, error) {
	addr := envutil.String("REDIS_ADDR", "")
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: envutil.String("REDIS_PASSWORD", ""),
		DB:       envutil.Int("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log := baseLog.With("client", "RedisCache")
	log.Info("redis cache connected", "addr", addr)
	return &Cache{rdb: rdb, log: log}, nil
}

// Get returns the cached value and whether it was present. Errors other than
// a miss are logged and reported as a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("cache get failed", "key", key, "error", err)
		return nil, false
	}
	return raw, true
}

// Set stores the value best-effort.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", key, "error", err)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
