// Package cache stores JSON-encoded values in redis. When redis is not
// configured or unreachable a no-op cache is used and every read misses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sangkips/otica-api/internal/config"
	"go.uber.org/zap"
)

const keyPrefix = "otica:"

// Cache is a best-effort key/value store.
type Cache interface {
	// Get decodes the value stored under key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// New connects to redis. An empty address or a failed ping yields a no-op cache.
func New(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) Cache {
	if cfg.Addr == "" {
		log.Info("REDIS_ADDR not set, report cache disabled")
		return Noop{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, report cache disabled", zap.String("addr", cfg.Addr), zap.Error(err))
		_ = rdb.Close()
		return Noop{}
	}

	log.Info("connected to redis", zap.String("addr", cfg.Addr))
	return NewRedis(rdb)
}

// Redis is the go-redis backed Cache.
type Redis struct {
	rdb *redis.Client
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (c *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+key, data, ttl).Err()
}

func (c *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	var keys []string
	iter := c.rdb.Scan(ctx, 0, keyPrefix+prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) DeletePrefix(context.Context, string) error            { return nil }
func (Noop) Close() error                                          { return nil }
