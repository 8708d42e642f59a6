// Package redis is a DecompositionCache backed by Redis string keys holding
// JSON-encoded decompositions.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"

	"recipekit/internal/config"
	"recipekit/internal/domain"
	"recipekit/internal/logger"
	"recipekit/internal/port"
)

// KeyPrefix namespaces every cache key.
const KeyPrefix = "recipekit:decomposition:"

// Cache stores decompositions with a fixed TTL.
type Cache struct {
	rdb goredis.UniversalClient
	ttl time.Duration
	log *logger.Logger
}

var _ port.DecompositionCache = (*Cache)(nil)

// New connects to Redis and verifies the connection with PING.
func New(cfg *config.CacheConfig, log *logger.Logger) (*Cache, error) {
	if cfg.RedisAddr == "" {
		return nil, errors.New("redis address is required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "redis ping")
	}
	return NewWithClient(rdb, cfg.TTL, log), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb goredis.UniversalClient, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, log: logger.OrNop(log).With("component", "cache.redis")}
}

func (c *Cache) GetMany(ctx context.Context, keys []string) (map[string]domain.RawDecomposition, error) {
	out := make(map[string]domain.RawDecomposition, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = KeyPrefix + k
	}
	vals, err := c.rdb.MGet(ctx, full...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "redis mget")
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var d domain.RawDecomposition
		if err := json.Unmarshal([]byte(s), &d); err != nil {
			c.log.Warn("dropping undecodable cache entry", "key", keys[i], "error", err)
			continue
		}
		out[keys[i]] = d
	}
	return out, nil
}

func (c *Cache) SetMany(ctx context.Context, entries map[string]domain.RawDecomposition) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := c.rdb.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for k, d := range entries {
			raw, err := json.Marshal(d)
			if err != nil {
				return errors.Wrapf(err, "encoding %s", k)
			}
			p.Set(ctx, KeyPrefix+k, raw, c.ttl)
		}
		return nil
	})
	return errors.Wrap(err, "redis pipeline set")
}

// Close releases the client.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
