// internal/common/cache/cache.go

// Package cache stores parse results keyed by a digest of the raw oracle
// response. The cache is strictly best-effort: every method is nil-safe and
// a Redis outage degrades to a miss, never an error at the call site.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"inventory-nlu/internal/common/config"
	apperrors "inventory-nlu/internal/common/errors"
	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/common/metrics"
	"inventory-nlu/internal/models"

	"github.com/redis/go-redis/v9"
)

// ResultCache wraps the Redis client
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// New creates a parse-result cache. A disabled config returns nil, which
// every method tolerates.
func New(cfg config.CacheConfig, log logger.Logger) *ResultCache {
	if !cfg.Enabled {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Address,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	return &ResultCache{
		client: rdb,
		ttl:    time.Duration(cfg.TTL) * time.Second,
		logger: log.With(map[string]interface{}{"component": "result_cache"}),
	}
}

// NewWithClient builds a cache around an existing client. Used by tests.
func NewWithClient(client *redis.Client, ttl time.Duration, log logger.Logger) *ResultCache {
	return &ResultCache{client: client, ttl: ttl, logger: log}
}

// Key derives the cache key for a raw oracle response.
func Key(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return "nlu:parse:" + hex.EncodeToString(sum[:])
}

// Get returns the cached parse result for the raw response, or false on a
// miss or any cache failure.
func (c *ResultCache) Get(ctx context.Context, raw string) (models.ParseResult, bool) {
	if c == nil || c.client == nil {
		return models.ParseResult{}, false
	}
	data, err := c.client.Get(ctx, Key(raw)).Bytes()
	if err == redis.Nil {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return models.ParseResult{}, false
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.logger.WithError(err).Warn("cache get failed", nil)
		return models.ParseResult{}, false
	}

	var result models.ParseResult
	if err := json.Unmarshal(data, &result); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.logger.WithError(err).Warn("cache entry corrupt, treating as miss", nil)
		return models.ParseResult{}, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return result, true
}

// Set stores a parse result. Failures are logged and swallowed.
func (c *ResultCache) Set(ctx context.Context, raw string, result models.ParseResult) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.WithError(err).Warn("cache marshal failed", nil)
		return
	}
	if err := c.client.Set(ctx, Key(raw), data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("cache set failed", nil)
	}
}

// Ping tests the Redis connection
func (c *ResultCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	return nil
}

// Close closes the Redis connection
func (c *ResultCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
