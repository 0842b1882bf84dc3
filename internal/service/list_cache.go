package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/imtti/imtti-api/internal/observability"
)

const (
	listCachePrefix = "imtti:list:v1:"
	generationKey   = listCachePrefix + "generation"
)

// ListCache keeps serialized list responses in Redis. Entries are keyed by a generation counter
// that every write bumps, so a list read that raced a write can only store rows under a
// generation nobody reads anymore. A nil cache or nil client disables caching.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewListCache constructs the cache.
func NewListCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *ListCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ListCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "list_cache").Logger(),
	}
}

func (c *ListCache) enabled() bool {
	return c != nil && c.client != nil
}

func entryKey(generation int64, entity string) string {
	return listCachePrefix + strconv.FormatInt(generation, 10) + ":" + entity
}

// get looks up entity at the current generation. The returned generation must be passed to set
// once the rows have been read from the store.
func (c *ListCache) get(ctx context.Context, entity string, dest interface{}) (int64, bool) {
	if !c.enabled() {
		return 0, false
	}

	generation, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Msg("failed to read list cache generation")
		return -1, false
	}

	cached, err := c.client.Get(ctx, entryKey(generation, entity)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("entity", entity).Msg("failed to read list cache")
		}
		observability.ListCache().WithLabelValues(entity, "miss").Inc()
		return generation, false
	}

	if err := json.Unmarshal(cached, dest); err != nil {
		c.logger.Warn().Err(err).Str("entity", entity).Msg("discarding unreadable list cache entry")
		observability.ListCache().WithLabelValues(entity, "miss").Inc()
		return generation, false
	}

	observability.ListCache().WithLabelValues(entity, "hit").Inc()
	return generation, true
}

func (c *ListCache) set(ctx context.Context, entity string, generation int64, value interface{}) {
	if !c.enabled() || generation < 0 {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, entryKey(generation, entity), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("entity", entity).Msg("failed to cache list")
	}
}

// invalidate retires every cached list. Entries of older generations expire with their ttl.
func (c *ListCache) invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}

	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate list cache")
	}
}
