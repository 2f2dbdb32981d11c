package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache keys, one per entity type. Invalidation is explicit and keyed by
// entity: a mutation drops exactly the lists it can have changed instead of
// re-fetching everything.
const (
	CacheProducts  = "cache:products"
	CacheCustomers = "cache:customers"
	CacheSuppliers = "cache:suppliers"

	cacheTTL = 5 * time.Minute
)

// ListCache is a thin JSON list cache over Redis. All operations are
// best-effort: a Redis failure degrades to a DB read, never to an error.
type ListCache struct {
	rdb *redis.Client
}

func NewListCache(rdb *redis.Client) *ListCache { return &ListCache{rdb: rdb} }

// Get unmarshals the cached list into dest. Returns false on miss or error.
func (c *ListCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("cache: stale payload dropped")
		c.Invalidate(ctx, key)
		return false
	}
	return true
}

// Set stores the list with a TTL.
func (c *ListCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("cache: set failed")
	}
}

// Invalidate drops the given entity keys.
func (c *ListCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Strs("keys", keys).Err(err).Msg("cache: invalidate failed")
	}
}
