package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/marketsquare/secure-api/internal/core/ports"
)

const (
	catalogKey = "catalog:listings"
	catalogTTL = 30 * time.Second
)

// CatalogCache is a short-lived Redis cache for the public product
// listing. It is strictly best-effort: every failure degrades to a cache
// miss and is logged, never surfaced to the request.
type CatalogCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, log: log}
}

// Get returns the cached listing and whether the cache was warm.
func (c *CatalogCache) Get(ctx context.Context) ([]ports.ProductListing, bool) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}

	var items []ports.ProductListing
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache entry corrupt, dropping")
		c.Invalidate(ctx)
		return nil, false
	}
	return items, true
}

// Set stores the listing for catalogTTL.
func (c *CatalogCache) Set(ctx context.Context, items []ports.ProductListing) {
	raw, err := json.Marshal(items)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, catalogKey, raw, catalogTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache write failed")
	}
}

// Invalidate drops the cached listing. Called after any product write.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
