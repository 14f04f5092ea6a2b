// Package cache is an in-process read cache for public, by-id lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"

	"portfolio/backend/internal/logutil"
)

// Cache stores JSON encoded values for a fixed TTL. A nil *Cache is a valid,
// always-missing cache, so callers need no special case when caching is disabled.
type Cache struct {
	bc *bigcache.BigCache
}

// New returns a cache whose entries expire after ttl. ttl <= 0 disables caching
// and returns nil.
func New(ctx context.Context, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		return nil, nil
	}
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 64
	cfg.MaxEntriesInWindow = 1000
	cfg.CleanWindow = min(ttl, time.Minute)
	cfg.Verbose = false
	bc, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Cache{bc: bc}, nil
}

// Get decodes the entry for key into dst and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}
	raw, err := c.bc.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			logger := logutil.GetOrDefault(ctx)
			logger.Debug().Err(err).Str("cache.key", key).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		_ = c.bc.Delete(key)
		return false
	}
	return true
}

// Set stores v under key. Failures only cost a future miss.
func (c *Cache) Set(key string, v any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.bc.Set(key, raw)
}

// Delete drops key. Missing keys are ignored.
func (c *Cache) Delete(key string) {
	if c == nil {
		return
	}
	_ = c.bc.Delete(key)
}

// Close releases the cache's background cleaner.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.bc.Close()
}
