// Package cache stores rendered chart artifacts and fetched data sources.
//
// A [Cache] is a plain byte store with per-entry TTLs. Three backends are
// provided: [NullCache] (caching disabled), [FileCache] for the CLI, and
// [RedisCache] for a shared server deployment. Keys come from a [Keyer],
// which hashes everything that affects the rendered bytes, so an entry never
// needs explicit invalidation: changed data or options produce a new key.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash(body), cache.ArtifactKeyOpts{Chart: "pie", Format: "svg"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//		return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by string. Implementations must be safe for
// concurrent use. A miss is reported as ok == false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data. A ttl of zero means the entry does not expire.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (removed int, err error)
}

// Default lifetimes. Artifacts are keyed by content so they only expire to
// bound disk use; remote sources expire so upstream edits show up.
const (
	TTLSource   = 10 * time.Minute
	TTLArtifact = 7 * 24 * time.Hour
)
