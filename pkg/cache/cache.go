// Package cache stores rendered diagram artifacts between runs.
//
// Rendering through Graphviz is the only expensive step of a run, and its
// output depends on nothing but the DOT source and the output format. The
// pipeline therefore keys artifacts by [ArtifactKey] and skips the renderer
// when an entry is present.
//
// # Backends
//
//   - [FileCache]: files under the user cache directory, selected with --cache
//   - [RedisCache]: a shared Redis instance, selected with --cache-url
//   - [NullCache]: no caching (CLI default and tests)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiration.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKey returns the cache key of a rendered artifact.
func ArtifactKey(dot, format string) string {
	return hashKey("artifact", dot, format)
}
