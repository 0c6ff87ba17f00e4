// Package cache provides byte-oriented key/value backends with TTLs.
//
// Backends:
//   - [FileCache]: one JSON file per key under a directory (CLI, single host)
//   - [RedisCache]: Redis, for servers sharing state between instances
//   - [MemoryCache]: process-local map, for tests and throwaway servers
//   - [NullCache]: stores nothing
//
// pkg/store builds its key/value page store on top of this interface, so
// every backend here can persist pages.
//
// Backends report hits, misses and writes to [observability.Cache].
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with optional per-entry expiry.
type Cache interface {
	// Get returns the value stored under key. A missing or expired key is a
	// miss (false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
