// Package cache provides a small byte cache used to avoid re-running
// expensive external lookups on every invocation.
//
// monlayout uses it to remember the model name decoded from a monitor's EDID:
// edid-decode is spawned once per unseen panel, later runs hit the cache.
//
// Two implementations exist:
//   - [FileCache] stores entries as JSON files under the XDG cache directory
//   - [NullCache] never stores anything (used with --no-cache)
//
// Keys are built with [NameKey]; values are opaque bytes with an optional TTL.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired or corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// NameTTL bounds how long a decoded monitor name is trusted.
const NameTTL = 30 * 24 * time.Hour
