// Package cache defines the port interface for caching.
package cache

import (
	"context"
	"time"
)

// Cache is the port interface for key-value caching.
// A ttl of zero stores the value without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Flusher is implemented by caches that can drop entries in bulk.
// Flush removes every key starting with prefix. Backends that cannot
// enumerate keys drop all of their entries.
type Flusher interface {
	Flush(ctx context.Context, prefix string) error
}
