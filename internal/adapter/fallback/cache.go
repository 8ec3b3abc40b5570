// Package fallback implements a cache that prefers a remote backend and
// falls back to a local one.
package fallback

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/javakishore-veleti/eventsgrasp/internal/port/cache"
)

// LocalBackend is the backend name reported when no remote is configured.
const LocalBackend = "memory"

// Cache reads and writes the remote backend first. Any remote error sends
// that single operation to the local backend. Delete and Flush always run
// locally as well, so entries written during an outage cannot resurface.
// Every operation tries the remote again; there is no retry and no backoff.
// Local operations are serialized by one mutex.
type Cache struct {
	remote     cache.Cache
	remoteName string

	mu    sync.Mutex
	local cache.Cache

	logger     *slog.Logger
	fallbacks  atomic.Int64
	onFallback func(op string)
}

// Option configures a Cache.
type Option func(*Cache)

// WithRemote sets the preferred backend and the name reported by Backend.
func WithRemote(name string, remote cache.Cache) Option {
	return func(c *Cache) {
		c.remote = remote
		c.remoteName = name
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// WithFallbackHook registers fn to be called each time an operation falls back.
func WithFallbackHook(fn func(op string)) Option {
	return func(c *Cache) { c.onFallback = fn }
}

// New creates a cache over local. Without WithRemote it is local only.
func New(local cache.Cache, opts ...Option) *Cache {
	c := &Cache{local: local, logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Backend names the preferred backend.
func (c *Cache) Backend() string {
	if c.remote == nil {
		return LocalBackend
	}
	return c.remoteName
}

// Fallbacks returns how many remote operations failed over to local.
func (c *Cache) Fallbacks() int64 {
	return c.fallbacks.Load()
}

func (c *Cache) Get(ctx context.Context, key string) (data []byte, ok bool, err error) {
	if c.remote != nil {
		val, found, err := c.remote.Get(ctx, key)
		if err == nil {
			return val, found, nil
		}
		c.fellBack("get", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.local.Get(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.remote != nil {
		err := c.remote.Set(ctx, key, value, ttl)
		if err == nil {
			return nil
		}
		c.fellBack("set", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.local.Set(ctx, key, value, ttl)
}

// Delete removes key from both backends. A remote failure is logged only.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c.remote != nil {
		if err := c.remote.Delete(ctx, key); err != nil {
			c.fellBack("delete", key, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.local.Delete(ctx, key)
}

// Flush removes prefixed keys from both backends when they support it.
func (c *Cache) Flush(ctx context.Context, prefix string) error {
	if f, ok := c.remote.(cache.Flusher); ok {
		if err := f.Flush(ctx, prefix); err != nil {
			c.fellBack("flush", prefix, err)
		}
	}

	f, ok := c.local.(cache.Flusher)
	if !ok {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return f.Flush(ctx, prefix)
}

func (c *Cache) fellBack(op, key string, err error) {
	c.fallbacks.Add(1)
	c.logger.Warn("remote cache failed, using local cache",
		"op", op, "key", key, "backend", c.remoteName, "error", err)
	if c.onFallback != nil {
		c.onFallback(op)
	}
}
