package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	egotel "github.com/javakishore-veleti/eventsgrasp/internal/adapter/otel"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/customer"
	"github.com/javakishore-veleti/eventsgrasp/internal/port/cache"
)

const (
	// CustomerCachePrefix starts every validity key: customer:valid:{id}.
	CustomerCachePrefix = "customer:valid:"

	// DefaultCustomerCacheTTL is how long a validity entry lives.
	DefaultCustomerCacheTTL = time.Hour
)

// CustomerCacheStats describes the validity cache.
type CustomerCacheStats struct {
	Backend         string `json:"backend"`
	TTLSeconds      int64  `json:"ttl_seconds"`
	LocalMaxEntries int64  `json:"memory_cache_maxsize"`
	Hits            int64  `json:"hits"`
	Misses          int64  `json:"misses"`
	Fallbacks       int64  `json:"fallbacks"`
	Invalidations   int64  `json:"invalidations"`
}

// fallbackCounter is implemented by caches that report remote failovers.
type fallbackCounter interface {
	Backend() string
	Fallbacks() int64
}

// CustomerCache remembers whether a customer id refers to an active account.
// It never returns errors: a cache fault is logged and reads as Unknown.
type CustomerCache struct {
	cache      cache.Cache
	ttl        time.Duration
	maxEntries int64
	logger     *slog.Logger
	metrics    *egotel.Metrics

	hits          atomic.Int64
	misses        atomic.Int64
	invalidations atomic.Int64
}

// NewCustomerCache wraps c. A non-positive ttl uses DefaultCustomerCacheTTL.
// maxEntries is the local capacity, reported in Stats.
func NewCustomerCache(c cache.Cache, ttl time.Duration, maxEntries int64, logger *slog.Logger) *CustomerCache {
	if ttl <= 0 {
		ttl = DefaultCustomerCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerCache{cache: c, ttl: ttl, maxEntries: maxEntries, logger: logger}
}

// SetMetrics enables metric recording.
func (c *CustomerCache) SetMetrics(m *egotel.Metrics) { c.metrics = m }

func customerKey(id int64) string {
	return CustomerCachePrefix + strconv.FormatInt(id, 10)
}

// IsValid returns the cached validity of id, or Unknown on a miss.
func (c *CustomerCache) IsValid(ctx context.Context, id int64) customer.Validity {
	val, found, err := c.cache.Get(ctx, customerKey(id))
	if err != nil {
		c.logger.WarnContext(ctx, "customer cache get failed", "customer_id", id, "error", err)
		found = false
	}
	if !found {
		c.misses.Add(1)
		if c.metrics != nil {
			c.metrics.CacheMisses.Add(ctx, 1)
		}
		return customer.Unknown
	}

	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHits.Add(ctx, 1)
	}
	if string(val) == "1" {
		return customer.Valid
	}
	return customer.Invalid
}

// SetValid caches the validity of id for the configured TTL.
func (c *CustomerCache) SetValid(ctx context.Context, id int64, valid bool) {
	val := []byte("0")
	if valid {
		val = []byte("1")
	}
	if err := c.cache.Set(ctx, customerKey(id), val, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "customer cache set failed", "customer_id", id, "error", err)
	}
}

// Invalidate removes the entry for id.
func (c *CustomerCache) Invalidate(ctx context.Context, id int64) {
	c.invalidations.Add(1)
	if err := c.cache.Delete(ctx, customerKey(id)); err != nil {
		c.logger.WarnContext(ctx, "customer cache invalidate failed", "customer_id", id, "error", err)
	}
}

// ClearAll removes every validity entry.
func (c *CustomerCache) ClearAll(ctx context.Context) {
	f, ok := c.cache.(cache.Flusher)
	if !ok {
		c.logger.WarnContext(ctx, "customer cache cannot be flushed")
		return
	}
	if err := f.Flush(ctx, CustomerCachePrefix); err != nil {
		c.logger.WarnContext(ctx, "customer cache clear failed", "error", err)
		return
	}
	c.logger.InfoContext(ctx, "customer cache cleared")
}

// Stats reports the backend, configuration and counters.
func (c *CustomerCache) Stats() CustomerCacheStats {
	st := CustomerCacheStats{
		Backend:         "memory",
		TTLSeconds:      int64(c.ttl / time.Second),
		LocalMaxEntries: c.maxEntries,
		Hits:            c.hits.Load(),
		Misses:          c.misses.Load(),
		Invalidations:   c.invalidations.Load(),
	}
	if fc, ok := c.cache.(fallbackCounter); ok {
		st.Backend = fc.Backend()
		st.Fallbacks = fc.Fallbacks()
	}
	return st
}
