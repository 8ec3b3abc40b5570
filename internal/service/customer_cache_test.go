package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/fallback"
	rediscache "github.com/javakishore-veleti/eventsgrasp/internal/adapter/redis"
	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/ristretto"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/customer"
)

// newTieredCustomerCache returns a validity cache backed by miniredis with a
// ristretto local fallback.
func newTieredCustomerCache(t *testing.T, ttl time.Duration) (*CustomerCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	remote, err := rediscache.Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = remote.Close() })

	local, err := ristretto.New(100)
	require.NoError(t, err)
	t.Cleanup(local.Close)

	c := fallback.New(local, fallback.WithRemote("redis", remote))
	return NewCustomerCache(c, ttl, 100, nil), mr
}

func newLocalCustomerCache(t *testing.T) *CustomerCache {
	t.Helper()
	local, err := ristretto.New(100)
	require.NoError(t, err)
	t.Cleanup(local.Close)
	return NewCustomerCache(fallback.New(local), time.Minute, 100, nil)
}

func TestCustomerCacheStates(t *testing.T) {
	cc := newLocalCustomerCache(t)
	ctx := context.Background()

	assert.Equal(t, customer.Unknown, cc.IsValid(ctx, 1))

	cc.SetValid(ctx, 1, true)
	cc.SetValid(ctx, 2, false)
	assert.Equal(t, customer.Valid, cc.IsValid(ctx, 1))
	assert.Equal(t, customer.Invalid, cc.IsValid(ctx, 2))

	cc.Invalidate(ctx, 1)
	assert.Equal(t, customer.Unknown, cc.IsValid(ctx, 1))

	st := cc.Stats()
	assert.Equal(t, fallback.LocalBackend, st.Backend)
	assert.Equal(t, int64(60), st.TTLSeconds)
	assert.Equal(t, int64(100), st.LocalMaxEntries)
	assert.Equal(t, int64(2), st.Hits)
	assert.Equal(t, int64(2), st.Misses)
	assert.Equal(t, int64(1), st.Invalidations)
}

func TestCustomerCacheUsesRemote(t *testing.T) {
	cc, mr := newTieredCustomerCache(t, time.Hour)
	ctx := context.Background()

	cc.SetValid(ctx, 42, true)

	val, err := mr.Get(CustomerCachePrefix + "42")
	require.NoError(t, err)
	assert.Equal(t, "1", val)
	assert.Equal(t, time.Hour, mr.TTL(CustomerCachePrefix+"42"))
	assert.Equal(t, customer.Valid, cc.IsValid(ctx, 42))
	assert.Equal(t, "redis", cc.Stats().Backend)
}

func TestCustomerCacheEntriesExpire(t *testing.T) {
	cc, mr := newTieredCustomerCache(t, time.Minute)
	ctx := context.Background()

	cc.SetValid(ctx, 7, true)
	mr.FastForward(2 * time.Minute)

	assert.Equal(t, customer.Unknown, cc.IsValid(ctx, 7))
}

func TestCustomerCacheSurvivesRemoteOutage(t *testing.T) {
	cc, mr := newTieredCustomerCache(t, time.Hour)
	ctx := context.Background()

	mr.Close()

	cc.SetValid(ctx, 9, true)
	assert.Equal(t, customer.Valid, cc.IsValid(ctx, 9))

	cc.Invalidate(ctx, 9)
	assert.Equal(t, customer.Unknown, cc.IsValid(ctx, 9))

	st := cc.Stats()
	assert.Equal(t, "redis", st.Backend)
	assert.Equal(t, int64(4), st.Fallbacks)
}

func TestCustomerCacheClearAll(t *testing.T) {
	cc, mr := newTieredCustomerCache(t, time.Hour)
	ctx := context.Background()

	cc.SetValid(ctx, 1, true)
	cc.SetValid(ctx, 2, false)
	require.NoError(t, mr.Set("unrelated", "keep"))

	cc.ClearAll(ctx)

	assert.Equal(t, customer.Unknown, cc.IsValid(ctx, 1))
	assert.Equal(t, customer.Unknown, cc.IsValid(ctx, 2))
	assert.True(t, mr.Exists("unrelated"))
}

func TestCustomerCacheDefaultTTL(t *testing.T) {
	local, err := ristretto.New(0)
	require.NoError(t, err)
	t.Cleanup(local.Close)

	cc := NewCustomerCache(local, 0, ristretto.DefaultMaxEntries, nil)
	st := cc.Stats()
	assert.Equal(t, int64(3600), st.TTLSeconds)
	assert.Equal(t, "memory", st.Backend)
	assert.Zero(t, st.Fallbacks)
}
