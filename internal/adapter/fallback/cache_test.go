package fallback_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/fallback"
	"github.com/javakishore-veleti/eventsgrasp/internal/port/cache/cachetest"
)

var errDown = errors.New("connection refused")

// memCache is a simple in-memory cache for testing.
type memCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	down  bool
	calls int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.down {
		return nil, false, errDown
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.down {
		return errDown
	}
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.down {
		return errDown
	}
	delete(m.data, key)
	return nil
}

func (m *memCache) Flush(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.down {
		return errDown
	}
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *memCache) setDown(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.down = down
}

func (m *memCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func (m *memCache) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestFallback_Compliance(t *testing.T) {
	t.Run("local only", func(t *testing.T) {
		cachetest.Run(t, fallback.New(newMemCache()))
	})
	t.Run("remote up", func(t *testing.T) {
		cachetest.Run(t, fallback.New(newMemCache(), fallback.WithRemote("redis", newMemCache())))
	})
	t.Run("remote down", func(t *testing.T) {
		remote := newMemCache()
		remote.down = true
		cachetest.Run(t, fallback.New(newMemCache(), fallback.WithRemote("redis", remote)))
	})
}

func TestFallback_PrefersRemote(t *testing.T) {
	local, remote := newMemCache(), newMemCache()
	c := fallback.New(local, fallback.WithRemote("redis", remote))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "customer:valid:1", []byte("1"), time.Hour))
	assert.True(t, remote.has("customer:valid:1"), "expected value in remote")
	assert.False(t, local.has("customer:valid:1"), "expected local untouched while remote is healthy")
	assert.Equal(t, "redis", c.Backend())
}

func TestFallback_RemoteErrorUsesLocal(t *testing.T) {
	local, remote := newMemCache(), newMemCache()
	remote.down = true

	var hooked []string
	c := fallback.New(local,
		fallback.WithRemote("redis", remote),
		fallback.WithFallbackHook(func(op string) { hooked = append(hooked, op) }),
	)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "customer:valid:2", []byte("0"), time.Hour))
	val, found, err := c.Get(ctx, "customer:valid:2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "0", string(val))
	assert.Equal(t, int64(2), c.Fallbacks())
	assert.Equal(t, []string{"set", "get"}, hooked)
}

func TestFallback_EveryCallTriesRemote(t *testing.T) {
	local, remote := newMemCache(), newMemCache()
	remote.down = true
	c := fallback.New(local, fallback.WithRemote("redis", remote))
	ctx := context.Background()

	for range 10 {
		require.NoError(t, c.Set(ctx, "customer:valid:8", []byte("1"), time.Minute))
	}
	assert.Equal(t, 10, remote.callCount())
	assert.Equal(t, int64(10), c.Fallbacks())
}

func TestFallback_DeleteHitsBoth(t *testing.T) {
	local, remote := newMemCache(), newMemCache()
	c := fallback.New(local, fallback.WithRemote("redis", remote))
	ctx := context.Background()

	local.data["customer:valid:3"] = []byte("1")
	remote.data["customer:valid:3"] = []byte("1")

	require.NoError(t, c.Delete(ctx, "customer:valid:3"))
	assert.False(t, local.has("customer:valid:3"))
	assert.False(t, remote.has("customer:valid:3"))
}

func TestFallback_DeleteSwallowsRemoteError(t *testing.T) {
	local, remote := newMemCache(), newMemCache()
	remote.down = true
	c := fallback.New(local, fallback.WithRemote("redis", remote))

	local.data["customer:valid:4"] = []byte("1")
	require.NoError(t, c.Delete(context.Background(), "customer:valid:4"))
	assert.False(t, local.has("customer:valid:4"), "expected local delete despite remote failure")
}

func TestFallback_DeleteReachesRecoveredRemote(t *testing.T) {
	local, remote := newMemCache(), newMemCache()
	c := fallback.New(local, fallback.WithRemote("redis", remote))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "customer:valid:7", []byte("1"), time.Hour))
	require.True(t, remote.has("customer:valid:7"))

	remote.setDown(true)
	for range 5 {
		_, _, err := c.Get(ctx, "customer:valid:7")
		require.NoError(t, err)
	}
	remote.setDown(false)

	require.NoError(t, c.Delete(ctx, "customer:valid:7"))
	assert.False(t, remote.has("customer:valid:7"), "stale remote entry survived invalidation")

	_, found, err := c.Get(ctx, "customer:valid:7")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFallback_FlushReachesRecoveredRemote(t *testing.T) {
	local, remote := newMemCache(), newMemCache()
	c := fallback.New(local, fallback.WithRemote("nats", remote))
	ctx := context.Background()

	remote.data["customer:valid:11"] = []byte("1")
	remote.setDown(true)
	for range 5 {
		require.NoError(t, c.Set(ctx, "customer:valid:12", []byte("0"), time.Hour))
	}
	remote.setDown(false)

	require.NoError(t, c.Flush(ctx, "customer:valid:"))
	assert.False(t, remote.has("customer:valid:11"))
	assert.False(t, local.has("customer:valid:12"))
}

func TestFallback_FlushBoth(t *testing.T) {
	local, remote := newMemCache(), newMemCache()
	c := fallback.New(local, fallback.WithRemote("nats", remote))

	local.data["customer:valid:5"] = []byte("1")
	remote.data["customer:valid:6"] = []byte("0")
	remote.data["other"] = []byte("x")

	require.NoError(t, c.Flush(context.Background(), "customer:valid:"))
	assert.False(t, local.has("customer:valid:5"))
	assert.False(t, remote.has("customer:valid:6"))
	assert.True(t, remote.has("other"), "expected unrelated key kept")
}

func TestFallback_LocalOnlyBackend(t *testing.T) {
	c := fallback.New(newMemCache())
	assert.Equal(t, fallback.LocalBackend, c.Backend())
	assert.Zero(t, c.Fallbacks())
}

func TestFallback_ConcurrentAccess(t *testing.T) {
	remote := newMemCache()
	remote.down = true
	c := fallback.New(newMemCache(), fallback.WithRemote("redis", remote))
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_ = c.Set(ctx, "customer:valid:9", []byte("1"), time.Minute)
				_, _, _ = c.Get(ctx, "customer:valid:9")
				_ = c.Delete(ctx, "customer:valid:9")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(20*50*3), c.Fallbacks())
}
