package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/redis"
	"github.com/javakishore-veleti/eventsgrasp/internal/port/cache/cachetest"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := redis.Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestCompliance(t *testing.T) {
	_, c := setup(t)
	cachetest.Run(t, c)
}

func TestSetUsesTTL(t *testing.T) {
	mr, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "customer:valid:1", []byte("1"), time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("customer:valid:1"))

	mr.FastForward(time.Hour + time.Second)
	_, found, err := c.Get(ctx, "customer:valid:1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFlushOnlyMatchingPrefix(t *testing.T) {
	mr, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "customer:valid:1", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "customer:valid:2", []byte("0"), time.Hour))
	require.NoError(t, mr.Set("other:key", "x"))

	require.NoError(t, c.Flush(ctx, "customer:valid:"))
	assert.False(t, mr.Exists("customer:valid:1"))
	assert.False(t, mr.Exists("customer:valid:2"))
	assert.True(t, mr.Exists("other:key"))
}

func TestConnectErrors(t *testing.T) {
	_, err := redis.Connect(context.Background(), "http://localhost:6379")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = redis.Connect(context.Background(), "redis://"+addr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestOperationsFailWhenServerGone(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redis.New(goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1}))
	mr.Close()

	_, _, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
}
