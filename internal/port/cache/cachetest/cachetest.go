// Package cachetest provides a compliance suite shared by cache adapters.
package cachetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javakishore-veleti/eventsgrasp/internal/port/cache"
)

// Run runs the standard compliance suite against c. When c implements
// cache.Flusher the flush behavior is checked too.
func Run(t *testing.T, c cache.Cache) {
	t.Helper()
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "customer:valid:1", []byte("1"), time.Minute))
		val, found, err := c.Get(ctx, "customer:valid:1")
		require.NoError(t, err)
		require.True(t, found, "expected found after Set")
		assert.Equal(t, "1", string(val))
	})

	t.Run("GetMiss", func(t *testing.T) {
		_, found, err := c.Get(ctx, "customer:valid:404")
		require.NoError(t, err)
		assert.False(t, found, "expected miss for nonexistent key")
	})

	t.Run("Delete", func(t *testing.T) {
		_ = c.Set(ctx, "customer:valid:2", []byte("0"), time.Minute)
		require.NoError(t, c.Delete(ctx, "customer:valid:2"))
		_, found, err := c.Get(ctx, "customer:valid:2")
		require.NoError(t, err)
		assert.False(t, found, "expected miss after Delete")
	})

	t.Run("DeleteNonexistent", func(t *testing.T) {
		assert.NoError(t, c.Delete(ctx, "customer:valid:never"))
	})

	t.Run("Overwrite", func(t *testing.T) {
		_ = c.Set(ctx, "customer:valid:3", []byte("1"), time.Minute)
		_ = c.Set(ctx, "customer:valid:3", []byte("0"), time.Minute)
		val, found, err := c.Get(ctx, "customer:valid:3")
		require.NoError(t, err)
		require.True(t, found, "expected found after overwrite")
		assert.Equal(t, "0", string(val))
	})

	f, ok := c.(cache.Flusher)
	if !ok {
		return
	}
	t.Run("Flush", func(t *testing.T) {
		_ = c.Set(ctx, "customer:valid:10", []byte("1"), time.Minute)
		_ = c.Set(ctx, "customer:valid:11", []byte("0"), time.Minute)
		require.NoError(t, f.Flush(ctx, "customer:valid:"))
		for _, key := range []string{"customer:valid:10", "customer:valid:11"} {
			_, found, err := c.Get(ctx, key)
			require.NoError(t, err)
			assert.False(t, found, "expected %s flushed", key)
		}
	})
}
