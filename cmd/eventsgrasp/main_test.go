package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/fallback"
	"github.com/javakishore-veleti/eventsgrasp/internal/config"
)

func cacheConfig(remote string) config.Cache {
	return config.Cache{RemoteURL: remote, TTL: time.Hour, LocalMaxEntries: 10, NATSBucket: "test"}
}

func TestBuildCacheBackends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name   string
		remote string
		want   string
	}{
		{"local only", "", fallback.LocalBackend},
		{"redis", "redis://" + mr.Addr(), "redis"},
		{"unreachable redis", "redis://127.0.0.1:1", fallback.LocalBackend},
		{"unsupported scheme", "memcached://127.0.0.1:11211", fallback.LocalBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, closeFn, err := buildCache(context.Background(), cacheConfig(tt.remote), slog.Default(), nil)
			require.NoError(t, err)
			defer closeFn()
			assert.Equal(t, tt.want, c.Backend())
		})
	}
}

func TestMigrateCommand(t *testing.T) {
	t.Setenv("EVENTSGRASP_DB_DRIVER", "sqlite")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cli.db")
	base := []string{"-c", filepath.Join(dir, "none.yaml"), "--sqlite-path", dbPath}

	run := func(args ...string) string {
		t.Helper()
		root := newRootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(append(append([]string{}, base...), args...))
		require.NoError(t, root.ExecuteContext(context.Background()))
		return strings.TrimSpace(out.String())
	}

	run("migrate")
	assert.Equal(t, "2", run("migrate", "version"))
	run("migrate", "down", "--steps", "1")
	assert.Equal(t, "1", run("migrate", "version"))
}

func TestMigrateCommandRejectsUnknownAction(t *testing.T) {
	t.Setenv("EVENTSGRASP_DB_DRIVER", "sqlite")
	dir := t.TempDir()

	root := newRootCommand()
	root.SetArgs([]string{"-c", filepath.Join(dir, "none.yaml"), "--sqlite-path", filepath.Join(dir, "x.db"), "migrate", "sideways"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
}

func TestCacheClearCommand(t *testing.T) {
	t.Setenv("EVENTSGRASP_DB_DRIVER", "sqlite")
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("customer:valid:1", "1"))
	require.NoError(t, mr.Set("customer:valid:2", "1"))
	require.NoError(t, mr.Set("other:key", "x"))
	dir := t.TempDir()

	root := newRootCommand()
	root.SetArgs([]string{"-c", filepath.Join(dir, "none.yaml"), "--sqlite-path", filepath.Join(dir, "x.db"),
		"--cache-url", "redis://" + mr.Addr(), "cache-clear", "--customer", "1"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.False(t, mr.Exists("customer:valid:1"))
	assert.True(t, mr.Exists("customer:valid:2"))

	root = newRootCommand()
	root.SetArgs([]string{"-c", filepath.Join(dir, "none.yaml"), "--sqlite-path", filepath.Join(dir, "x.db"),
		"--cache-url", "redis://" + mr.Addr(), "cache-clear"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.False(t, mr.Exists("customer:valid:2"))
	assert.True(t, mr.Exists("other:key"))
}
