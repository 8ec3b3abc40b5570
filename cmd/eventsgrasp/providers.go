package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/fallback"
	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/natskv"
	egotel "github.com/javakishore-veleti/eventsgrasp/internal/adapter/otel"
	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/postgres"
	rediscache "github.com/javakishore-veleti/eventsgrasp/internal/adapter/redis"
	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/ristretto"
	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/sqlite"
	"github.com/javakishore-veleti/eventsgrasp/internal/config"
	"github.com/javakishore-veleti/eventsgrasp/internal/port/cache"
	"github.com/javakishore-veleti/eventsgrasp/internal/port/database"
)

// openStore connects the configured database and brings its schema up to date.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (database.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		log.Info("postgres connected", "max_conns", cfg.Postgres.MaxConns)
		return postgres.NewStore(pool), nil

	default:
		store, err := sqlite.Open(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		log.Info("sqlite opened", "path", cfg.Database.SQLitePath)
		return store, nil
	}
}

// buildCache assembles the customer validity cache: a bounded local cache,
// fronted by the remote backend named in cfg.RemoteURL when it answers.
// An unreachable remote is logged and the cache runs local only.
func buildCache(ctx context.Context, cfg config.Cache, log *slog.Logger, metrics *egotel.Metrics) (*fallback.Cache, func(), error) {
	local, err := ristretto.New(cfg.LocalMaxEntries)
	if err != nil {
		return nil, nil, fmt.Errorf("local cache: %w", err)
	}

	opts := []fallback.Option{fallback.WithLogger(log)}
	if metrics != nil {
		opts = append(opts, fallback.WithFallbackHook(func(op string) {
			metrics.CacheFallbacks.Add(context.Background(), 1, metric.WithAttributes(attribute.String("op", op)))
		}))
	}

	closers := []func(){local.Close}
	remote, name, closeRemote := connectRemote(ctx, cfg, log)
	if remote != nil {
		opts = append(opts, fallback.WithRemote(name, remote))
		closers = append(closers, closeRemote)
	}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return fallback.New(local, opts...), closeAll, nil
}

func connectRemote(ctx context.Context, cfg config.Cache, log *slog.Logger) (cache.Cache, string, func()) {
	if cfg.RemoteURL == "" {
		log.Info("customer cache using local memory only")
		return nil, "", nil
	}
	u, err := url.Parse(cfg.RemoteURL)
	if err != nil {
		log.Warn("invalid cache url, using local memory only", "error", err)
		return nil, "", nil
	}

	switch u.Scheme {
	case "redis", "rediss":
		c, err := rediscache.Connect(ctx, cfg.RemoteURL)
		if err != nil {
			log.Warn("redis unavailable, using local memory only", "host", u.Host, "error", err)
			return nil, "", nil
		}
		log.Info("customer cache using redis", "host", u.Host)
		return c, "redis", func() { _ = c.Close() }

	case "nats":
		c, err := natskv.Connect(ctx, cfg.RemoteURL, cfg.NATSBucket, cfg.TTL)
		if err != nil {
			log.Warn("nats kv unavailable, using local memory only", "host", u.Host, "error", err)
			return nil, "", nil
		}
		log.Info("customer cache using nats kv", "host", u.Host, "bucket", cfg.NATSBucket)
		return c, "nats", c.Close

	default:
		log.Warn("unsupported cache scheme, using local memory only", "scheme", u.Scheme)
		return nil, "", nil
	}
}
