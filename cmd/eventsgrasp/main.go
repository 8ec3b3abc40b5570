package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	eghttp "github.com/javakishore-veleti/eventsgrasp/internal/adapter/http"
	egotel "github.com/javakishore-veleti/eventsgrasp/internal/adapter/otel"
	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/vectorstore"
	"github.com/javakishore-veleti/eventsgrasp/internal/config"
	"github.com/javakishore-veleti/eventsgrasp/internal/logger"
	"github.com/javakishore-veleti/eventsgrasp/internal/middleware"
	"github.com/javakishore-veleti/eventsgrasp/internal/service"
)

var version = "dev"

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	closeLog logger.Closer
}

func newRootCommand() *cobra.Command {
	a := &app{}
	var resolve func() config.CLIFlags

	root := &cobra.Command{
		Use:           "eventsgrasp",
		Short:         "Credential and vector-store configuration service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, path, err := config.LoadWithCLI(resolve())
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			a.cfg = cfg
			a.log, a.closeLog = logger.New(cfg.Logging)
			slog.SetDefault(a.log)
			a.log.Info("config loaded",
				"file", path,
				"port", cfg.Server.Port,
				"db_driver", cfg.Database.Driver,
				"log_level", cfg.Logging.Level,
			)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.closeLog != nil {
				a.closeLog.Close()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	resolve = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.serve(cmd.Context())
			},
		},
		newMigrateCommand(a),
		newCacheClearCommand(a),
	)
	return root
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Observability ---
	shutdownOTel, err := egotel.Setup(ctx, cfg.OTel, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			a.log.Warn("otel shutdown", "error", err)
		}
	}()
	metrics, err := egotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("otel metrics: %w", err)
	}

	// --- Infrastructure ---
	store, err := openStore(ctx, cfg, a.log)
	if err != nil {
		return err
	}
	defer store.Close()

	backing, closeCache, err := buildCache(ctx, cfg.Cache, a.log, metrics)
	if err != nil {
		return err
	}
	defer closeCache()

	// --- Services ---
	customerCache := service.NewCustomerCache(backing, cfg.Cache.TTL, cfg.Cache.LocalMaxEntries, a.log)
	customerCache.SetMetrics(metrics)
	authSvc := service.NewAuthService(store, customerCache, a.log)
	authSvc.SetMetrics(metrics)
	credentialSvc := service.NewCredentialService(store, a.log)
	credentialSvc.SetMetrics(metrics)
	vectorStoreSvc := service.NewVectorStoreService(vectorstore.NewRegistry(vectorstore.Options{
		Probe:   cfg.VectorStores.ProbeConnections,
		Timeout: cfg.VectorStores.ProbeTimeout,
	}), a.log)
	vectorStoreSvc.SetMetrics(metrics)

	// --- HTTP ---
	handlers := &eghttp.Handlers{
		Credentials:   credentialSvc,
		VectorStores:  vectorStoreSvc,
		CustomerCache: customerCache,
		Database:      store,
		Version:       version,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(egotel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(eghttp.Logger(a.log))
	r.Use(chimw.Recoverer)
	r.Use(eghttp.SecurityHeaders)
	r.Use(eghttp.CORS(cfg.Server.CORSOrigins))
	if cfg.Server.WriteTimeout > 0 {
		r.Use(chimw.Timeout(cfg.Server.WriteTimeout))
	}

	eghttp.MountRoutes(r, handlers, authSvc)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server", "addr", addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	a.log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
