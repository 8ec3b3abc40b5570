package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/postgres"
	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/sqlite"
	"github.com/javakishore-veleti/eventsgrasp/internal/config"
	"github.com/javakishore-veleti/eventsgrasp/internal/service"
)

func newMigrateCommand(a *app) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "migrate [up|down|version]",
		Short: "Apply, roll back or report database migrations",
		Example: `  eventsgrasp migrate
  eventsgrasp migrate down --steps 1
  eventsgrasp --dsn postgres://localhost/eventsgrasp migrate version`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = args[0]
			}
			ctx := cmd.Context()
			db := a.cfg.Database

			switch action {
			case "up":
				// Opening the store applies pending migrations.
				store, err := openStore(ctx, a.cfg, a.log)
				if err != nil {
					return err
				}
				store.Close()
				a.log.Info("migrations applied", "driver", db.Driver)

			case "down":
				if steps < 1 {
					return errors.New("--steps must be >= 1")
				}
				var err error
				if db.Driver == config.DriverPostgres {
					err = postgres.RollbackMigrations(ctx, a.cfg.Postgres.DSN, steps)
				} else {
					err = sqlite.RollbackMigrations(ctx, db.SQLitePath, steps)
				}
				if err != nil {
					return err
				}
				a.log.Info("migrations rolled back", "driver", db.Driver, "steps", steps)

			case "version":
				var (
					v   int64
					err error
				)
				if db.Driver == config.DriverPostgres {
					v, err = postgres.MigrationVersion(ctx, a.cfg.Postgres.DSN)
				} else {
					v, err = sqlite.MigrationVersion(ctx, db.SQLitePath)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", v)

			default:
				return fmt.Errorf("unknown migrate action %q", action)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func newCacheClearCommand(a *app) *cobra.Command {
	var customerID int64

	cmd := &cobra.Command{
		Use:   "cache-clear",
		Short: "Drop customer validity entries from the configured cache",
		Long: `Clears every customer validity entry, or only one customer's with --customer.
The remote cache is used when reachable; the local cache of this process is
always cleared.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			backing, closeCache, err := buildCache(ctx, a.cfg.Cache, a.log, nil)
			if err != nil {
				return err
			}
			defer closeCache()

			cc := service.NewCustomerCache(backing, a.cfg.Cache.TTL, a.cfg.Cache.LocalMaxEntries, a.log)
			if customerID > 0 {
				cc.Invalidate(ctx, customerID)
			} else {
				cc.ClearAll(ctx)
			}

			st := cc.Stats()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "BACKEND\tSCOPE\tFALLBACKS\n")
			scope := "all"
			if customerID > 0 {
				scope = fmt.Sprintf("customer %d", customerID)
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", st.Backend, scope, st.Fallbacks)
			return w.Flush()
		},
	}
	cmd.Flags().Int64Var(&customerID, "customer", 0, "invalidate a single customer id")
	return cmd
}
