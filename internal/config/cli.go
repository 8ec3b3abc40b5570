package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// CLIFlags holds command-line overrides. Nil fields were not given and leave
// the loaded value alone; CLI flags win over ENV.
type CLIFlags struct {
	ConfigPath *string
	Port       *string
	LogLevel   *string
	DBDriver   *string
	DSN        *string
	SQLitePath *string
	CacheURL   *string
}

type flagValues struct {
	config, port, logLevel, driver, dsn, sqlitePath, cacheURL string
}

// BindFlags registers the override flags on fs. Call Resolve after parsing to
// obtain the flags that were actually set.
func BindFlags(fs *pflag.FlagSet) func() CLIFlags {
	v := &flagValues{}
	fs.StringVarP(&v.config, "config", "c", DefaultConfigFile, "path to YAML config file")
	fs.StringVarP(&v.port, "port", "p", "", "HTTP listen port")
	fs.StringVar(&v.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&v.driver, "db-driver", "", "database driver (sqlite, postgres)")
	fs.StringVar(&v.dsn, "dsn", "", "PostgreSQL connection string")
	fs.StringVar(&v.sqlitePath, "sqlite-path", "", "SQLite database file")
	fs.StringVar(&v.cacheURL, "cache-url", "", "remote cache URL (redis://, rediss://, nats://)")

	return func() CLIFlags {
		var f CLIFlags
		pick := func(name string, val *string) *string {
			if fs.Changed(name) {
				return val
			}
			return nil
		}
		f.ConfigPath = pick("config", &v.config)
		f.Port = pick("port", &v.port)
		f.LogLevel = pick("log-level", &v.logLevel)
		f.DBDriver = pick("db-driver", &v.driver)
		f.DSN = pick("dsn", &v.dsn)
		f.SQLitePath = pick("sqlite-path", &v.sqlitePath)
		f.CacheURL = pick("cache-url", &v.cacheURL)
		return f
	}
}

// ParseFlags parses args into CLIFlags.
func ParseFlags(args []string) (CLIFlags, error) {
	fs := pflag.NewFlagSet("eventsgrasp", pflag.ContinueOnError)
	resolve := BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return CLIFlags{}, fmt.Errorf("parse flags: %w", err)
	}
	return resolve(), nil
}

// LoadWithCLI loads defaults < YAML < ENV < CLI and returns the YAML path used.
func LoadWithCLI(flags CLIFlags) (*Config, string, error) {
	path := DefaultConfigFile
	if flags.ConfigPath != nil {
		path = *flags.ConfigPath
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, path); err != nil {
		return nil, path, fmt.Errorf("config yaml: %w", err)
	}
	loadEnv(&cfg)
	applyCLI(&cfg, flags)

	if err := validate(&cfg); err != nil {
		return nil, path, fmt.Errorf("config validate: %w", err)
	}
	return &cfg, path, nil
}

func applyCLI(cfg *Config, f CLIFlags) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.Server.Port, f.Port)
	set(&cfg.Logging.Level, f.LogLevel)
	set(&cfg.Postgres.DSN, f.DSN)
	set(&cfg.Database.SQLitePath, f.SQLitePath)
	set(&cfg.Cache.RemoteURL, f.CacheURL)
	if f.DSN != nil && f.DBDriver == nil {
		cfg.Database.Driver = DriverPostgres
	}
	set(&cfg.Database.Driver, f.DBDriver)
}
