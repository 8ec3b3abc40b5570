package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "eventsgrasp.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	path := DefaultConfigFile
	if p := os.Getenv("EVENTSGRASP_CONFIG"); p != "" {
		path = p
	}
	return LoadFrom(path)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "EVENTSGRASP_PORT")
	setList(&cfg.Server.CORSOrigins, "EVENTSGRASP_CORS_ORIGINS")
	setDuration(&cfg.Server.ShutdownTimeout, "EVENTSGRASP_SHUTDOWN_TIMEOUT")

	setString(&cfg.Database.Driver, "EVENTSGRASP_DB_DRIVER")
	setString(&cfg.Database.SQLitePath, "EVENTSGRASP_SQLITE_PATH")

	// A DATABASE_URL alone selects postgres.
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Postgres.DSN = dsn
		if os.Getenv("EVENTSGRASP_DB_DRIVER") == "" {
			cfg.Database.Driver = DriverPostgres
		}
	}
	setInt32(&cfg.Postgres.MaxConns, "EVENTSGRASP_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "EVENTSGRASP_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "EVENTSGRASP_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "EVENTSGRASP_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "EVENTSGRASP_PG_HEALTH_CHECK")

	// Most specific wins.
	setString(&cfg.Cache.RemoteURL, "NATS_URL")
	setString(&cfg.Cache.RemoteURL, "REDIS_URL")
	setString(&cfg.Cache.RemoteURL, "REDIS_CACHE_URL")
	setString(&cfg.Cache.RemoteURL, "EVENTSGRASP_CACHE_URL")
	setDuration(&cfg.Cache.TTL, "EVENTSGRASP_CACHE_TTL")
	setInt64(&cfg.Cache.LocalMaxEntries, "EVENTSGRASP_CACHE_MAX_ENTRIES")
	setString(&cfg.Cache.NATSBucket, "EVENTSGRASP_CACHE_NATS_BUCKET")

	setBool(&cfg.VectorStores.ProbeConnections, "EVENTSGRASP_PROBE_CONNECTIONS")
	setDuration(&cfg.VectorStores.ProbeTimeout, "EVENTSGRASP_PROBE_TIMEOUT")

	setString(&cfg.Logging.Level, "EVENTSGRASP_LOG_LEVEL")
	setString(&cfg.Logging.Service, "EVENTSGRASP_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "EVENTSGRASP_LOG_ASYNC")
	setInt(&cfg.Logging.AsyncBuffer, "EVENTSGRASP_LOG_ASYNC_BUFFER")

	setString(&cfg.OTel.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setBool(&cfg.OTel.Insecure, "EVENTSGRASP_OTEL_INSECURE")
	setFloat64(&cfg.OTel.SampleRate, "EVENTSGRASP_OTEL_SAMPLE_RATE")
}

// validate checks that required fields are set and consistent.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	switch cfg.Database.Driver {
	case DriverSQLite:
		if cfg.Database.SQLitePath == "" {
			return errors.New("database.sqlite_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if cfg.Postgres.DSN == "" {
			return errors.New("postgres.dsn is required for the postgres driver")
		}
		if cfg.Postgres.MaxConns < 1 {
			return errors.New("postgres.max_conns must be >= 1")
		}
	default:
		return fmt.Errorf("database.driver %q is not one of sqlite, postgres", cfg.Database.Driver)
	}
	if cfg.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}
	if cfg.Cache.LocalMaxEntries < 1 {
		return errors.New("cache.local_max_entries must be >= 1")
	}
	if cfg.Cache.RemoteURL != "" {
		u, err := url.Parse(cfg.Cache.RemoteURL)
		if err != nil {
			return fmt.Errorf("cache.remote_url: %w", err)
		}
		switch u.Scheme {
		case "redis", "rediss", "nats":
		default:
			return fmt.Errorf("cache.remote_url scheme %q is not supported", u.Scheme)
		}
	}
	if cfg.OTel.SampleRate < 0 || cfg.OTel.SampleRate > 1 {
		return errors.New("otel.sample_rate must be between 0 and 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
