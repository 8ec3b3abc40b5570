// Package config provides hierarchical configuration loading for eventsgrasp.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all runtime configuration for the eventsgrasp service.
type Config struct {
	Server       Server       `yaml:"server"`
	Database     Database     `yaml:"database"`
	Postgres     Postgres     `yaml:"postgres"`
	Cache        Cache        `yaml:"cache"`
	VectorStores VectorStores `yaml:"vector_stores"`
	Logging      Logging      `yaml:"logging"`
	OTel         OTel         `yaml:"otel"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port            string        `yaml:"port"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Database selects the store backend.
type Database struct {
	Driver     string `yaml:"driver"` // "sqlite" | "postgres"
	SQLitePath string `yaml:"sqlite_path"`
}

// Postgres holds PostgreSQL connection configuration.
type Postgres struct {
	DSN             string        `yaml:"dsn"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	HealthCheck     time.Duration `yaml:"health_check"`
}

// Cache configures the customer validity cache.
type Cache struct {
	// RemoteURL picks the shared backend by scheme: redis://, rediss:// or
	// nats://. Empty means local only.
	RemoteURL       string        `yaml:"remote_url"`
	TTL             time.Duration `yaml:"ttl"`
	LocalMaxEntries int64         `yaml:"local_max_entries"`
	NATSBucket      string        `yaml:"nats_bucket"`
}

// VectorStores controls vector-store connection tests.
type VectorStores struct {
	ProbeConnections bool          `yaml:"probe_connections"`
	ProbeTimeout     time.Duration `yaml:"probe_timeout"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
	Async   bool   `yaml:"async"`

	// AsyncBuffer is the async queue capacity; records beyond it are dropped.
	AsyncBuffer int `yaml:"async_buffer"`
}

// OTel holds OpenTelemetry export configuration. An empty endpoint disables export.
type OTel struct {
	Endpoint       string        `yaml:"endpoint"`
	Insecure       bool          `yaml:"insecure"`
	SampleRate     float64       `yaml:"sample_rate"`
	MetricInterval time.Duration `yaml:"metric_interval"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:            "8000",
			CORSOrigins:     []string{"http://localhost:4200"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: Database{
			Driver:     DriverSQLite,
			SQLitePath: "eventsgrasp.db",
		},
		Postgres: Postgres{
			MaxConns:        10,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 10 * time.Minute,
			HealthCheck:     time.Minute,
		},
		Cache: Cache{
			TTL:             time.Hour,
			LocalMaxEntries: 1000,
			NATSBucket:      "eventsgrasp_cache",
		},
		VectorStores: VectorStores{
			ProbeTimeout: 10 * time.Second,
		},
		Logging: Logging{
			Level:       "info",
			Service:     "eventsgrasp",
			AsyncBuffer: 4096,
		},
		OTel: OTel{
			SampleRate:     1.0,
			MetricInterval: 30 * time.Second,
		},
	}
}
