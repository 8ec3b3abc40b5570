package vectorstore

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/schema"
	vs "github.com/javakishore-veleti/eventsgrasp/internal/domain/vectorstore"
	port "github.com/javakishore-veleti/eventsgrasp/internal/port/vectorstore"
)

// AuroraPgVector handles Amazon Aurora PostgreSQL with the pgvector extension.
type AuroraPgVector struct {
	port.Base
	opts Options
}

// NewAuroraPgVector creates the Aurora pgvector handler.
func NewAuroraPgVector(opts Options) *AuroraPgVector {
	return &AuroraPgVector{Base: port.Base{Type: string(vs.AWSAuroraPgVector)}, opts: opts}
}

// ValidateConfig requires connection coordinates and an integral port.
func (h *AuroraPgVector) ValidateConfig(config map[string]any) error {
	if err := requireFields(config, "host", "port", "database", "username"); err != nil {
		return err
	}
	if !schema.IntInRange(config["port"], 1, 65535) {
		return domain.Validationf("Port must be a valid port number (1-65535)")
	}
	return nil
}

// ConfigSchema describes the Aurora form.
func (h *AuroraPgVector) ConfigSchema() vs.ConfigSchema {
	return vs.ConfigSchema{Schema: schema.Schema{Fields: []schema.Field{
		{Name: "host", Label: "Host", Kind: schema.KindText, Required: true, Placeholder: "your-cluster.cluster-xxxxx.region.rds.amazonaws.com", Description: "Aurora cluster endpoint"},
		{Name: "port", Label: "Port", Kind: schema.KindNumber, Required: true, Default: 5432, Min: schema.Bound(1), Max: schema.Bound(65535), Description: "PostgreSQL port (default: 5432)"},
		{Name: "database", Label: "Database Name", Kind: schema.KindText, Required: true, Placeholder: "vectordb", Description: "Name of the database"},
		{Name: "username", Label: "Username", Kind: schema.KindText, Required: true, Description: "Database username"},
		{Name: "password", Label: "Password", Kind: schema.KindPassword, Required: true, Description: "Database password"},
		{Name: "table_name", Label: "Vector Table Name", Kind: schema.KindText, Default: "embeddings", Description: "Name of the table to store vectors"},
		{Name: "dimension", Label: "Vector Dimension", Kind: schema.KindNumber, Default: 1536, Min: schema.Bound(1), Max: schema.Bound(16000), Description: "Dimension of the embedding vectors"},
		{Name: "ssl_mode", Label: "SSL Mode", Kind: schema.KindSelect, Default: "require", Options: choices("require", "Require", "verify-ca", "Verify CA", "verify-full", "Verify Full", "disable", "Disable"), Description: "SSL connection mode"},
		{Name: "index_type", Label: "Index Type", Kind: schema.KindSelect, Default: "hnsw", Options: choices("hnsw", "HNSW (recommended)", "ivfflat", "IVFFlat"), Description: "Vector index type for similarity search"},
	}}}
}

// TestConnection connects with pgx, pings and checks that pgvector is installed.
func (h *AuroraPgVector) TestConnection(ctx context.Context, config map[string]any) vs.ConnectionResult {
	if !h.opts.Probe {
		return succeeded(simulatedSuccess)
	}

	ctx, cancel := context.WithTimeout(ctx, h.opts.timeout())
	defer cancel()

	conn, err := pgx.Connect(ctx, h.dsn(config))
	if err != nil {
		return failed(fmt.Sprintf("Connection failed: %v", err))
	}
	defer func() { _ = conn.Close(context.Background()) }()

	if err := conn.Ping(ctx); err != nil {
		return failed(fmt.Sprintf("Ping failed: %v", err))
	}

	var installed bool
	err = conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'vector')`).Scan(&installed)
	if err != nil {
		return failed(fmt.Sprintf("Extension check failed: %v", err))
	}
	if !installed {
		return failed("Connected, but the pgvector extension is not installed")
	}
	return succeeded("Connected to Aurora PostgreSQL with pgvector")
}

func (h *AuroraPgVector) dsn(config map[string]any) string {
	portNum, _ := schema.Int(config["port"])
	sslMode := schema.String(config["ssl_mode"])
	if sslMode == "" {
		sslMode = "require"
	}

	q := url.Values{}
	q.Set("sslmode", sslMode)
	q.Set("connect_timeout", strconv.Itoa(int(h.opts.timeout().Seconds())))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(schema.String(config["username"]), schema.String(config["password"])),
		Host:     net.JoinHostPort(schema.String(config["host"]), strconv.FormatInt(portNum, 10)),
		Path:     "/" + schema.String(config["database"]),
		RawQuery: q.Encode(),
	}
	return u.String()
}
