package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/javakishore-veleti/eventsgrasp/internal/port/database"
)

var _ database.Store = (*Store)(nil)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping acquires a connection and checks the server responds.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
