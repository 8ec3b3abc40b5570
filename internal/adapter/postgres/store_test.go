package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javakishore-veleti/eventsgrasp/internal/adapter/postgres"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/credential"
)

// setupStore runs all migrations and returns a Store plus its pool for
// seeding read-only tables. The pool is closed via t.Cleanup.
func setupStore(t *testing.T) (*postgres.Store, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("requires DATABASE_URL")
	}

	ctx := context.Background()
	require.NoError(t, postgres.RunMigrations(ctx, dsn), "run migrations")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, "create pool")
	t.Cleanup(pool.Close)

	return postgres.NewStore(pool), pool
}

// createTestCustomer inserts a customer with a random email and returns its ID.
func createTestCustomer(t *testing.T, pool *pgxpool.Pool, active bool) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO customers (email, first_name, is_active) VALUES ($1, 'Test', $2) RETURNING customer_id`,
		"test-"+uuid.NewString()[:8]+"@example.com", active,
	).Scan(&id)
	require.NoError(t, err, "create test customer")
	return id
}

func newCredential(customerID int64, name string) *credential.Credential {
	return &credential.Credential{
		CustomerID:   customerID,
		Name:         name,
		ProviderType: "openai",
		AuthType:     "api_key",
		Config:       map[string]any{"api_key": "sk-test"},
		Description:  "test",
		IsActive:     true,
	}
}

func TestCredentialCRUD(t *testing.T) {
	store, pool := setupStore(t)
	ctx := context.Background()
	cid := createTestCustomer(t, pool, true)

	c := newCredential(cid, "primary")
	require.NoError(t, store.CreateCredential(ctx, c))
	require.NotZero(t, c.ID)
	require.False(t, c.CreatedAt.IsZero())

	got, err := store.GetCredential(ctx, cid, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", got.Config["api_key"])

	desc := "rotated"
	require.NoError(t, store.UpdateCredential(ctx, cid, c.ID, credential.UpdateRequest{
		Description: &desc,
		Config:      map[string]any{"api_key": "sk-new"},
	}))
	got, err = store.GetCredential(ctx, cid, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "rotated", got.Description)
	assert.Equal(t, "sk-new", got.Config["api_key"])

	list, err := store.ListCredentials(ctx, cid, "openai")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Config, "list rows carry no config")

	require.NoError(t, store.DeactivateCredential(ctx, cid, c.ID))
	list, err = store.ListCredentials(ctx, cid, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCredentialDuplicateName(t *testing.T) {
	store, pool := setupStore(t)
	ctx := context.Background()
	cid := createTestCustomer(t, pool, true)
	other := createTestCustomer(t, pool, true)

	require.NoError(t, store.CreateCredential(ctx, newCredential(cid, "dup")))
	assert.ErrorIs(t, store.CreateCredential(ctx, newCredential(cid, "dup")), domain.ErrConflict)
	assert.NoError(t, store.CreateCredential(ctx, newCredential(other, "dup")), "other customer may reuse the name")

	second := newCredential(cid, "second")
	require.NoError(t, store.CreateCredential(ctx, second))
	name := "dup"
	err := store.UpdateCredential(ctx, cid, second.ID, credential.UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCredentialScopedToCustomer(t *testing.T) {
	store, pool := setupStore(t)
	ctx := context.Background()
	owner := createTestCustomer(t, pool, true)
	stranger := createTestCustomer(t, pool, true)

	c := newCredential(owner, "private")
	require.NoError(t, store.CreateCredential(ctx, c))

	_, err := store.GetCredential(ctx, stranger, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.DeactivateCredential(ctx, stranger, c.ID), domain.ErrNotFound)
	desc := "x"
	err = store.UpdateCredential(ctx, stranger, c.ID, credential.UpdateRequest{Description: &desc})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerAndSession(t *testing.T) {
	store, pool := setupStore(t)
	ctx := context.Background()
	cid := createTestCustomer(t, pool, false)

	c, err := store.GetCustomer(ctx, cid)
	require.NoError(t, err)
	assert.False(t, c.IsActive)
	assert.Equal(t, "Test", c.FirstName)

	token := uuid.NewString()
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	_, err = pool.Exec(ctx,
		`INSERT INTO customer_sessions (customer_id, token, expires_at) VALUES ($1, $2, $3)`,
		cid, token, expires)
	require.NoError(t, err, "insert session")

	sess, err := store.GetSessionByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, cid, sess.CustomerID)
	require.NotNil(t, sess.ExpiresAt)
	assert.True(t, sess.ExpiresAt.Equal(expires), "expires_at = %v, want %v", sess.ExpiresAt, expires)

	_, err = store.GetSessionByToken(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetCustomer(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
