// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain/credential"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/customer"
)

// DuplicateCredentialName is the conflict message for a reused credential name.
const DuplicateCredentialName = "A credential with this name already exists"

// CredentialStore persists customer-owned credentials. Every method is scoped
// to customerID; rows owned by another customer behave as missing.
type CredentialStore interface {
	// ListCredentials returns active credentials, newest first, without
	// their config. An empty providerType lists every provider.
	ListCredentials(ctx context.Context, customerID int64, providerType string) ([]credential.Credential, error)

	// GetCredential returns an active or inactive credential including its config.
	GetCredential(ctx context.Context, customerID, id int64) (*credential.Credential, error)

	// CreateCredential checks the name and inserts c in one transaction,
	// setting ID and timestamps. A reused name yields *domain.ConflictError.
	CreateCredential(ctx context.Context, c *credential.Credential) error

	// UpdateCredential applies the non-nil fields of req.
	UpdateCredential(ctx context.Context, customerID, id int64, req credential.UpdateRequest) error

	// DeactivateCredential soft-deletes a credential.
	DeactivateCredential(ctx context.Context, customerID, id int64) error
}

// CustomerStore reads customers and their login sessions.
type CustomerStore interface {
	GetCustomer(ctx context.Context, id int64) (*customer.Customer, error)
	GetSessionByToken(ctx context.Context, token string) (*customer.Session, error)
}

// Store is the port interface for database operations.
type Store interface {
	CredentialStore
	CustomerStore
	Ping(ctx context.Context) error
	Close()
}
