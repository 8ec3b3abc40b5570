package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/credential"
	"github.com/javakishore-veleti/eventsgrasp/internal/port/database"
)

// --- Credentials ---

func (s *Store) ListCredentials(ctx context.Context, customerID int64, providerType string) ([]credential.Credential, error) {
	query := `SELECT credential_id, customer_id, credential_name, provider_type, auth_type,
	                 description, is_active, created_at, updated_at
	          FROM credentials
	          WHERE customer_id = $1 AND is_active`
	args := []any{customerID}
	if providerType != "" {
		query += ` AND provider_type = $2`
		args = append(args, providerType)
	}
	query += ` ORDER BY created_at DESC, credential_id DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var out []credential.Credential
	for rows.Next() {
		var c credential.Credential
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.Name, &c.ProviderType, &c.AuthType,
			&c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCredential(ctx context.Context, customerID, id int64) (*credential.Credential, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT credential_id, customer_id, credential_name, provider_type, auth_type,
		        credential_config_json, description, is_active, created_at, updated_at
		 FROM credentials WHERE credential_id = $1 AND customer_id = $2`, id, customerID)
	c, err := scanCredential(row)
	if err != nil {
		return nil, notFoundWrap(err, "get credential %d", id)
	}
	return c, nil
}

func scanCredential(row scannable) (*credential.Credential, error) {
	var c credential.Credential
	var raw []byte
	if err := row.Scan(&c.ID, &c.CustomerID, &c.Name, &c.ProviderType, &c.AuthType,
		&raw, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Config = decodeConfig(raw)
	return &c, nil
}

// CreateCredential checks the name and inserts in one transaction. The unique
// index still catches a concurrent insert of the same name.
func (s *Store) CreateCredential(ctx context.Context, c *credential.Credential) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM credentials WHERE customer_id = $1 AND credential_name = $2)`,
		c.CustomerID, c.Name,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check credential name: %w", err)
	}
	if exists {
		return &domain.ConflictError{Message: database.DuplicateCredentialName}
	}

	config := c.Config
	if config == nil {
		config = map[string]any{}
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO credentials (customer_id, credential_name, provider_type, auth_type, credential_config_json, description, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING credential_id, created_at, updated_at`,
		c.CustomerID, c.Name, c.ProviderType, c.AuthType, config, c.Description, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Message: database.DuplicateCredentialName}
		}
		return fmt.Errorf("create credential: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) UpdateCredential(ctx context.Context, customerID, id int64, req credential.UpdateRequest) error {
	sets := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": id, "customer_id": customerID}

	if req.Name != nil && *req.Name != "" {
		sets = append(sets, "credential_name = @name")
		args["name"] = *req.Name
	}
	if req.Description != nil {
		sets = append(sets, "description = @description")
		args["description"] = *req.Description
	}
	if len(req.Config) > 0 {
		sets = append(sets, "credential_config_json = @config")
		args["config"] = req.Config
	}
	if req.IsActive != nil {
		sets = append(sets, "is_active = @is_active")
		args["is_active"] = *req.IsActive
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE credentials SET `+strings.Join(sets, ", ")+`
		 WHERE credential_id = @id AND customer_id = @customer_id`, args)
	return execExpectOne(tag, err, "update credential %d", id)
}

func (s *Store) DeactivateCredential(ctx context.Context, customerID, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE credentials SET is_active = FALSE, updated_at = now()
		 WHERE credential_id = $1 AND customer_id = $2`, id, customerID)
	return execExpectOne(tag, err, "deactivate credential %d", id)
}
