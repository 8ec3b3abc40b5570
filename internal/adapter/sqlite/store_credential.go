package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/credential"
	"github.com/javakishore-veleti/eventsgrasp/internal/port/database"
)

func (s *Store) ListCredentials(ctx context.Context, customerID int64, providerType string) ([]credential.Credential, error) {
	query := `SELECT credential_id, customer_id, credential_name, provider_type, auth_type,
	                 description, is_active, created_at, updated_at
	          FROM credentials
	          WHERE customer_id = ? AND is_active = 1`
	args := []any{customerID}
	if providerType != "" {
		query += ` AND provider_type = ?`
		args = append(args, providerType)
	}
	query += ` ORDER BY created_at DESC, credential_id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []credential.Credential
	for rows.Next() {
		var c credential.Credential
		var created, updated string
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.Name, &c.ProviderType, &c.AuthType,
			&c.Description, &c.IsActive, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		c.CreatedAt = parseTime(created)
		c.UpdatedAt = parseTime(updated)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCredential(ctx context.Context, customerID, id int64) (*credential.Credential, error) {
	var c credential.Credential
	var raw, created, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT credential_id, customer_id, credential_name, provider_type, auth_type,
		        credential_config_json, description, is_active, created_at, updated_at
		 FROM credentials WHERE credential_id = ? AND customer_id = ?`, id, customerID,
	).Scan(&c.ID, &c.CustomerID, &c.Name, &c.ProviderType, &c.AuthType,
		&raw, &c.Description, &c.IsActive, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get credential %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get credential %d: %w", id, err)
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &c.Config); err != nil {
			c.Config = nil
		}
	}
	c.CreatedAt = parseTime(created)
	c.UpdatedAt = parseTime(updated)
	return &c, nil
}

// CreateCredential checks the name and inserts in one transaction.
func (s *Store) CreateCredential(ctx context.Context, c *credential.Credential) error {
	config := c.Config
	if config == nil {
		config = map[string]any{}
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode credential config: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM credentials WHERE customer_id = ? AND credential_name = ?`,
		c.CustomerID, c.Name,
	).Scan(&count); err != nil {
		return fmt.Errorf("check credential name: %w", err)
	}
	if count > 0 {
		return &domain.ConflictError{Message: database.DuplicateCredentialName}
	}

	now := s.timestamp()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO credentials (customer_id, credential_name, provider_type, auth_type,
		                          credential_config_json, description, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CustomerID, c.Name, c.ProviderType, c.AuthType, string(raw), c.Description, c.IsActive, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Message: database.DuplicateCredentialName}
		}
		return fmt.Errorf("create credential: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("credential id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	c.ID = id
	c.CreatedAt = parseTime(now)
	c.UpdatedAt = c.CreatedAt
	return nil
}

func (s *Store) UpdateCredential(ctx context.Context, customerID, id int64, req credential.UpdateRequest) error {
	sets := []string{"updated_at = ?"}
	args := []any{s.timestamp()}

	if req.Name != nil && *req.Name != "" {
		sets = append(sets, "credential_name = ?")
		args = append(args, *req.Name)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if len(req.Config) > 0 {
		raw, err := json.Marshal(req.Config)
		if err != nil {
			return fmt.Errorf("encode credential config: %w", err)
		}
		sets = append(sets, "credential_config_json = ?")
		args = append(args, string(raw))
	}
	if req.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *req.IsActive)
	}
	args = append(args, id, customerID)

	res, err := s.db.ExecContext(ctx,
		`UPDATE credentials SET `+strings.Join(sets, ", ")+` WHERE credential_id = ? AND customer_id = ?`, args...)
	return expectOne(res, err, "update credential %d", id)
}

func (s *Store) DeactivateCredential(ctx context.Context, customerID, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE credentials SET is_active = 0, updated_at = ? WHERE credential_id = ? AND customer_id = ?`,
		s.timestamp(), id, customerID)
	return expectOne(res, err, "deactivate credential %d", id)
}

// expectOne fails with domain.ErrNotFound when an update touched no rows.
func expectOne(res sql.Result, err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Message: database.DuplicateCredentialName}
		}
		return fmt.Errorf("%s: %w", msg, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", msg, domain.ErrNotFound)
	}
	return nil
}
