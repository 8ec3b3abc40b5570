package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/customer"
)

func (s *Store) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	var c customer.Customer
	var first, last sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT customer_id, email, first_name, last_name, is_active FROM customers WHERE customer_id = ?`, id,
	).Scan(&c.ID, &c.Email, &first, &last, &c.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get customer %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	c.FirstName = first.String
	c.LastName = last.String
	return &c, nil
}

func (s *Store) GetSessionByToken(ctx context.Context, token string) (*customer.Session, error) {
	var sess customer.Session
	var expires sql.NullString
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, customer_id, token, expires_at, created_at FROM customer_sessions WHERE token = ?`, token,
	).Scan(&sess.ID, &sess.CustomerID, &sess.Token, &expires, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get session: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if expires.Valid && expires.String != "" {
		t := parseTime(expires.String)
		sess.ExpiresAt = &t
	}
	sess.CreatedAt = parseTime(created)
	return &sess, nil
}
