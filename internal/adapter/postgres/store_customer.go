package postgres

import (
	"context"
	"database/sql"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain/customer"
)

// --- Customers ---

func (s *Store) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	var c customer.Customer
	var first, last sql.NullString
	err := s.pool.QueryRow(ctx,
		`SELECT customer_id, email, first_name, last_name, is_active
		 FROM customers WHERE customer_id = $1`, id,
	).Scan(&c.ID, &c.Email, &first, &last, &c.IsActive)
	if err != nil {
		return nil, notFoundWrap(err, "get customer %d", id)
	}
	c.FirstName = first.String
	c.LastName = last.String
	return &c, nil
}

func (s *Store) GetSessionByToken(ctx context.Context, token string) (*customer.Session, error) {
	var sess customer.Session
	err := s.pool.QueryRow(ctx,
		`SELECT session_id, customer_id, token, expires_at, created_at
		 FROM customer_sessions WHERE token = $1`, token,
	).Scan(&sess.ID, &sess.CustomerID, &sess.Token, &sess.ExpiresAt, &sess.CreatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get session")
	}
	return &sess, nil
}
