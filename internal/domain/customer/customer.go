// Package customer defines the authenticated customer, login sessions and
// the cached validity states used by authentication.
package customer

import "time"

// Customer is an account that owns credentials.
type Customer struct {
	ID        int64  `json:"customer_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// Session is a login session identified by an opaque token.
// A nil ExpiresAt never expires.
type Session struct {
	ID         int64
	CustomerID int64
	Token      string
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the session has expired at now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// Validity is the cached state of a customer id.
type Validity int

const (
	// Unknown means the cache holds no entry and the database must be consulted.
	Unknown Validity = iota
	Valid
	Invalid
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}
