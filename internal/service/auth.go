package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	egotel "github.com/javakishore-veleti/eventsgrasp/internal/adapter/otel"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/customer"
	"github.com/javakishore-veleti/eventsgrasp/internal/port/database"
)

// Messages returned to unauthenticated callers.
const (
	MsgAuthRequired     = "Authentication required"
	MsgInvalidToken     = "Invalid or expired token"
	MsgCustomerInactive = "Customer account not found or inactive"
)

// AuthService resolves session tokens to active customers. Customer validity
// is cached; misses for the same customer share one database lookup.
type AuthService struct {
	store   database.CustomerStore
	cache   *CustomerCache
	logger  *slog.Logger
	metrics *egotel.Metrics
	now     func() time.Time

	sf singleflight.Group
}

// NewAuthService creates an AuthService backed by store and the validity cache.
func NewAuthService(store database.CustomerStore, cache *CustomerCache, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{store: store, cache: cache, logger: logger, now: time.Now}
}

// SetMetrics enables metric recording.
func (s *AuthService) SetMetrics(m *egotel.Metrics) { s.metrics = m }

// Authenticate returns the customer owning token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*customer.Customer, error) {
	if token == "" {
		return nil, s.reject(ctx, MsgAuthRequired)
	}

	sess, err := s.store.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.reject(ctx, MsgInvalidToken)
		}
		return nil, s.backend(ctx, "get session", err)
	}
	if sess.Expired(s.now()) {
		return nil, s.reject(ctx, MsgInvalidToken)
	}
	return s.ValidateCustomer(ctx, sess.CustomerID)
}

// ValidateCustomer returns the customer if it exists and is active.
// A cached Valid entry is confirmed against the database and dropped when the
// customer is gone; a cached Invalid entry rejects without a lookup.
func (s *AuthService) ValidateCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	switch s.cache.IsValid(ctx, id) {
	case customer.Invalid:
		return nil, s.reject(ctx, MsgCustomerInactive)

	case customer.Valid:
		c, err := s.store.GetCustomer(ctx, id)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, s.backend(ctx, "get customer", err)
		}
		if c == nil || !c.IsActive {
			s.cache.Invalidate(ctx, id)
			return nil, s.reject(ctx, MsgCustomerInactive)
		}
		return c, nil
	}

	v, err, _ := s.sf.Do(strconv.FormatInt(id, 10), func() (any, error) {
		return s.lookup(ctx, id)
	})
	if err != nil {
		return nil, s.backend(ctx, "get customer", err)
	}
	c, _ := v.(*customer.Customer)
	if c == nil {
		return nil, s.reject(ctx, MsgCustomerInactive)
	}
	cp := *c
	return &cp, nil
}

// lookup loads id and records its validity. A missing or inactive customer
// yields a nil customer and no error.
func (s *AuthService) lookup(ctx context.Context, id int64) (*customer.Customer, error) {
	ctx, span := egotel.StartCustomerLookupSpan(ctx, id)
	defer span.End()

	c, err := s.store.GetCustomer(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		s.cache.SetValid(ctx, id, false)
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.cache.SetValid(ctx, id, c.IsActive)
	if !c.IsActive {
		return nil, nil
	}
	return c, nil
}

func (s *AuthService) reject(ctx context.Context, msg string) error {
	if s.metrics != nil {
		s.metrics.AuthRejections.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", msg)))
	}
	return &domain.AuthError{Message: msg}
}

func (s *AuthService) backend(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, op+" failed", "error", err)
	return fmt.Errorf("%s: %w", op, domain.ErrBackend)
}
