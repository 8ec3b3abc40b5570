package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/customer"
	"github.com/javakishore-veleti/eventsgrasp/internal/logger"
)

type customerCtxKey struct{}

// Authenticator resolves a session token to an active customer.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*customer.Customer, error)
}

// CustomerAuth returns middleware that requires a session token in the
// Authorization: Bearer header or the token query parameter. The customer is
// stored in the request context; failures answer 401.
func CustomerAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := auth.Authenticate(r.Context(), tokenFromRequest(r))
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					w.Header().Set("WWW-Authenticate", "Bearer")
					writeFailure(w, http.StatusUnauthorized, domain.Reason(err))
					return
				}
				writeFailure(w, http.StatusInternalServerError, domain.ErrBackend.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithCustomer(r.Context(), c)))
		})
	}
}

// tokenFromRequest prefers the Authorization header over the query parameter.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// ContextWithCustomer stores c in ctx and tags log records with its id.
func ContextWithCustomer(ctx context.Context, c *customer.Customer) context.Context {
	ctx = context.WithValue(ctx, customerCtxKey{}, c)
	return logger.WithCustomerID(ctx, c.ID)
}

// CustomerFromContext returns the authenticated customer, or nil.
func CustomerFromContext(ctx context.Context) *customer.Customer {
	c, _ := ctx.Value(customerCtxKey{}).(*customer.Customer)
	return c
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
