package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/customer"
	"github.com/javakishore-veleti/eventsgrasp/internal/logger"
	"github.com/javakishore-veleti/eventsgrasp/internal/middleware"
)

type stubAuth struct {
	customers map[string]*customer.Customer
	err       error
	gotToken  string
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*customer.Customer, error) {
	s.gotToken = token
	if s.err != nil {
		return nil, s.err
	}
	if token == "" {
		return nil, &domain.AuthError{Message: "Authentication required"}
	}
	c, ok := s.customers[token]
	if !ok {
		return nil, &domain.AuthError{Message: "Invalid or expired token"}
	}
	return c, nil
}

func serve(t *testing.T, auth middleware.Authenticator, req *http.Request) (*httptest.ResponseRecorder, *customer.Customer) {
	t.Helper()
	var seen *customer.Customer
	h := middleware.CustomerAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.CustomerFromContext(r.Context())
		id, ok := logger.CustomerID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, seen.ID, id)
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestCustomerAuthTokenSources(t *testing.T) {
	auth := &stubAuth{customers: map[string]*customer.Customer{"tok": {ID: 5, IsActive: true}}}

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{name: "bearer header", header: "Bearer tok", want: http.StatusOK},
		{name: "lowercase scheme", header: "bearer tok", want: http.StatusOK},
		{name: "query parameter", query: "tok", want: http.StatusOK},
		{name: "header wins over query", header: "Bearer bad", query: "tok", want: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic dG9rOg==", want: http.StatusUnauthorized},
		{name: "missing", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/credentials"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec, seen := serve(t, auth, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, int64(5), seen.ID)
			}
		})
	}
}

func TestCustomerAuthFailureBody(t *testing.T) {
	auth := &stubAuth{}
	req := httptest.NewRequest(http.MethodGet, "/api/credentials", http.NoBody)

	rec, _ := serve(t, auth, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Authentication required", body["message"])
}

func TestCustomerAuthBackendFailure(t *testing.T) {
	auth := &stubAuth{err: fmt.Errorf("get session: %w", domain.ErrBackend)}
	req := httptest.NewRequest(http.MethodGet, "/api/credentials", http.NoBody)
	req.Header.Set("Authorization", "Bearer tok")

	rec, _ := serve(t, auth, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "get session")
}

func TestCustomerFromEmptyContext(t *testing.T) {
	assert.Nil(t, middleware.CustomerFromContext(context.Background()))
	assert.False(t, errors.Is(nil, domain.ErrUnauthorized))
}
