// Package middleware provides HTTP middleware for eventsgrasp.
package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/javakishore-veleti/eventsgrasp/internal/logger"
)

const (
	headerRequestID    = "X-Request-ID"
	maxRequestIDLength = 128
)

// RequestID takes X-Request-ID from the request, or generates one when it is
// missing, oversized or contains anything but letters, digits, '.', '_', '-'
// and ':'. The id is stored for logging and echoed in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if !validRequestID(id) {
			id = generateID()
		}

		ctx := logger.WithRequestID(r.Context(), id)
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-', c == ':':
		default:
			return false
		}
	}
	return true
}

// generateID returns a random UUID as 32 hex characters.
func generateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
