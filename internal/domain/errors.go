// Package domain provides shared domain-level sentinel errors.
package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested entity does not exist or is not owned by the caller.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness violation, e.g. a duplicate credential name.
var ErrConflict = errors.New("conflict")

// ErrValidation indicates malformed or rule-violating input.
var ErrValidation = errors.New("validation")

// ErrUnavailable indicates a provider that is unknown or not yet launched.
var ErrUnavailable = errors.New("provider unavailable")

// ErrUnauthorized indicates a missing, unknown or expired session, or an inactive customer.
var ErrUnauthorized = errors.New("unauthorized")

// ErrBackend indicates a storage or remote-cache fault. Its message is safe to show to callers.
var ErrBackend = errors.New("internal error")

// ValidationError carries the human-readable reason a configuration was rejected.
type ValidationError struct {
	Reason string
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// UnavailableError reports a provider that cannot be configured.
// Unknown and unlaunched providers share the same message.
type UnavailableError struct {
	Provider string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("Provider '%s' is not yet available", e.Provider)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// ConflictError carries the message reported for a uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// AuthError carries the message reported for a rejected request.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return ErrUnauthorized }

// Reason extracts the user-facing message from a domain error chain.
// Errors without a typed message fall back to their sentinel text.
func Reason(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue.Error()
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Message
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrBackend):
		return ErrBackend.Error()
	}
	return err.Error()
}
