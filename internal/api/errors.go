package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/commander-api/internal/api/shared"
	"github.com/phrazzld/commander-api/internal/domain"
	"github.com/phrazzld/commander-api/internal/patch"
	"github.com/phrazzld/commander-api/internal/store"
)

// ErrMalformedRequest is returned when a request body cannot be decoded.
var ErrMalformedRequest = errors.New("malformed request body")

// ValidationError lists every field rule a request document violated.
// It is reported to clients as 422 with the violations enumerated.
type ValidationError struct {
	Fields []shared.FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return fmt.Sprintf("%v: %s", domain.ErrValidation, strings.Join(parts, ", "))
}

// Unwrap makes errors.Is(err, domain.ErrValidation) hold.
func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// NewValidationError converts an error returned by shared.ValidateRequest.
// Errors without field detail are returned unchanged.
func NewValidationError(err error) error {
	fields := shared.FieldErrors(err)
	if len(fields) == 0 {
		return err
	}
	return &ValidationError{Fields: fields}
}

// PatchValidationError reports a patch operation that could not be applied.
func PatchValidationError(err *patch.Error) *ValidationError {
	field := err.Field
	if field == "" {
		field = err.Path
	}
	return &ValidationError{Fields: []shared.FieldError{{
		Field:   field,
		Rule:    err.Rule,
		Message: err.Message,
	}}}
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *ValidationError

	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Validation errors
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, ErrMalformedRequest),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrCommandNotFound):
		return "Command not found"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation failed"

	case errors.Is(err, ErrMalformedRequest):
		return "Invalid request body"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid command ID"

	case errors.Is(err, store.ErrDuplicate):
		return "Command already exists"

	default:
		return "An unexpected error occurred"
	}
}
