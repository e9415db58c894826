package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/commander-api/internal/api/shared"
	"github.com/phrazzld/commander-api/internal/domain"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidID, paramName)
	}

	return id, nil
}

// decodeBody decodes the JSON request body into v, classifying failures as
// ErrMalformedRequest.
func decodeBody(r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	return nil
}

// validateBody runs the struct validation rules on v.
func validateBody(v interface{}) error {
	if err := shared.ValidateRequest(v); err != nil {
		return NewValidationError(err)
	}
	return nil
}

// requestScheme reports the scheme the client used to reach the server.
func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// resourceURL builds the absolute URL of the resource with the given path.
func resourceURL(r *http.Request, path string) string {
	return requestScheme(r) + "://" + r.Host + path
}
