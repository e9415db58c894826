package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/commander-api/internal/api/dto"
	"github.com/phrazzld/commander-api/internal/api/shared"
	"github.com/phrazzld/commander-api/internal/domain"
	"github.com/phrazzld/commander-api/internal/patch"
	"github.com/phrazzld/commander-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", store.ErrCommandNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", store.ErrNotFound), http.StatusNotFound},
		{"validation error", &ValidationError{}, http.StatusUnprocessableEntity},
		{"domain validation", (&domain.Command{}).Validate(), http.StatusUnprocessableEntity},
		{"invalid entity", store.ErrInvalidEntity, http.StatusUnprocessableEntity},
		{"malformed body", fmt.Errorf("%w: eof", ErrMalformedRequest), http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{store.ErrCommandNotFound, "Command not found"},
		{&ValidationError{}, "Validation failed"},
		{ErrMalformedRequest, "Invalid request body"},
		{domain.ErrInvalidID, "Invalid command ID"},
		{store.ErrDuplicate, "Command already exists"},
		{errors.New("pq: password authentication failed for user admin"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(shared.ValidateRequest(&dto.CommandCreateRequest{HowTo: "x"}))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, validationErr.Fields, 2)
	assert.Contains(t, err.Error(), "platform (required)")
	assert.Contains(t, err.Error(), "commandLine (required)")

	plain := errors.New("not a validation error")
	assert.Same(t, plain, NewValidationError(plain))
}

func TestPatchValidationError(t *testing.T) {
	err := PatchValidationError(&patch.Error{
		Index:   0,
		Op:      "replace",
		Path:    "/bogus",
		Rule:    patch.RulePathNotFound,
		Message: "the target location specified by path '/bogus' was not found",
	})

	require.Len(t, err.Fields, 1)
	assert.Equal(t, "/bogus", err.Fields[0].Field, "path stands in for an unknown field")
	assert.Equal(t, patch.RulePathNotFound, err.Fields[0].Rule)

	err = PatchValidationError(&patch.Error{Path: "/howTo", Field: "howTo", Rule: patch.RuleTestFailed})
	assert.Equal(t, "howTo", err.Fields[0].Field)
}
