package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/commander-api/internal/platform/logger"
)

func requestWithTrace(traceID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	return req.WithContext(WithTraceID(context.Background(), traceID))
}

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"message": "success", "data": 123})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"success","data":123}`, w.Body.String())
}

func TestRespondWithJSONEmptySlice(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, []string{})

	assert.Equal(t, "[]\n", w.Body.String())
}

// Test for json encoding errors - this requires a data type that can't be JSON encoded
type unencodable struct {
	Ch chan int
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	buf, _ := logger.SetupTestLogger(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, unencodable{Ch: make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondWithError(w, requestWithTrace("test-trace-id"), http.StatusBadRequest, "Invalid request")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Invalid request", response.Error)
	assert.Equal(t, "test-trace-id", response.TraceID)
	assert.Empty(t, response.Errors)
	assert.NotContains(t, w.Body.String(), `"errors"`)
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "Bad request")

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.TraceID)
	assert.NotContains(t, w.Body.String(), "trace_id")
}

func TestRespondWithValidationErrors(t *testing.T) {
	w := httptest.NewRecorder()
	fields := []FieldError{{Field: "howTo", Rule: "required", Message: "howTo is required"}}

	RespondWithValidationErrors(w, requestWithTrace("trace-422"), "Validation failed", fields)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{
		"error": "Validation failed",
		"trace_id": "trace-422",
		"errors": [{"field": "howTo", "rule": "required", "message": "howTo is required"}]
	}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		message       string
		err           error
		expectedLevel string
	}{
		{
			name:          "server error",
			statusCode:    http.StatusInternalServerError,
			message:       "An unexpected error occurred",
			err:           errors.New("dial tcp db.example.com:5432: connection refused"),
			expectedLevel: "ERROR",
		},
		{
			name:          "client error",
			statusCode:    http.StatusBadRequest,
			message:       "Invalid request body",
			err:           errors.New("invalid character"),
			expectedLevel: "DEBUG",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf, _ := logger.SetupTestLogger(t)
			w := httptest.NewRecorder()

			RespondWithErrorAndLog(w, requestWithTrace("test-trace-id"), tc.statusCode, tc.message, tc.err)

			assert.Equal(t, tc.statusCode, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tc.message, response.Error)
			assert.Equal(t, "test-trace-id", response.TraceID)
			assert.NotContains(t, w.Body.String(), tc.err.Error(), "raw errors never reach the client")

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.NotEmpty(t, entries)
			last := entries[len(entries)-1]
			assert.Equal(t, tc.expectedLevel, last["level"])
			assert.Equal(t, "test-trace-id", last["trace_id"])
			assert.NotEmpty(t, last["error_type"])
		})
	}
}

func TestRespondWithErrorAndLogRedactsHosts(t *testing.T) {
	buf, _ := logger.SetupTestLogger(t)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, requestWithTrace("t"), http.StatusInternalServerError, "oops",
		errors.New("dial tcp db.example.com:5432: connection refused"))

	assert.NotContains(t, buf.String(), "db.example.com")
}
