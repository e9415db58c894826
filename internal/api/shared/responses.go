package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/commander-api/internal/platform/logger"
	"github.com/phrazzld/commander-api/internal/redact"
)

// FieldError describes one violated rule on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    int          `json:"-"` // Not serialized to JSON, used for logging
	TraceID string       `json:"trace_id,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// RespondWithError writes a JSON error response with the given status code and message.
// It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	logger.FromContextOrDefault(r.Context(), slog.Default()).Debug("sending error response",
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		Code:    status,
		TraceID: traceID,
	})
}

// RespondWithValidationErrors writes a 422 response enumerating every
// violated field rule.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, message string, fields []FieldError) {
	traceID := GetTraceID(r.Context())

	logger.FromContextOrDefault(r.Context(), slog.Default()).Debug("sending validation error response",
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("violations", len(fields)))

	RespondWithJSON(w, r, http.StatusUnprocessableEntity, ErrorResponse{
		Error:   message,
		Code:    http.StatusUnprocessableEntity,
		TraceID: traceID,
		Errors:  fields,
	})
}

// RespondWithErrorAndLog writes a JSON error response and also logs the detailed error.
// Only userMessage reaches the client; the error itself is redacted and logged.
//
// 5xx responses are logged at ERROR level, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	logger.FromContextOrDefault(r.Context(), slog.Default()).
		LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   userMessage,
		Code:    status,
		TraceID: traceID,
	})
}
