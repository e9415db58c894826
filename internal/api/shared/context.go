package shared

import (
	"context"

	"github.com/google/uuid"
)

type traceIDKey struct{}

// NewTraceID returns candidate in canonical form when it is a UUID, so a
// trace started upstream carries on through this service. Anything else is
// replaced by a fresh random ID.
func NewTraceID(candidate string) string {
	if id, err := uuid.Parse(candidate); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// WithTraceID stores traceID in ctx. Error responses and request logs read
// it back with GetTraceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// GetTraceID returns the trace ID stored in ctx, or "" when there is none.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}
