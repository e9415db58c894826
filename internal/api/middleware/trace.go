package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/commander-api/internal/api/shared"
	"github.com/phrazzld/commander-api/internal/platform/logger"
)

// TraceIDHeader is the response header carrying the request's trace ID.
const TraceIDHeader = "X-Trace-ID"

// NewTraceMiddleware adds a trace ID to the request context and echoes it in
// the X-Trace-ID response header. A valid UUID in the request's X-Trace-ID
// header is reused. The context also gets a request-scoped logger carrying
// the trace ID, and one line is logged per completed request.
//
// It should be applied early in the middleware chain so that all subsequent
// handlers have access to the trace ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := shared.NewTraceID(r.Header.Get(TraceIDHeader))
			ctx := shared.WithTraceID(r.Context(), traceID)

			log := base.With(slog.String("trace_id", traceID))
			if reqID := chimw.GetReqID(ctx); reqID != "" {
				log = log.With(slog.String("request_id", reqID))
			}
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(TraceIDHeader, traceID)
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(ww, r.WithContext(ctx))

			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		})
	}
}
