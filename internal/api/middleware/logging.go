package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// RequestLogger assigns every request a trace ID and logs one line when it completes.
type RequestLogger struct {
	logger *slog.Logger
}

// NewRequestLogger creates a RequestLogger. A nil logger falls back to slog.Default().
func NewRequestLogger(l *slog.Logger) *RequestLogger {
	if l == nil {
		l = slog.Default()
	}
	return &RequestLogger{logger: l}
}

// Handler must be the outermost middleware so that the completion line covers
// rejected and recovered requests too.
func (m *RequestLogger) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)
		log := m.logger.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		w.Header().Set(shared.TraceIDHeader, traceID)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}
