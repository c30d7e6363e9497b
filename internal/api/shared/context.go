package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// TraceIDHeader is the response header that echoes the request's trace ID.
const TraceIDHeader = "X-Trace-ID"

// SetTraceID generates a fresh trace ID and stores it in the context.
// This is useful for correlating logs, events and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return logger.WithTraceID(ctx, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	return logger.TraceID(ctx)
}
