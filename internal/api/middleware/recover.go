package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// Recover turns a panic in a downstream handler into a 500 JSON error.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel is compared by identity
				// ALLOW-PANIC: net/http relies on this to abort the response
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("recovered from panic",
				slog.String("panic", redact.String(fmt.Sprint(rec))),
				slog.String("path", r.URL.Path),
				slog.String("method", r.Method))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		}()

		next.ServeHTTP(w, r)
	})
}
