package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// APIKeyHeader carries the client's API key.
const APIKeyHeader = "X-API-Key"

// UnauthorizedMessage is returned to clients with a missing or wrong key.
const UnauthorizedMessage = "Missing or invalid API key. Provide X-API-Key header."

// APIKeyAuth rejects requests whose X-API-Key header does not match the configured key.
type APIKeyAuth struct {
	apiKey       string
	constantTime bool
	publicPaths  map[string]struct{}
}

// NewAPIKeyAuth creates an APIKeyAuth. Requests to publicPaths skip the check.
// With constantTime set, keys are compared with crypto/subtle.
func NewAPIKeyAuth(apiKey string, constantTime bool, publicPaths ...string) *APIKeyAuth {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}
	return &APIKeyAuth{
		apiKey:       apiKey,
		constantTime: constantTime,
		publicPaths:  public,
	}
}

// Authenticate validates the X-API-Key header before calling next.
func (m *APIKeyAuth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.publicPaths[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		provided := r.Header.Get(APIKeyHeader)
		if provided == "" || !m.matches(provided) {
			// Never log the provided key.
			logger.FromContext(r.Context()).Warn("unauthorized request",
				slog.String("path", r.URL.Path),
				slog.String("trace_id", shared.GetTraceID(r.Context())),
				slog.Bool("key_present", provided != ""))
			shared.RespondWithError(w, r, http.StatusUnauthorized, UnauthorizedMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *APIKeyAuth) matches(provided string) bool {
	if m.constantTime {
		return subtle.ConstantTimeCompare([]byte(provided), []byte(m.apiKey)) == 1
	}
	return provided == m.apiKey
}
