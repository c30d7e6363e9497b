package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
)

// Version is reported by the health endpoint. Override at build time with
// -ldflags "-X github.com/phrazzld/tasks-api/internal/api.Version=...".
var Version = "0.1.0"

// HealthHandler serves GET /health. It never requires authentication.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// Check reports that the service is up.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Version:   Version,
	})
}
