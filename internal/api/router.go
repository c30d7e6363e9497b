package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/metrics"
	"github.com/phrazzld/tasks-api/internal/service"
)

// Route paths.
const (
	HealthPath  = "/health"
	MetricsPath = "/metrics"
	TasksPath   = "/api/v1/tasks"
)

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	TaskService service.TaskService
	Logger      *slog.Logger

	// Metrics is optional. When nil, no request metrics are recorded and
	// /metrics is not served.
	Metrics *metrics.Metrics

	APIKey           string
	ConstantTimeAuth bool
}

// NewRouter builds the application's HTTP handler.
//
// Middleware, outermost first: request logging, metrics, panic recovery,
// CORS, API key authentication.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRequestLogger(log).Handler)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodPatch, http.MethodOptions, http.MethodHead,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         3600,
	}))
	r.Use(middleware.NewAPIKeyAuth(cfg.APIKey, cfg.ConstantTimeAuth, HealthPath).Authenticate)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, msgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	health := NewHealthHandler()
	tasks := NewTaskHandler(cfg.TaskService, log)

	r.Get(HealthPath, health.Check)

	r.Get(TasksPath, tasks.ListTasks)
	r.Post(TasksPath, tasks.CreateTask)
	r.Get(TasksPath+"/{id}", tasks.GetTask)
	r.Put(TasksPath+"/{id}", tasks.UpdateTask)
	r.Delete(TasksPath+"/{id}", tasks.DeleteTask)

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, MetricsPath, cfg.Metrics.Handler())
	}

	return r
}
