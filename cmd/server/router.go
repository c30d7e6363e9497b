package main

import (
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.RouterConfig{
		TaskService:      app.taskService,
		Logger:           app.logger,
		Metrics:          app.metrics,
		APIKey:           app.config.Auth.APIKey,
		ConstantTimeAuth: app.config.Auth.ConstantTime,
	})
}
