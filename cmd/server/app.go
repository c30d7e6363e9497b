package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/platform/metrics"
	"github.com/phrazzld/tasks-api/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore    *memory.TaskStore
	eventEmitter *events.InMemoryEventEmitter
	taskService  service.TaskService
	metrics      *metrics.Metrics
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config:    cfg,
		logger:    logger,
		taskStore: memory.NewTaskStore(),
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger))

	taskService, err := service.NewTaskService(app.taskStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.taskService = taskService

	app.metrics = metrics.New(app.taskStore.Count)

	return app, nil
}

// cleanup runs after the HTTP server has stopped. Tasks live only in memory,
// so the count being discarded is logged.
func (app *application) cleanup() {
	app.logger.Info("discarding in-memory tasks", slog.Int("task_count", app.taskStore.Count()))
}
