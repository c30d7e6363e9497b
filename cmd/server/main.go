// Package main implements the entry point for the tasks API server, an
// in-memory task CRUD service protected by an API key.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "tasks-api: %v\n", err)
		os.Exit(1)
	}
}

// run wires the application together and blocks until the server stops.
func run(ctx context.Context) error {
	cfg, log, err := initializeApp()
	if err != nil {
		return err
	}

	runtime.GOMAXPROCS(cfg.Server.Workers)

	app, err := newApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// initializeApp loads .env, configuration and logging.
// Returns the loaded config, the configured logger and any initialization error.
func initializeApp() (*config.Config, *slog.Logger, error) {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.String("address", cfg.Server.Address),
		slog.Int("port", cfg.Server.Port),
		slog.Int("workers", cfg.Server.Workers),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("api_key", redact.Secret(cfg.Auth.APIKey)),
		slog.Bool("constant_time_auth", cfg.Auth.ConstantTime))

	if cfg.Auth.APIKey == config.DefaultAPIKey {
		log.Warn("using the default API key; set TASKS_AUTH_API_KEY in production")
	}

	return cfg, log, nil
}
