package api

import (
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/platform/metrics"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/require"
)

// DefaultTestAPIKey is the API key configured on test servers unless overridden.
const DefaultTestAPIKey = "test-api-key"

// TestServerOptions contains options for creating a test server.
type TestServerOptions struct {
	// APIKey defaults to DefaultTestAPIKey.
	APIKey string

	// ConstantTimeAuth selects constant-time key comparison.
	ConstantTimeAuth bool

	// Logger defaults to a debug logger writing into TestServer.Logs.
	Logger *slog.Logger

	// Handlers are registered on the event emitter in addition to the audit log handler.
	Handlers []events.EventHandler
}

// TestServer bundles a running server with the state behind it.
type TestServer struct {
	*httptest.Server

	APIKey  string
	Store   *memory.TaskStore
	Metrics *metrics.Metrics

	// Logs is nil when TestServerOptions.Logger was supplied.
	Logs *logger.TestLogBuffer
}

// SetupTestServer starts the full router over a fresh in-memory store.
// It automatically registers cleanup via t.Cleanup().
func SetupTestServer(t *testing.T, options TestServerOptions) *TestServer {
	t.Helper()

	ts := &TestServer{
		APIKey: options.APIKey,
		Store:  memory.NewTaskStore(),
	}
	if ts.APIKey == "" {
		ts.APIKey = DefaultTestAPIKey
	}

	log := options.Logger
	if log == nil {
		log, ts.Logs = logger.NewTestLogger()
	}

	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(events.NewLogHandler(log))
	for _, h := range options.Handlers {
		emitter.RegisterHandler(h)
	}

	taskService, err := service.NewTaskService(ts.Store, emitter, log)
	require.NoError(t, err, "Failed to create task service")

	ts.Metrics = metrics.New(ts.Store.Count)

	ts.Server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		TaskService:      taskService,
		Logger:           log,
		Metrics:          ts.Metrics,
		APIKey:           ts.APIKey,
		ConstantTimeAuth: options.ConstantTimeAuth,
	}))
	t.Cleanup(ts.Server.Close)

	return ts
}
