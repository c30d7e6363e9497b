package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	t.Parallel()

	m := New(nil)

	m.ObserveRequest(http.MethodGet, "/api/v1/tasks", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/tasks", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/tasks/{id}", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.requestsTotal.WithLabelValues(http.MethodGet, "/api/v1/tasks", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.requestsTotal.WithLabelValues(http.MethodGet, "/api/v1/tasks/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.errorsTotal.WithLabelValues("/api/v1/tasks/{id}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.errorsTotal))

	observer := m.requestDuration.WithLabelValues(http.MethodGet, "/api/v1/tasks")
	var sample dto.Metric
	require.NoError(t, observer.(prometheus.Metric).Write(&sample))
	assert.Equal(t, uint64(2), sample.GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.03, sample.GetHistogram().GetSampleSum(), 1e-9)
}

func TestTaskGauge(t *testing.T) {
	t.Parallel()

	count := 3
	m := New(func() int { return count })

	expected := `
# HELP tasks_api_tasks_stored Number of tasks currently held in the store.
# TYPE tasks_api_tasks_stored gauge
tasks_api_tasks_stored 3
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(),
		strings.NewReader(expected), "tasks_api_tasks_stored"))

	count = 5
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "tasks_api_tasks_stored" {
			assert.Equal(t, 5.0, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := New(func() int { return 0 })
	m.ObserveRequest(http.MethodPost, "/api/v1/tasks", http.StatusCreated, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `tasks_api_http_requests_total{method="POST",route="/api/v1/tasks",status="201"} 1`)
	assert.Contains(t, body, "tasks_api_tasks_stored 0")
	assert.Contains(t, body, "go_goroutines")
}
