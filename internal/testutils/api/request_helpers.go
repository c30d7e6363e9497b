package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api/middleware"
)

// RequestOption is a function that configures an HTTP request.
type RequestOption func(*http.Request)

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// WithAPIKey sets the X-API-Key header.
func WithAPIKey(key string) RequestOption {
	return WithHeader(middleware.APIKeyHeader, key)
}

// ExecuteRequest sends an HTTP request to the server without credentials.
// It automatically registers cleanup for the response body.
func (ts *TestServer) ExecuteRequest(
	t *testing.T,
	method string,
	path string,
	body io.Reader,
	options ...RequestOption,
) (*http.Response, error) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, option := range options {
		option(req)
	}

	resp, err := ts.Client().Do(req)
	if err == nil && resp != nil {
		t.Cleanup(func() {
			if err := resp.Body.Close(); err != nil {
				t.Logf("Failed to close response body: %v", err)
			}
		})
	}

	return resp, err
}

// ExecuteAuthenticatedRequest sends a request carrying the server's API key.
func (ts *TestServer) ExecuteAuthenticatedRequest(
	t *testing.T,
	method string,
	path string,
	body io.Reader,
	options ...RequestOption,
) (*http.Response, error) {
	t.Helper()
	options = append([]RequestOption{WithAPIKey(ts.APIKey)}, options...)
	return ts.ExecuteRequest(t, method, path, body, options...)
}

// ExecuteAuthenticatedJSONRequest marshals payload and sends it with the server's API key.
// A string payload is sent verbatim, which allows malformed JSON.
func (ts *TestServer) ExecuteAuthenticatedJSONRequest(
	t *testing.T,
	method string,
	path string,
	payload interface{},
	options ...RequestOption,
) (*http.Response, error) {
	t.Helper()

	var bodyReader io.Reader
	switch p := payload.(type) {
	case nil:
	case string:
		bodyReader = strings.NewReader(p)
	default:
		jsonData, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	return ts.ExecuteAuthenticatedRequest(t, method, path, bodyReader, options...)
}
