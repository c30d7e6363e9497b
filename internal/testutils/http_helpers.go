package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorResponse checks the status code and the {"error", "message"} body
// of an error response. An empty expectedMessage skips the message check.
func AssertErrorResponse(
	t *testing.T,
	resp *http.Response,
	expectedStatus int,
	expectedMessage string,
) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode,
		"Expected status code %d but got %d", expectedStatus, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	var errResp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp), "Failed to unmarshal error response: %s", string(body))

	assert.Equal(t, shared.StatusCategory(expectedStatus), errResp.Error)
	if expectedMessage != "" {
		assert.Equal(t, expectedMessage, errResp.Message)
	}
}

// DecodeJSONResponse asserts the status code and decodes the body into T.
func DecodeJSONResponse[T any](t *testing.T, resp *http.Response, expectedStatus int) T {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	require.Equal(t, expectedStatus, resp.StatusCode, "Unexpected status, body: %s", string(body))

	var out T
	require.NoError(t, json.Unmarshal(body, &out), "Failed to unmarshal response: %s", string(body))
	return out
}
