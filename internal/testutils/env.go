package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTempConfigFile writes content to dir/name and returns the full path.
// When dir is empty a fresh t.TempDir() is used.
func CreateTempConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	if dir == "" {
		dir = t.TempDir()
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "Failed to write config file")
	return path
}
