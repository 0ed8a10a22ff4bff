package testutil

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/emocam/emocam/internal/backend"
	"github.com/emocam/emocam/internal/config"
	"github.com/stretchr/testify/require"
)

// FastFrameInterval is the capture rate of backends started by StartBackend.
const FastFrameInterval = 5 * time.Millisecond

// SetupTestDir creates a temporary directory with a .emocam/config.yaml
// pointing at backendURL. An empty backendURL keeps the default.
// The directory is automatically cleaned up when the test completes.
func SetupTestDir(t *testing.T, backendURL string) string {
	t.Helper()

	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	if backendURL != "" {
		cfg.Backend.URL = backendURL
	}
	require.NoError(t, config.SaveConfig(tmpDir, &cfg))
	return tmpDir
}

// WriteTestFile writes content to a file in the test directory.
// Creates parent directories as needed.
func WriteTestFile(t *testing.T, basePath, relativePath string, content []byte) {
	t.Helper()
	fullPath := filepath.Join(basePath, relativePath)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(t, os.WriteFile(fullPath, content, 0o644))
}

// StartBackend runs the development backend behind httptest and returns it
// with its base URL. Capture and the listener are shut down on cleanup.
func StartBackend(t *testing.T, d backend.Detector) (*backend.Server, string) {
	t.Helper()

	srv, err := backend.NewServer(&backend.Config{
		FrameInterval: FastFrameInterval,
		Detector:      d,
		Assets:        fstest.MapFS{"index.html": {Data: []byte("<h1>emocam</h1>")}},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.StopCapture()
	})
	return srv, ts.URL
}

// Eventually waits for cond to hold, failing the test after DefaultRequestTimeout.
func Eventually(t *testing.T, cond func() bool, msgAndArgs ...interface{}) {
	t.Helper()
	require.Eventually(t, cond, DefaultRequestTimeout, PollTick, msgAndArgs...)
}
