package web

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAssets_Embedded(t *testing.T) {
	t.Parallel()

	assets := GetAssetsWithBase("/nonexistent/path")
	require.NotNil(t, assets)

	f, err := assets.Open("index.html")
	require.NoError(t, err)
	defer f.Close()

	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(body), "/video_feed")
	assert.Contains(t, string(body), "POST /start")
}

func TestGetAssets_DevelopmentOverride(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	dist := filepath.Join(base, "web", "dist")
	require.NoError(t, os.MkdirAll(dist, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), []byte("dev page"), 0o644))

	body, err := fs.ReadFile(GetAssetsWithBase(base), "index.html")
	require.NoError(t, err)
	assert.Equal(t, "dev page", string(body))
}

func TestGetAssets_Walk(t *testing.T) {
	t.Parallel()

	var files int
	err := fs.WalkDir(GetAssets("/nonexistent"), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Positive(t, files)
}
