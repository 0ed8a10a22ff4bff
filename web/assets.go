// Package web provides the embedded index page served by the development
// backend.
//
// The dist/ directory is embedded at build time. If a dist/ directory exists
// on the filesystem at the development path, it is served instead so the page
// can be edited without rebuilding.
package web

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed dist/*
var assets embed.FS

// GetAssets returns a filesystem containing the index page assets.
// devPath is checked first; if empty, it defaults to "./web/dist"
// (relative to the working directory).
func GetAssets(devPath string) fs.FS {
	if devPath == "" {
		devPath = "./web/dist"
	}

	if stat, err := os.Stat(devPath); err == nil && stat.IsDir() {
		return os.DirFS(devPath)
	}

	subFS, err := fs.Sub(assets, "dist")
	if err != nil {
		panic("failed to access embedded web assets: " + err.Error())
	}
	return subFS
}

// GetAssetsWithBase returns the assets, checking for a development copy
// under baseDir/web/dist.
func GetAssetsWithBase(baseDir string) fs.FS {
	return GetAssets(filepath.Join(baseDir, "web", "dist"))
}
