package server

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"scenecast/server/internal/assets"
)

// resolveViewerAssets picks the filesystem the asset server reads from. An
// empty dir selects the embedded bundle; otherwise the directory must exist
// and hold the viewer files.
func resolveViewerAssets(dir string) (fs.FS, error) {
	if dir == "" {
		return assets.FS, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve viewer assets: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resolve viewer assets: %s is not a directory", dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve viewer assets: %w", err)
	}
	return os.DirFS(abs), nil
}
