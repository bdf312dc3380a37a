package server

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveViewerAssetsDefaultsToEmbedded(t *testing.T) {
	fsys, err := resolveViewerAssets("")
	if err != nil {
		t.Fatalf("failed to resolve embedded assets: %v", err)
	}
	for _, name := range []string{"index.html", "main.min.js", "favicon.ico"} {
		if _, err := fs.Stat(fsys, name); err != nil {
			t.Fatalf("expected embedded asset %q: %v", name, err)
		}
	}
}

func TestResolveViewerAssetsUsesOverrideDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("failed to write asset: %v", err)
	}

	fsys, err := resolveViewerAssets(dir)
	if err != nil {
		t.Fatalf("failed to resolve override dir: %v", err)
	}
	if _, err := fs.Stat(fsys, "index.html"); err != nil {
		t.Fatalf("expected override asset: %v", err)
	}
}

func TestResolveViewerAssetsRejectsMissingDir(t *testing.T) {
	if _, err := resolveViewerAssets(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected resolution to fail for a missing directory")
	}
}

func TestResolveViewerAssetsRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "asset")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := resolveViewerAssets(file); err == nil {
		t.Fatalf("expected resolution to fail for a plain file")
	}
}
