// Package testutil provides filesystem helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avitali/liblink/internal/catalog"
	"github.com/avitali/liblink/internal/domain"
)

// TempDir creates a temporary directory for testing.
// It returns the directory path and a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "liblink-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	return dir, func() { os.RemoveAll(dir) }
}

// CreateTestFile creates a test file with the given content
func CreateTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	return path
}

// MakeCatalog creates a catalog root with entries/ and manifests/
// subtrees and returns the resolved root.
func MakeCatalog(t *testing.T, kind domain.RootKind, dir string) domain.CatalogRoot {
	t.Helper()

	for _, sub := range []string{catalog.EntriesDirName, catalog.ManifestsDirName} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", sub, err)
		}
	}

	root, err := catalog.Resolve(kind, dir)
	if err != nil {
		t.Fatalf("failed to resolve catalog root: %v", err)
	}
	return root
}

// WriteManifest creates a manifest file for id with the given mtime and
// returns its path.
func WriteManifest(t *testing.T, root domain.CatalogRoot, id string, content []byte, mtime time.Time) string {
	t.Helper()

	path := filepath.Join(root.ManifestsDir, catalog.ManifestName(id))
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write manifest %s: %v", id, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to set manifest mtime: %v", err)
	}
	return path
}

// MakeEntry creates a real entry directory with one payload file inside
// and returns its path.
func MakeEntry(t *testing.T, root domain.CatalogRoot, name string) string {
	t.Helper()

	path := filepath.Join(root.EntriesDir, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create entry %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(path, "payload.bin"), []byte(name), 0644); err != nil {
		t.Fatalf("failed to write entry payload: %v", err)
	}
	return path
}

// LinkEntry creates a symlink entry slot pointing at target
func LinkEntry(t *testing.T, root domain.CatalogRoot, name, target string) string {
	t.Helper()

	if err := os.MkdirAll(root.EntriesDir, 0755); err != nil {
		t.Fatalf("failed to create entries dir: %v", err)
	}
	path := filepath.Join(root.EntriesDir, name)
	if err := os.Symlink(target, path); err != nil {
		t.Fatalf("failed to link entry %s: %v", name, err)
	}
	return path
}
