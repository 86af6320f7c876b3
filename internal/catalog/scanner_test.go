package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avitali/liblink/internal/domain"
)

func makeRoot(t *testing.T, kind domain.RootKind) domain.CatalogRoot {
	t.Helper()

	dir := t.TempDir()
	for _, sub := range []string{EntriesDirName, ManifestsDirName} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", sub, err)
		}
	}

	root, err := Resolve(kind, dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return root
}

func TestResolve_MissingRoot(t *testing.T) {
	_, err := Resolve(domain.RootPortable, filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, domain.ErrCatalogNotFound) {
		t.Errorf("Expected ErrCatalogNotFound, got %v", err)
	}
}

func TestResolve_FileAsRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Resolve(domain.RootLocal, file)
	if !errors.Is(err, domain.ErrNotDirectory) {
		t.Errorf("Expected ErrNotDirectory, got %v", err)
	}
}

func TestResolve_Subtrees(t *testing.T) {
	root := makeRoot(t, domain.RootLocal)

	if filepath.Base(root.EntriesDir) != EntriesDirName {
		t.Errorf("Unexpected entries dir: %s", root.EntriesDir)
	}
	if filepath.Base(root.ManifestsDir) != ManifestsDirName {
		t.Errorf("Unexpected manifests dir: %s", root.ManifestsDir)
	}
	if !filepath.IsAbs(root.Path) {
		t.Errorf("Expected absolute root path, got %s", root.Path)
	}
}

func TestScan_MissingSubtreesAreEmpty(t *testing.T) {
	dir := t.TempDir()
	root, err := Resolve(domain.RootPortable, dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	inv, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(inv.Entries) != 0 || len(inv.Manifests) != 0 {
		t.Errorf("Expected empty inventory, got %d entries, %d manifests",
			len(inv.Entries), len(inv.Manifests))
	}
}

func TestScan_UnreadableSubtreeIsFatal(t *testing.T) {
	dir := t.TempDir()
	// entries is a file, not a directory: listing it must fail.
	if err := os.WriteFile(filepath.Join(dir, EntriesDirName), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	root, err := Resolve(domain.RootLocal, dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	_, err = Scan(root)
	if !errors.Is(err, domain.ErrRootUnreadable) {
		t.Errorf("Expected ErrRootUnreadable, got %v", err)
	}
}

func TestScan_Entries(t *testing.T) {
	root := makeRoot(t, domain.RootPortable)

	if err := os.MkdirAll(filepath.Join(root.EntriesDir, "Game42"), 0755); err != nil {
		t.Fatal(err)
	}
	// Non-directories in entries/ are ignored.
	if err := os.WriteFile(filepath.Join(root.EntriesDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	inv, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(inv.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(inv.Entries))
	}
	entry, ok := inv.Entries["Game42"]
	if !ok {
		t.Fatal("Expected Game42 in inventory")
	}
	if entry.IsLink {
		t.Error("Expected a real directory entry")
	}
	if entry.Root != domain.RootPortable {
		t.Errorf("Expected portable root kind, got %s", entry.Root)
	}
}

func TestScan_SymlinkEntryRecordsTarget(t *testing.T) {
	root := makeRoot(t, domain.RootLocal)
	target := t.TempDir()

	if err := os.Symlink(target, filepath.Join(root.EntriesDir, "Game42")); err != nil {
		t.Fatal(err)
	}

	inv, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	entry := inv.Entries["Game42"]
	if !entry.IsLink {
		t.Fatal("Expected a symlink entry")
	}
	if entry.LinkTarget != target {
		t.Errorf("Expected target %s, got %s", target, entry.LinkTarget)
	}
}

func TestScan_Manifests(t *testing.T) {
	root := makeRoot(t, domain.RootPortable)
	mtime := time.Now().Add(-time.Hour).Truncate(time.Second)

	path := filepath.Join(root.ManifestsDir, ManifestName("440"))
	if err := os.WriteFile(path, []byte("manifest"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	// Files not matching the naming convention are ignored.
	if err := os.WriteFile(filepath.Join(root.ManifestsDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root.ManifestsDir, "appmanifest_abc.acf"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	inv, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(inv.Manifests) != 1 {
		t.Fatalf("Expected 1 manifest, got %d", len(inv.Manifests))
	}
	m := inv.Manifests["440"]
	if m.Name != "appmanifest_440.acf" {
		t.Errorf("Unexpected manifest name: %s", m.Name)
	}
	if m.Size != int64(len("manifest")) {
		t.Errorf("Expected size %d, got %d", len("manifest"), m.Size)
	}
	if !m.ModTime.Equal(mtime) {
		t.Errorf("Expected mtime %v, got %v", mtime, m.ModTime)
	}
}

func TestScan_SymlinkManifestFollowsTarget(t *testing.T) {
	portable := makeRoot(t, domain.RootPortable)
	local := makeRoot(t, domain.RootLocal)

	target := filepath.Join(portable.ManifestsDir, ManifestName("7"))
	if err := os.WriteFile(target, []byte("portable copy"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(local.ManifestsDir, ManifestName("7"))); err != nil {
		t.Fatal(err)
	}

	inv, err := Scan(local)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	m := inv.Manifests["7"]
	if !m.IsLink {
		t.Fatal("Expected a symlink manifest")
	}
	if m.LinkTarget != target {
		t.Errorf("Expected target %s, got %s", target, m.LinkTarget)
	}
	if m.Size != int64(len("portable copy")) {
		t.Errorf("Expected size of target, got %d", m.Size)
	}
}

func TestOrphans(t *testing.T) {
	portable := makeRoot(t, domain.RootPortable)
	local := makeRoot(t, domain.RootLocal)

	// A linked entry whose portable twin is gone, and a linked one that
	// still exists. Real local directories are never orphans.
	if err := os.Symlink("/gone/Game1", filepath.Join(local.EntriesDir, "Game1")); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(portable.EntriesDir, "Game2"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(portable.EntriesDir, "Game2"), filepath.Join(local.EntriesDir, "Game2")); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(local.EntriesDir, "RealDir"), 0755); err != nil {
		t.Fatal(err)
	}

	localInv, err := Scan(local)
	if err != nil {
		t.Fatalf("Scan local failed: %v", err)
	}
	portableInv, err := Scan(portable)
	if err != nil {
		t.Fatalf("Scan portable failed: %v", err)
	}

	orphans := Orphans(localInv, portableInv)
	if len(orphans) != 1 {
		t.Fatalf("Expected 1 orphan, got %d", len(orphans))
	}
	if orphans[0].ID != "Game1" || orphans[0].Slot != domain.SlotEntry {
		t.Errorf("Unexpected orphan: %+v", orphans[0])
	}
}
