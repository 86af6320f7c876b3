package mounts

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseExfat(t *testing.T) {
	mounts := `proc /proc proc rw 0 0
/dev/nvme0n1p2 / ext4 rw,relatime 0 0
/dev/sda1 /mnt/drive exfat rw,relatime 0 0
/dev/sdb1 /mnt/other fuse.exfat rw 0 0
/dev/sdc1 /mnt/usb\040stick EXFAT rw 0 0
/dev/sdd1 /mnt/vfat vfat rw 0 0
`

	got := parseExfat(strings.NewReader(mounts))
	want := []string{"/mnt/drive", "/mnt/other", "/mnt/usb stick"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseExfat_Empty(t *testing.T) {
	if got := parseExfat(strings.NewReader("")); len(got) != 0 {
		t.Errorf("Expected no mount points, got %v", got)
	}
}

func TestLooksLikeCatalog(t *testing.T) {
	withEntries := t.TempDir()
	if err := os.MkdirAll(filepath.Join(withEntries, "entries"), 0755); err != nil {
		t.Fatal(err)
	}
	withManifests := t.TempDir()
	if err := os.MkdirAll(filepath.Join(withManifests, "manifests"), 0755); err != nil {
		t.Fatal(err)
	}
	bare := t.TempDir()
	// A file named entries does not count.
	fake := t.TempDir()
	if err := os.WriteFile(filepath.Join(fake, "entries"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !looksLikeCatalog(withEntries) {
		t.Error("Expected entries/ to mark a catalog")
	}
	if !looksLikeCatalog(withManifests) {
		t.Error("Expected manifests/ to mark a catalog")
	}
	if looksLikeCatalog(bare) {
		t.Error("Expected bare directory to not be a catalog")
	}
	if looksLikeCatalog(fake) {
		t.Error("Expected entries file to not mark a catalog")
	}
}

func TestDiscoverCatalogs(t *testing.T) {
	mount := t.TempDir()

	// Catalog at the mount point itself.
	if err := os.MkdirAll(filepath.Join(mount, "entries"), 0755); err != nil {
		t.Fatal(err)
	}
	// Catalog one level down.
	oneDeep := filepath.Join(mount, "catalog")
	if err := os.MkdirAll(filepath.Join(oneDeep, "manifests"), 0755); err != nil {
		t.Fatal(err)
	}
	// Catalog two levels down.
	twoDeep := filepath.Join(mount, "games", "library")
	if err := os.MkdirAll(filepath.Join(twoDeep, "entries"), 0755); err != nil {
		t.Fatal(err)
	}
	// Three levels down is out of reach.
	threeDeep := filepath.Join(mount, "a", "b", "c")
	if err := os.MkdirAll(filepath.Join(threeDeep, "entries"), 0755); err != nil {
		t.Fatal(err)
	}

	found := DiscoverCatalogs([]string{mount})

	want := map[string]bool{mount: true, oneDeep: true, twoDeep: true}
	if len(found) != len(want) {
		t.Fatalf("Expected %d catalogs, got %v", len(want), found)
	}
	for _, path := range found {
		if !want[path] {
			t.Errorf("Unexpected catalog: %s", path)
		}
	}
}

func TestDiscoverCatalogs_Deduplicates(t *testing.T) {
	mount := t.TempDir()
	if err := os.MkdirAll(filepath.Join(mount, "catalog", "entries"), 0755); err != nil {
		t.Fatal(err)
	}

	// The same mount listed twice must not report the catalog twice.
	found := DiscoverCatalogs([]string{mount, mount})
	if len(found) != 1 {
		t.Errorf("Expected 1 catalog after dedup, got %v", found)
	}
}
