// Package mounts discovers portable catalog roots on removable exFAT
// filesystems. Discovery is a convenience for the caller layer; the
// engine itself never probes for paths.
package mounts

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/avitali/liblink/internal/catalog"
)

// exfatSuperMagic is the statfs magic for kernel exFAT mounts. FUSE
// based exFAT drivers report the FUSE magic instead, so the mount-table
// filesystem name stays the primary signal.
const exfatSuperMagic = 0x2011bab0

// exfatNames are the mount-table filesystem types treated as exFAT
var exfatNames = map[string]bool{
	"exfat":      true,
	"fuse.exfat": true,
	"exfat-fuse": true,
}

// DetectExfat returns mount points whose filesystem is exFAT
func DetectExfat() []string {
	f, err := os.Open("/proc/mounts")
	if err != nil {
		return nil
	}
	defer f.Close()

	var points []string
	for _, p := range parseExfat(f) {
		if _, err := os.Stat(p); err == nil {
			points = append(points, p)
		}
	}
	return points
}

func parseExfat(r io.Reader) []string {
	var points []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		if exfatNames[strings.ToLower(fields[2])] {
			points = append(points, strings.ReplaceAll(fields[1], `\040`, " "))
		}
	}
	return points
}

// IsExfat reports whether the filesystem backing path identifies as
// exFAT via statfs. Best effort: FUSE drivers hide the real magic, so a
// false here does not rule exFAT out.
func IsExfat(path string) bool {
	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		return false
	}
	return uint32(fs.Type) == exfatSuperMagic
}

// DiscoverCatalogs probes each mount point for portable catalog roots:
// directories exposing an entries/ or manifests/ subtree, up to two
// levels below the mount point. Returns deduplicated absolute paths.
func DiscoverCatalogs(mountPoints []string) []string {
	var found []string
	seen := make(map[string]bool)

	register := func(path string) {
		if !looksLikeCatalog(path) {
			return
		}
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			resolved = path
		}
		if !seen[resolved] {
			seen[resolved] = true
			found = append(found, path)
		}
	}

	for _, mount := range mountPoints {
		register(mount)

		children, err := os.ReadDir(mount)
		if err != nil {
			continue
		}
		for _, child := range children {
			if !child.IsDir() {
				continue
			}
			childPath := filepath.Join(mount, child.Name())
			register(childPath)

			subs, err := os.ReadDir(childPath)
			if err != nil {
				continue
			}
			for _, sub := range subs {
				if sub.IsDir() {
					register(filepath.Join(childPath, sub.Name()))
				}
			}
		}
	}

	return found
}

func looksLikeCatalog(path string) bool {
	for _, sub := range []string{catalog.EntriesDirName, catalog.ManifestsDirName} {
		if info, err := os.Stat(filepath.Join(path, sub)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
