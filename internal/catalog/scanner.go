// Package catalog resolves catalog roots and takes inventory snapshots
// of their entries/ and manifests/ subtrees. Scans read metadata only;
// manifest files are never opened for content.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/avitali/liblink/internal/domain"
	"github.com/avitali/liblink/internal/logger"
)

// manifestPattern matches manifest file names and captures the numeric
// identifier, e.g. appmanifest_440.acf -> 440.
var manifestPattern = regexp.MustCompile(`^appmanifest_(\d+)\.acf$`)

// ManifestName returns the manifest file name for an identifier
func ManifestName(id string) string {
	return "appmanifest_" + id + ".acf"
}

// Scan lists the immediate children of a root's entries/ and manifests/
// subtrees and produces a normalized inventory. A missing subtree yields
// an empty inventory; an unreadable one is fatal for the run and reported
// as domain.ErrRootUnreadable.
func Scan(root domain.CatalogRoot) (*domain.Inventory, error) {
	inv := domain.NewInventory(root)

	if err := scanEntries(root, inv); err != nil {
		return nil, err
	}
	if err := scanManifests(root, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func scanEntries(root domain.CatalogRoot, inv *domain.Inventory) error {
	children, err := os.ReadDir(root.EntriesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrRootUnreadable, root.EntriesDir, err)
	}

	log := logger.Get()
	for _, child := range children {
		path := filepath.Join(root.EntriesDir, child.Name())

		entry := domain.Entry{
			Name: child.Name(),
			Root: root.Kind,
			Path: path,
		}

		switch {
		case child.Type()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				log.Warn("unreadable symlink in entries, skipping",
					"root", root.Kind, "name", child.Name(), "error", err)
				continue
			}
			entry.IsLink = true
			entry.LinkTarget = target
		case child.IsDir():
			// A real installed item directory.
		default:
			log.Warn("ignoring non-directory in entries",
				"root", root.Kind, "name", child.Name())
			continue
		}

		inv.Entries[entry.Name] = entry
	}

	return nil
}

func scanManifests(root domain.CatalogRoot, inv *domain.Inventory) error {
	children, err := os.ReadDir(root.ManifestsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrRootUnreadable, root.ManifestsDir, err)
	}

	for _, child := range children {
		if child.IsDir() {
			continue
		}
		m := manifestPattern.FindStringSubmatch(child.Name())
		if m == nil {
			// Any other file is ignored by convention.
			continue
		}

		path := filepath.Join(root.ManifestsDir, child.Name())
		manifest := domain.Manifest{
			ID:   m[1],
			Name: child.Name(),
			Root: root.Kind,
			Path: path,
		}

		if child.Type()&os.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err == nil {
				manifest.IsLink = true
				manifest.LinkTarget = target
			}
			// Follow the link for metadata. A broken link keeps zero
			// values; the planner only needs the target for links.
			if info, err := os.Stat(path); err == nil {
				manifest.ModTime = info.ModTime()
				manifest.Size = info.Size()
			}
		} else {
			info, err := child.Info()
			if err != nil {
				continue
			}
			manifest.ModTime = info.ModTime()
			manifest.Size = info.Size()
		}

		inv.Manifests[manifest.ID] = manifest
	}

	return nil
}

// Orphans reports local symlinked identifiers whose portable twin is
// gone. Read-only: the reconciliation engine is additive and never
// prunes; callers surface these for a separate, explicit cleanup.
func Orphans(local, portable *domain.Inventory) []domain.Issue {
	var orphans []domain.Issue

	for name, e := range local.Entries {
		if !e.IsLink {
			continue
		}
		if _, ok := portable.Entries[name]; !ok {
			orphans = append(orphans, domain.Issue{
				Slot:   domain.SlotEntry,
				ID:     name,
				Reason: "local symlink has no portable entry",
			})
		}
	}
	for id, m := range local.Manifests {
		if !m.IsLink {
			continue
		}
		if _, ok := portable.Manifests[id]; !ok {
			orphans = append(orphans, domain.Issue{
				Slot:   domain.SlotManifest,
				ID:     id,
				Reason: "local symlink has no portable manifest",
			})
		}
	}

	sort.Slice(orphans, func(i, j int) bool {
		if orphans[i].Slot != orphans[j].Slot {
			return orphans[i].Slot == domain.SlotEntry
		}
		return orphans[i].ID < orphans[j].ID
	})

	return orphans
}
