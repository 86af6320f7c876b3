package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/avitali/liblink/internal/domain"
	"github.com/avitali/liblink/internal/logger"
)

// Result summarizes one export run
type Result struct {
	// Copied counts manifests written to the portable side
	Copied int

	// SkippedNewer counts manifests left alone because the portable
	// copy was newer and overwrite was not allowed
	SkippedNewer int

	// SkippedSame counts local symlinks that already resolve to the
	// portable copy (copying onto itself)
	SkippedSame int

	// CopiedIDs lists the identifiers written
	CopiedIDs []string

	// Failures lists per-manifest copy errors
	Failures []domain.Issue
}

// Run copies local manifests onto the portable side. Manifests the
// guard flags as newer-on-portable are skipped unless allowOverwrite is
// set; the caller is expected to have confirmed that via Decisions.
// Nothing is ever deleted from either side.
func Run(local, portable *domain.Inventory, allowOverwrite bool) (*Result, error) {
	if len(local.Manifests) == 0 {
		return nil, domain.ErrNoManifests
	}

	result := &Result{}
	log := logger.Get()

	for _, id := range sortedManifestIDs(local) {
		lm := local.Manifests[id]
		dest := filepath.Join(portable.Root.ManifestsDir, lm.Name)

		if lm.IsLink && filepath.Clean(lm.LinkTarget) == filepath.Clean(dest) {
			// The local slot is already a symlink to the portable copy.
			result.SkippedSame++
			continue
		}

		var pm *domain.Manifest
		if twin, ok := portable.Manifests[id]; ok {
			pm = &twin
		}
		if Check(lm, pm) == domain.ExportWarnNewerOnPortable && !allowOverwrite {
			result.SkippedNewer++
			log.Warn("skipping export, newer manifest on portable side", "id", id)
			continue
		}

		if err := copyManifest(lm.Path, dest); err != nil {
			result.Failures = append(result.Failures, domain.Issue{
				Slot:   domain.SlotManifest,
				ID:     id,
				Reason: err.Error(),
			})
			log.Error("export failed", "id", id, "error", err)
			continue
		}

		result.Copied++
		result.CopiedIDs = append(result.CopiedIDs, id)
	}

	return result, nil
}

// copyManifest writes src over dest via a temp file and rename, then
// carries the source modification time over so freshness comparisons
// stay meaningful after the copy.
func copyManifest(src, dest string) error {
	// Opening src follows a local symlink to the real source file.
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create manifests dir: %w", err)
	}

	tmp := dest + ".liblink.tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		os.Remove(tmp)
		return copyErr
	}
	if closeErr != nil {
		os.Remove(tmp)
		return closeErr
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename into place: %w", err)
	}

	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserve mtime: %w", err)
	}

	return nil
}

func sortedManifestIDs(inv *domain.Inventory) []string {
	ids := make([]string, 0, len(inv.Manifests))
	for id := range inv.Manifests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
