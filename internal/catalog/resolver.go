package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avitali/liblink/internal/domain"
)

const (
	// EntriesDirName is the subtree holding installed item directories
	EntriesDirName = "entries"

	// ManifestsDirName is the subtree holding manifest files
	ManifestsDirName = "manifests"
)

// Resolve validates a catalog root path and produces the canonical
// absolute paths for its entries/ and manifests/ subtrees.
// The root itself must exist and be a directory; the subtrees may be
// missing (a freshly initialized catalog may lack one).
func Resolve(kind domain.RootKind, root string) (domain.CatalogRoot, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return domain.CatalogRoot{}, fmt.Errorf("resolving %s root: %w", kind, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.CatalogRoot{}, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, absRoot)
		}
		return domain.CatalogRoot{}, fmt.Errorf("%w: %s: %v", domain.ErrRootUnreadable, absRoot, err)
	}
	if !info.IsDir() {
		return domain.CatalogRoot{}, fmt.Errorf("%w: %s", domain.ErrNotDirectory, absRoot)
	}

	return domain.CatalogRoot{
		Kind:         kind,
		Path:         absRoot,
		EntriesDir:   filepath.Join(absRoot, EntriesDirName),
		ManifestsDir: filepath.Join(absRoot, ManifestsDirName),
	}, nil
}
