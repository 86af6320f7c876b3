package domain

import "time"

// RootKind identifies which side of the reconciliation a root belongs to
type RootKind string

const (
	// RootLocal is the canonical catalog consulted by the client application
	RootLocal RootKind = "local"

	// RootPortable is the catalog on the removable, symlink-incapable drive
	RootPortable RootKind = "portable"
)

// CatalogRoot is one side of the reconciliation: an absolute directory
// path exposing the entries/ and manifests/ subtrees.
// Immutable for the duration of a run; validated to exist before use.
type CatalogRoot struct {
	// Kind indicates local or portable
	Kind RootKind

	// Path is the absolute root directory
	Path string

	// EntriesDir is the absolute path of the entries/ subtree
	EntriesDir string

	// ManifestsDir is the absolute path of the manifests/ subtree
	ManifestsDir string
}

// Entry is a directory representing one installed item.
// Its directory name is the stable identifier shared between catalogs.
type Entry struct {
	// Name is the identifier (the directory name)
	Name string

	// Root indicates which catalog the entry was found in
	Root RootKind

	// Path is the absolute path of the entry directory
	Path string

	// IsLink is true when the local slot is a symlink
	IsLink bool

	// LinkTarget is the current symlink target (only when IsLink)
	LinkTarget string
}

// Manifest is a metadata file named by a numeric identifier.
// Only metadata is recorded; the file is never opened for content.
type Manifest struct {
	// ID is the numeric identifier extracted from the file name
	ID string

	// Name is the manifest file name
	Name string

	// Root indicates which catalog the manifest was found in
	Root RootKind

	// Path is the absolute path of the manifest file
	Path string

	// ModTime is the last modification time
	ModTime time.Time

	// Size in bytes
	Size int64

	// IsLink is true when the local slot is a symlink
	IsLink bool

	// LinkTarget is the current symlink target (only when IsLink)
	LinkTarget string
}

// Inventory is the result of scanning one catalog root: a snapshot of the
// entries and manifests found there. Taken once per run and never
// re-probed mid-plan, so planning stays pure.
type Inventory struct {
	// Root is the catalog root that was scanned
	Root CatalogRoot

	// Entries indexed by name
	Entries map[string]Entry

	// Manifests indexed by numeric identifier
	Manifests map[string]Manifest
}

// NewInventory creates an empty inventory for a catalog root
func NewInventory(root CatalogRoot) *Inventory {
	return &Inventory{
		Root:      root,
		Entries:   make(map[string]Entry),
		Manifests: make(map[string]Manifest),
	}
}
