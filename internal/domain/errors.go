package domain

import "errors"

// Catalog errors
var (
	// ErrCatalogNotFound indicates a catalog root does not exist
	ErrCatalogNotFound = errors.New("catalog root not found")

	// ErrNotDirectory indicates a catalog root is not a directory
	ErrNotDirectory = errors.New("not a directory")

	// ErrRootUnreadable indicates a required subtree could not be read.
	// Fatal: the engine cannot reconcile against an unreadable root.
	ErrRootUnreadable = errors.New("catalog root unreadable")
)

// Export errors
var (
	// ErrNoManifests indicates there was nothing to export
	ErrNoManifests = errors.New("no manifest files found")
)

// Config errors
var (
	// ErrConfigNotFound indicates config file not found
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates config file is malformed
	ErrConfigInvalid = errors.New("invalid config")
)

// Collaborator errors
var (
	// ErrMountNotFound indicates the mount point for a path could not
	// be determined from the mount table
	ErrMountNotFound = errors.New("mount point not found")

	// ErrUUIDNotFound indicates the device UUID could not be detected
	ErrUUIDNotFound = errors.New("device uuid not found")

	// ErrRuntimeMissing indicates the runtime directory is absent on
	// the portable side
	ErrRuntimeMissing = errors.New("runtime directory not found on portable side")
)
