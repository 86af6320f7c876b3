package compare

import "github.com/avitali/liblink/internal/domain"

// Comparer decides freshness ordering between a local manifest and its
// portable twin
type Comparer interface {
	// Compare returns the freshness of the pair. local is nil when no
	// local manifest exists.
	Compare(local *domain.Manifest, portable domain.Manifest) domain.Freshness
}

// MetadataComparer orders manifests by modification time, falling back
// to size on an exact timestamp tie. Contents are never read; only
// metadata freshness is compared.
type MetadataComparer struct{}

// NewMetadataComparer creates a new MetadataComparer
func NewMetadataComparer() *MetadataComparer {
	return &MetadataComparer{}
}

// Compare implements the Comparer interface
func (c *MetadataComparer) Compare(local *domain.Manifest, portable domain.Manifest) domain.Freshness {
	if local == nil {
		return domain.LocalMissing
	}

	// Use Equal/After rather than == to handle platform-specific
	// timestamp precision.
	if local.ModTime.After(portable.ModTime) {
		return domain.LocalNewer
	}
	if portable.ModTime.After(local.ModTime) {
		return domain.PortableNewer
	}

	// Exact timestamp tie: the larger file is treated as fresher.
	if local.Size > portable.Size {
		return domain.LocalNewer
	}
	if portable.Size > local.Size {
		return domain.PortableNewer
	}

	return domain.Equal
}
