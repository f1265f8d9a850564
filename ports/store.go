package ports

import (
	"reprokit/domain/manifest"
)

// ManifestStorePort persists and retrieves experiment manifests
type ManifestStorePort interface {
	// Persist writes the manifest to storage and returns the path.
	// Write failures fail loudly with the attempted path; there are
	// no retries and no silent overwrites of a failed write.
	Persist(m *manifest.Manifest) (string, error)

	// Load reads one manifest back from storage
	Load(path string) (*manifest.Manifest, error)

	// List returns every persisted manifest in filename order
	List() ([]*manifest.Manifest, error)
}
