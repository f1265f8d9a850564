package app

import (
	"reprokit/domain/manifest"
	"reprokit/internal"
	"reprokit/ports"
)

// ManifestService builds experiment manifests and persists them through
// the configured store.
type ManifestService struct {
	store  ports.ManifestStorePort
	logger *internal.Logger
}

// NewManifestService creates a manifest service over the given store
func NewManifestService(store ports.ManifestStorePort) *ManifestService {
	return &ManifestService{
		store:  store,
		logger: internal.DefaultLogger,
	}
}

// Record builds a checksummed manifest and persists it, returning the
// manifest and the path it was written to
func (s *ManifestService) Record(name string, seed int64, params map[string]any) (*manifest.Manifest, string, error) {
	m, err := manifest.Build(name, seed, params)
	if err != nil {
		return nil, "", err
	}
	path, err := s.store.Persist(m)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("experiment %s recorded at %s (checksum %s)", name, path, m.Checksum)
	return m, path, nil
}

// Store returns the underlying manifest store
func (s *ManifestService) Store() ports.ManifestStorePort {
	return s.store
}
