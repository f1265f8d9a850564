// Package manifeststore persists experiment manifests as pretty-printed
// JSON files under a single directory. Filenames embed name and timestamp,
// so writes are independent per call; concurrent writers sharing a name
// within the same second could collide, an accepted limitation.
package manifeststore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"reprokit/domain/manifest"
	"reprokit/internal/errors"
)

// FSStore is the filesystem manifest store
type FSStore struct {
	dir string
}

// New creates a store rooted at dir. The directory is created on first
// persist, not here.
func New(dir string) *FSStore {
	return &FSStore{dir: dir}
}

// Dir returns the store's root directory
func (s *FSStore) Dir() string {
	return s.dir
}

// Persist writes the manifest, creating parent directories as needed.
// Failures carry the attempted path and are never retried.
func (s *FSStore) Persist(m *manifest.Manifest) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.PersistenceFailed(s.dir, err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", errors.SerializationFailed("manifest is not JSON-serializable", err)
	}
	path := filepath.Join(s.dir, m.Filename())
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", errors.PersistenceFailed(path, err)
	}
	return path, nil
}

// Load reads one manifest back from disk
func (s *FSStore) Load(path string) (*manifest.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.PersistenceFailed(path, err)
	}
	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.SerializationFailed("manifest file "+path+" is not valid JSON", err)
	}
	return &m, nil
}

// LoadNamed reads a manifest by bare file name within the store directory.
// Names containing path separators are rejected.
func (s *FSStore) LoadNamed(file string) (*manifest.Manifest, error) {
	if file != filepath.Base(file) || file == "." || file == ".." {
		return nil, errors.New(errors.CodeInvalidInput, "manifest file name must not contain path separators")
	}
	return s.Load(filepath.Join(s.dir, file))
}

// List returns every persisted manifest in filename order. A missing
// directory means no manifests yet, not an error.
func (s *FSStore) List() ([]*manifest.Manifest, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.PersistenceFailed(s.dir, err)
	}
	var manifests []*manifest.Manifest
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		m, err := s.Load(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}
