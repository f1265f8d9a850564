package manifeststore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reprokit/domain/manifest"
	"reprokit/internal/errors"
)

func TestPersistAndLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	// float64 values so JSON decoding reproduces the map exactly
	m, err := manifest.Build("roundtrip", 42, map[string]any{
		"learning_rate": 0.001,
		"batch_size":    float64(32),
	})
	require.NoError(t, err)

	path, err := store.Persist(m)
	require.NoError(t, err)
	assert.Equal(t, m.Filename(), filepath.Base(path))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
	assert.NoError(t, loaded.VerifyChecksum())
}

func TestPersistCreatesParentDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "experiments")
	store := New(dir)

	m, err := manifest.Build("nested", 7, nil)
	require.NoError(t, err)

	path, err := store.Persist(m)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestPersistFailsLoudly(t *testing.T) {
	// a regular file where the directory should be makes MkdirAll fail
	base := t.TempDir()
	blocked := filepath.Join(base, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	store := New(filepath.Join(blocked, "sub"))
	m, err := manifest.Build("doomed", 1, nil)
	require.NoError(t, err)

	_, err = store.Persist(m)
	require.Error(t, err)
	assert.Equal(t, errors.CodePersistenceFailed, errors.GetCode(err))
	assert.Contains(t, err.Error(), "blocked")
}

func TestLoadNamedRejectsPathSeparators(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.LoadNamed("../escape.json")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestListEmptyDirIsNotAnError(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing"))
	manifests, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, manifests)
}

func TestListReturnsPersistedManifests(t *testing.T) {
	store := New(t.TempDir())

	first, err := manifest.Build("exp_a", 1, nil)
	require.NoError(t, err)
	_, err = store.Persist(first)
	require.NoError(t, err)

	second, err := manifest.Build("exp_b", 2, nil)
	require.NoError(t, err)
	_, err = store.Persist(second)
	require.NoError(t, err)

	// non-manifest files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o644))

	manifests, err := store.List()
	require.NoError(t, err)
	require.Len(t, manifests, 2)
	names := []string{manifests[0].Name, manifests[1].Name}
	assert.ElementsMatch(t, []string{"exp_a", "exp_b"}, names)
}
