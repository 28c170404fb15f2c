package lock_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolcube/toolcube/internal/adapters/lock"
	"github.com/toolcube/toolcube/internal/adapters/logger"
	"github.com/toolcube/toolcube/internal/core/domain"
)

func newStore() *lock.Store {
	return lock.NewStore(logger.New())
}

func TestStore_ReadMissingFile(t *testing.T) {
	lf, err := newStore().Read(filepath.Join(t.TempDir(), "environment.yml"))
	require.NoError(t, err)
	assert.Nil(t, lf)
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment.yml")
	in := &domain.Lockfile{
		Channels:     []string{"conda-forge"},
		Dependencies: []string{"zlib=1.2.13=h166bdaf_0", "numpy=1.20.0=py39"},
	}

	require.NoError(t, newStore().Write(path, in))

	out, err := newStore().Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"conda-forge"}, out.Channels)
	// Entries are canonicalized lexicographically on write.
	assert.Equal(t, []string{"numpy=1.20.0=py39", "zlib=1.2.13=h166bdaf_0"}, out.Dependencies)
}

func TestStore_WriteIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yml")
	b := filepath.Join(dir, "b.yml")

	require.NoError(t, newStore().Write(a, &domain.Lockfile{
		Channels:     []string{"conda-forge"},
		Dependencies: []string{"scipy=1.5.0=py38", "numpy=1.20.0=py38"},
	}))
	require.NoError(t, newStore().Write(b, &domain.Lockfile{
		Channels:     []string{"conda-forge"},
		Dependencies: []string{"numpy=1.20.0=py38", "scipy=1.5.0=py38"},
	}))

	dataA, err := os.ReadFile(a)
	require.NoError(t, err)
	dataB, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, string(dataA), string(dataB))
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment.yml")
	require.NoError(t, os.WriteFile(path, []byte("dependencies: [unclosed\n\t"), 0o600))

	_, err := newStore().Read(path)
	if !errors.Is(err, domain.ErrUnreadableLock) {
		t.Fatalf("expected ErrUnreadableLock, got %v", err)
	}
}
