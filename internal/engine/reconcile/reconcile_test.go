package reconcile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolcube/toolcube/internal/adapters/logger"
	"github.com/toolcube/toolcube/internal/core/domain"
	"github.com/toolcube/toolcube/internal/engine/reconcile"
)

func newEvaluator() *reconcile.Evaluator {
	return reconcile.NewEvaluator(logger.New())
}

// installedEnv creates an install parent with a latest env dir holding a bin
// directory, and returns both plus a matching ledger.
func installedEnv(t *testing.T) (string, domain.Ledger) {
	t.Helper()
	envParent := t.TempDir()
	latest := filepath.Join(envParent, "1.0.0")
	require.NoError(t, os.MkdirAll(filepath.Join(latest, "bin"), 0o755))
	return envParent, domain.Ledger{"1.0.0": latest, domain.LatestKey: latest}
}

func TestEvaluate_BootstrapWhenArtifactsMissing(t *testing.T) {
	envParent, led := installedEnv(t)
	lock := &domain.Lockfile{Dependencies: []string{"jq=1.7.1=h0"}}

	t.Run("missing lock", func(t *testing.T) {
		recreate, err := newEvaluator().Evaluate([]string{"jq"}, nil, led, envParent)
		require.NoError(t, err)
		assert.True(t, recreate)
	})

	t.Run("missing ledger", func(t *testing.T) {
		recreate, err := newEvaluator().Evaluate([]string{"jq"}, lock, nil, envParent)
		require.NoError(t, err)
		assert.True(t, recreate)
	})

	t.Run("missing install parent", func(t *testing.T) {
		gone := filepath.Join(t.TempDir(), "never-created")
		recreate, err := newEvaluator().Evaluate([]string{"jq"}, lock, led, gone)
		require.NoError(t, err)
		assert.True(t, recreate)
	})
}

func TestEvaluate_SatisfiedEnvironmentIsIdempotent(t *testing.T) {
	envParent, led := installedEnv(t)
	lock := &domain.Lockfile{Dependencies: []string{"jq=1.7.1=h0", "numpy=1.26.4=py312"}}
	requested := []string{"jq", "numpy>=1.20"}

	for range 3 {
		recreate, err := newEvaluator().Evaluate(requested, lock, led, envParent)
		require.NoError(t, err)
		assert.False(t, recreate)
	}
	assert.Equal(t, []string{"jq=1.7.1=h0", "numpy=1.26.4=py312"}, lock.Dependencies)
}

func TestEvaluate_ConstraintViolationReplacesPin(t *testing.T) {
	envParent, led := installedEnv(t)
	lock := &domain.Lockfile{Dependencies: []string{"numpy=1.19.0=py39", "zlib=1.2.13=h5"}}

	recreate, err := newEvaluator().Evaluate([]string{"numpy>=1.20"}, lock, led, envParent)
	require.NoError(t, err)
	assert.True(t, recreate)
	// The violating pin is replaced by the raw specifier; the unrelated pin
	// survives untouched.
	assert.Equal(t, []string{"numpy>=1.20", "zlib=1.2.13=h5"}, lock.Dependencies)
}

func TestEvaluate_NewDependencyAppended(t *testing.T) {
	envParent, led := installedEnv(t)
	lock := &domain.Lockfile{Dependencies: []string{"jq=1.7.1=h0"}}

	recreate, err := newEvaluator().Evaluate([]string{"jq", "requests"}, lock, led, envParent)
	require.NoError(t, err)
	assert.True(t, recreate)
	assert.Contains(t, lock.Dependencies, "requests")
	assert.Contains(t, lock.Dependencies, "jq=1.7.1=h0")
}

func TestEvaluate_LostBinaryDirTriggersRecreate(t *testing.T) {
	envParent, led := installedEnv(t)
	require.NoError(t, os.RemoveAll(filepath.Join(led.Latest(), "bin")))
	lock := &domain.Lockfile{Dependencies: []string{"jq=1.7.1=h0"}}

	recreate, err := newEvaluator().Evaluate([]string{"jq"}, lock, led, envParent)
	require.NoError(t, err)
	assert.True(t, recreate)
}

func TestEvaluate_EmptyRequestedSetNeverRecreates(t *testing.T) {
	envParent, led := installedEnv(t)
	lock := &domain.Lockfile{Dependencies: []string{"jq=1.7.1=h0"}}

	recreate, err := newEvaluator().Evaluate(nil, lock, led, envParent)
	require.NoError(t, err)
	assert.False(t, recreate)
}

func TestEvaluate_UnconstrainedRequestAcceptsAnyPin(t *testing.T) {
	envParent, led := installedEnv(t)
	lock := &domain.Lockfile{Dependencies: []string{"numpy=1.19.0=py39"}}

	recreate, err := newEvaluator().Evaluate([]string{"numpy"}, lock, led, envParent)
	require.NoError(t, err)
	assert.False(t, recreate)
}

func TestEvaluate_RecreateVerdictSortsLock(t *testing.T) {
	envParent, led := installedEnv(t)
	lock := &domain.Lockfile{Dependencies: []string{"zlib=1.2.13=h5", "jq=1.7.1=h0"}}

	recreate, err := newEvaluator().Evaluate([]string{"aria2"}, lock, led, envParent)
	require.NoError(t, err)
	assert.True(t, recreate)
	assert.Equal(t, []string{"aria2", "jq=1.7.1=h0", "zlib=1.2.13=h5"}, lock.Dependencies)
}

func TestEvaluate_MalformedSpecifierFailsWithoutVerdict(t *testing.T) {
	envParent, led := installedEnv(t)
	lock := &domain.Lockfile{Dependencies: []string{"jq=1.7.1=h0"}}

	_, err := newEvaluator().Evaluate([]string{"jq", ">=broken"}, lock, led, envParent)
	assert.ErrorIs(t, err, domain.ErrInvalidSpecifier)
}
