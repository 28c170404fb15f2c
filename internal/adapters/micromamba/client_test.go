package micromamba_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolcube/toolcube/internal/adapters/logger"
	"github.com/toolcube/toolcube/internal/adapters/micromamba"
)

// fakeBinary writes an executable shell script standing in for micromamba.
func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binary scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "micromamba")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestManager_CreateArguments(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	m := micromamba.NewManager(logger.New())
	m.SetBinary(fakeBinary(t, `echo "$@" > `+argsFile+"\n"))

	err := m.Create(t.Context(), "/tmp/env", []string{"conda-forge"}, []string{"jq", "numpy>=1.20"})
	require.NoError(t, err)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t,
		"create -c conda-forge -p /tmp/env -y --strict-channel-priority jq numpy>=1.20\n",
		string(args))
}

func TestManager_CreateFromLockArguments(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	m := micromamba.NewManager(logger.New())
	m.SetBinary(fakeBinary(t, `echo "$@" > `+argsFile+"\n"))

	err := m.CreateFromLock(t.Context(), "/tmp/env", "/src/environment.yml")
	require.NoError(t, err)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "env create -y -p /tmp/env --file /src/environment.yml\n", string(args))
}

func TestManager_CreateFailureCapturesStderr(t *testing.T) {
	m := micromamba.NewManager(logger.New())
	m.SetBinary(fakeBinary(t, "echo 'solver conflict' >&2\nexit 2\n"))

	err := m.Create(t.Context(), "/tmp/env", []string{"conda-forge"}, []string{"jq"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "environment creation failed")
}

func TestManager_Export(t *testing.T) {
	m := micromamba.NewManager(logger.New())
	m.SetBinary(fakeBinary(t, `cat <<'YAML'
name: base
channels:
  - conda-forge
dependencies:
  - jq=1.7.1=ha614eb4_0
  - numpy=1.26.4=py312heda63a1_0
  - pip:
      - requests==2.31.0
YAML
`))

	lock, err := m.Export(t.Context(), "/tmp/env")
	require.NoError(t, err)
	assert.Equal(t, []string{"conda-forge"}, lock.Channels)
	// The nested pip section is not a conda pin and is skipped.
	assert.Equal(t, []string{"jq=1.7.1=ha614eb4_0", "numpy=1.26.4=py312heda63a1_0"}, lock.Dependencies)
}

func TestManager_ExportUnparsableOutput(t *testing.T) {
	m := micromamba.NewManager(logger.New())
	m.SetBinary(fakeBinary(t, "echo '\t{unparsable'\n"))

	_, err := m.Export(t.Context(), "/tmp/env")
	assert.Error(t, err)
}
