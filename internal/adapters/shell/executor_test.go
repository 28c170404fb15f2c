package shell_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolcube/toolcube/internal/adapters/logger"
	"github.com/toolcube/toolcube/internal/adapters/shell"
)

func writeScript(t *testing.T, dir, content string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("build scripts require a POSIX shell")
	}
	path := filepath.Join(dir, "build.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+content), 0o644))
	return path
}

func TestExecutor_RunsInScriptDirectory(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "pwd > out.txt\n")

	e := shell.NewExecutor(logger.New())
	require.NoError(t, e.Run(t.Context(), script, os.Environ()))

	out, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, string(out), filepath.Base(resolved))
}

func TestExecutor_PassesEnvironment(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "echo \"$TOOL_MARKER\" > out.txt\n")

	e := shell.NewExecutor(logger.New())
	env := append(os.Environ(), "TOOL_MARKER=from-test")
	require.NoError(t, e.Run(t.Context(), script, env))

	out, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "from-test\n", string(out))
}

func TestExecutor_MarksScriptExecutable(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "exit 0\n")

	e := shell.NewExecutor(logger.New())
	require.NoError(t, e.Run(t.Context(), script, os.Environ()))

	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111)
}

func TestExecutor_FailureCarriesExitCode(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "echo 'compiler exploded' >&2\nexit 3\n")

	e := shell.NewExecutor(logger.New())
	err := e.Run(t.Context(), script, os.Environ())
	assert.ErrorContains(t, err, "build script failed")
}
