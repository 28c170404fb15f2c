// Package shell provides the build-script executor adapter.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/toolcube/toolcube/internal/core/ports"
	"go.trai.ch/zerr"
)

const scriptPerm = 0o755

// Executor implements ports.BuildRunner using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new build-script Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run executes script in its own directory with env as the full process
// environment. Output streams into the current telemetry vertex when one is
// recording, otherwise into the logger.
func (e *Executor) Run(ctx context.Context, script string, env []string) error {
	if err := os.Chmod(script, scriptPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to mark build script executable"), "script", script)
	}

	cmd := exec.CommandContext(ctx, script) //nolint:gosec // user-provided build script
	cmd.Dir = filepath.Dir(script)
	cmd.Env = env

	var stderr bytes.Buffer
	if v := ports.VertexFromContext(ctx); v != nil {
		cmd.Stdout = v.Stdout()
		cmd.Stderr = io.MultiWriter(&stderr, v.Stderr())
	} else {
		cmd.Stdout = &logWriter{logger: e.logger}
		cmd.Stderr = io.MultiWriter(&stderr, &logWriter{logger: e.logger})
	}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		runErr := zerr.Wrap(err, "build script failed")
		runErr = zerr.With(runErr, "exit_code", exitCode)
		return zerr.With(runErr, "stderr", strings.TrimSpace(stderr.String()))
	}
	return nil
}

// logWriter forwards process output lines to the logger.
type logWriter struct {
	logger ports.Logger
}

func (w *logWriter) Write(p []byte) (int, error) {
	for line := range strings.SplitSeq(strings.TrimSuffix(string(p), "\n"), "\n") {
		w.logger.Info(line)
	}
	return len(p), nil
}
