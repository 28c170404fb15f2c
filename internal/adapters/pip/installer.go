// Package pip provides the installer adapter that layers pip packages into
// a created environment.
package pip

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/toolcube/toolcube/internal/core/ports"
	"go.trai.ch/zerr"
)

// Installer implements ports.Installer using the environment's own Python.
type Installer struct {
	logger ports.Logger
}

// NewInstaller creates a new pip Installer.
func NewInstaller(logger ports.Logger) *Installer {
	return &Installer{logger: logger}
}

// Install runs "<envDir>/bin/python3 -m pip install" with the given
// arguments, streaming output into the current telemetry vertex.
func (i *Installer) Install(ctx context.Context, envDir string, args []string) error {
	python := filepath.Join(envDir, "bin", "python3")
	cmdArgs := append([]string{"-m", "pip", "install"}, args...)
	i.logger.Debug("installing pip packages", "python", python, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, python, cmdArgs...) //nolint:gosec // python lives inside the environment we created

	var stderr bytes.Buffer
	stdout := io.Discard
	errOut := io.Writer(&stderr)
	if v := ports.VertexFromContext(ctx); v != nil {
		stdout = v.Stdout()
		errOut = io.MultiWriter(&stderr, v.Stderr())
	}
	cmd.Stdout = stdout
	cmd.Stderr = errOut

	if err := cmd.Run(); err != nil {
		installErr := zerr.Wrap(err, "pip install failed")
		return zerr.With(installErr, "stderr", strings.TrimSpace(stderr.String()))
	}
	return nil
}
