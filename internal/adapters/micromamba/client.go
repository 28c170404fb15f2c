package micromamba

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/toolcube/toolcube/internal/core/domain"
	"github.com/toolcube/toolcube/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Manager implements ports.PackageManager by driving the micromamba CLI.
type Manager struct {
	binary string
	logger ports.Logger
}

// NewManager creates a Manager. Until SetBinary is called it falls back to
// resolving "micromamba" on PATH.
func NewManager(logger ports.Logger) *Manager {
	return &Manager{binary: "micromamba", logger: logger}
}

// SetBinary points the manager at a freshly bootstrapped binary.
func (m *Manager) SetBinary(path string) {
	m.binary = path
}

// Create builds a fresh environment at prefix from the given specifiers.
func (m *Manager) Create(ctx context.Context, prefix string, channels, specs []string) error {
	args := []string{"create"}
	for _, channel := range channels {
		args = append(args, "-c", channel)
	}
	args = append(args, "-p", prefix, "-y", "--strict-channel-priority")
	args = append(args, specs...)
	return m.run(ctx, args)
}

// CreateFromLock recreates an environment at prefix from a lock file.
func (m *Manager) CreateFromLock(ctx context.Context, prefix, lockPath string) error {
	return m.run(ctx, []string{"env", "create", "-y", "-p", prefix, "--file", lockPath})
}

// exportDocument mirrors the manager's "env export" YAML output. Dependency
// entries may be plain pin strings or nested sections (e.g. pip); only pin
// strings participate in reconciliation.
type exportDocument struct {
	Channels     []string `yaml:"channels"`
	Dependencies []any    `yaml:"dependencies"`
}

// Export returns the concrete resolved state of the environment at prefix.
func (m *Manager) Export(ctx context.Context, prefix string) (*domain.Lockfile, error) {
	//nolint:gosec // binary was bootstrapped by us, prefix is derived from config
	cmd := exec.CommandContext(ctx, m.binary, "env", "export", "-p", prefix)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exportErr := zerr.Wrap(exitErr, "environment export failed")
			return nil, zerr.With(exportErr, "stderr", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, zerr.Wrap(err, "environment export failed")
	}

	var doc exportDocument
	if err := yaml.Unmarshal(output, &doc); err != nil {
		return nil, zerr.Wrap(err, "failed to parse environment export")
	}

	lock := &domain.Lockfile{Channels: doc.Channels}
	for _, dep := range doc.Dependencies {
		if pin, ok := dep.(string); ok {
			lock.Append(pin)
		}
	}
	return lock, nil
}

// run executes the manager binary, streaming output into the current
// telemetry vertex when one is recording.
func (m *Manager) run(ctx context.Context, args []string) error {
	m.logger.Debug("running package manager", "binary", m.binary, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, m.binary, args...) //nolint:gosec // binary was bootstrapped by us

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
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		runErr := zerr.Wrap(err, domain.ErrEnvironmentCreationFailed.Error())
		runErr = zerr.With(runErr, "exit_code", exitCode)
		return zerr.With(runErr, "stderr", strings.TrimSpace(stderr.String()))
	}
	return nil
}
