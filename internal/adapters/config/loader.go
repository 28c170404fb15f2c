// Package config provides the TOML manifest loader.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/toolcube/toolcube/internal/core/domain"
	"github.com/toolcube/toolcube/internal/core/ports"
	"go.trai.ch/zerr"
)

// manifestFiles are the recognized manifest file names, in lookup order.
var manifestFiles = []string{"tool.toml", "pyproject.toml"}

// Loader implements ports.ManifestLoader for TOML manifests.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new manifest Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// manifest mirrors the TOML layout of a tool definition.
type manifest struct {
	Tool    toolSection    `toml:"tool"`
	Project projectSection `toml:"project"`
}

type toolSection struct {
	Name    string      `toml:"name"`
	Version string      `toml:"version"`
	Run     depsSection `toml:"run"`
	Build   depsSection `toml:"build"`
}

type depsSection struct {
	Dependencies []string `toml:"dependencies"`
}

// projectSection carries the pyproject-style fallback version.
type projectSection struct {
	Version string `toml:"version"`
}

// Load reads the first recognized manifest file in dir and returns the
// validated tool configuration.
func (l *Loader) Load(dir string) (*domain.ToolConfig, error) {
	for _, name := range manifestFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
		}

		var m manifest
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
		}

		l.logger.Debug("loaded manifest", "path", path)
		return l.build(&m, path)
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrMissingManifest, "no manifest found"), "dir", dir)
}

func (l *Loader) build(m *manifest, path string) (*domain.ToolConfig, error) {
	version := m.Tool.Version
	if version == "" {
		version = m.Project.Version
	}
	if version == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingVersion, "invalid tool manifest"), "path", path)
	}

	cfg := &domain.ToolConfig{
		Name:            m.Tool.Name,
		Version:         version,
		RunDependencies: m.Tool.Run.Dependencies,
		Build: domain.BuildConfig{
			Dependencies: m.Tool.Build.Dependencies,
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}
