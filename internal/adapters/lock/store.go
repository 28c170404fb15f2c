// Package lock provides the YAML lock-file store.
package lock

import (
	"errors"
	"io/fs"
	"os"

	"github.com/toolcube/toolcube/internal/core/domain"
	"github.com/toolcube/toolcube/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const filePerm = 0o644

// FileName is the runtime lock file name inside a tool definition directory.
const FileName = "environment.yml"

// BuildFileName is the lock file name of the transient build environment.
const BuildFileName = "build-environment.yml"

// document mirrors the on-disk lock-file layout.
type document struct {
	Channels     []string `yaml:"channels"`
	Dependencies []string `yaml:"dependencies"`
}

// Store implements ports.LockStore on top of a YAML file.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new lock-file Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Read loads the lock file at path. A missing file yields (nil, nil); an
// existing file that cannot be parsed yields domain.ErrUnreadableLock.
func (s *Store) Read(path string) (*domain.Lockfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path lives in the tool directory
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read lock file"), "path", path)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// Wrap keeps the sentinel as cause so errors.Is still matches.
		unreadable := zerr.With(zerr.Wrap(domain.ErrUnreadableLock, "failed to parse lock file"), "path", path)
		return nil, zerr.With(unreadable, "parse_error", err.Error())
	}
	return &domain.Lockfile{
		Channels:     doc.Channels,
		Dependencies: doc.Dependencies,
	}, nil
}

// Write canonicalizes the entry order and overwrites the file at path.
func (s *Store) Write(path string, lock *domain.Lockfile) error {
	lock.Canonicalize()
	data, err := yaml.Marshal(document{
		Channels:     lock.Channels,
		Dependencies: lock.Dependencies,
	})
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lock file")
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lock file"), "path", path)
	}
	s.logger.Debug("wrote lock file", "path", path, "entries", len(lock.Dependencies))
	return nil
}
