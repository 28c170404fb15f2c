// Package ledger provides the JSON version-ledger store.
package ledger

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/toolcube/toolcube/internal/core/domain"
	"github.com/toolcube/toolcube/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileName is the ledger file name inside a tool's install parent directory.
const FileName = ".versions.json"

// Store implements ports.LedgerStore on top of a flat JSON file.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new ledger Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Read loads the ledger at path, returning (nil, nil) when no file exists.
func (s *Store) Read(path string) (domain.Ledger, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is under the install prefix
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read version ledger"), "path", path)
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse version ledger"), "path", path)
	}
	return ledger, nil
}

// Write persists the ledger at path, creating parent directories as needed.
func (s *Store) Write(path string, ledger domain.Ledger) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return zerr.Wrap(err, "failed to create ledger directory")
	}
	data, err := json.MarshalIndent(ledger, "", "   ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal version ledger")
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write version ledger"), "path", path)
	}
	s.logger.Debug("wrote version ledger", "path", path, "latest", ledger.Latest())
	return nil
}
