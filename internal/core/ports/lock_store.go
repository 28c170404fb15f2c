package ports

import "github.com/toolcube/toolcube/internal/core/domain"

// LockStore reads and writes the environment lock file.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Read loads the lock file at path. It returns (nil, nil) when no file
	// exists and domain.ErrUnreadableLock when one exists but cannot be
	// parsed; the caller must then discard the file and treat the
	// environment as requiring full recreation.
	Read(path string) (*domain.Lockfile, error)

	// Write canonicalizes the entry order and overwrites the file at path,
	// so re-reads are deterministic and diff-stable.
	Write(path string, lock *domain.Lockfile) error
}
