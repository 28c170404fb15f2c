package ports

import (
	"context"

	"github.com/toolcube/toolcube/internal/core/domain"
)

// PackageManager drives the external environment manager binary. It is a
// black-box collaborator: the core never inspects how packages are solved.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// SetBinary points the manager at a freshly bootstrapped binary. Before
	// the first call the manager falls back to looking the binary up on
	// PATH.
	SetBinary(path string)

	// Create builds a fresh environment at prefix from the given package
	// specifiers and channels.
	Create(ctx context.Context, prefix string, channels, specs []string) error

	// CreateFromLock recreates an environment at prefix from a lock file.
	CreateFromLock(ctx context.Context, prefix, lockPath string) error

	// Export returns the concrete resolved state of the environment at
	// prefix as a lock file with exact pins.
	Export(ctx context.Context, prefix string) (*domain.Lockfile, error)
}
