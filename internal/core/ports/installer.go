package ports

import "context"

// Installer layers additional pip-installable packages into an existing
// environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install runs the environment's installer with the given arguments,
	// e.g. ["-r", "requirements.txt"] or a local project path.
	Install(ctx context.Context, envDir string, args []string) error
}
