package ports

import "context"

// BuildRunner executes a tool's build script with a prepared environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=build_runner.go -destination=mocks/mock_build_runner.go -package=mocks
type BuildRunner interface {
	// Run executes script in its own directory with env as the full
	// environment ("KEY=VALUE" strings).
	Run(ctx context.Context, script string, env []string) error
}
