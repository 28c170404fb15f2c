package ports

import "context"

// Bootstrapper provisions the package-manager binary itself.
//
//go:generate go run go.uber.org/mock/mockgen -source=bootstrapper.go -destination=mocks/mock_bootstrapper.go -package=mocks
type Bootstrapper interface {
	// Fetch downloads and unpacks the manager into destDir and returns the
	// path to the executable. destDir is caller-owned scratch space and is
	// removed when the invocation ends.
	Fetch(ctx context.Context, destDir string) (string, error)
}
