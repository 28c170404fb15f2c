package ports

import "github.com/toolcube/toolcube/internal/core/domain"

// ManifestLoader loads and validates the tool manifest from a tool
// definition directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads tool.toml (or pyproject.toml) from dir and returns the
	// validated configuration.
	Load(dir string) (*domain.ToolConfig, error)
}
