package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ToolConfig is the validated manifest of a tool definition directory.
type ToolConfig struct {
	// Name is the tool name, used for the install subdirectory and the
	// share directory.
	Name string

	// Version is the declared tool version (tool.version, falling back to
	// project.version) and doubles as the ledger version tag.
	Version string

	// RunDependencies are the dependency specifiers of the tool's runtime
	// environment.
	RunDependencies []string

	// Build configures the optional build step.
	Build BuildConfig
}

// BuildConfig configures the transient build environment.
type BuildConfig struct {
	// Dependencies are the specifiers installed into the build environment.
	Dependencies []string
}

// Validate checks mandatory fields and that every declared dependency is a
// parseable specifier. Validation errors surface before any destructive
// filesystem operation.
func (c *ToolConfig) Validate() error {
	if c.Name == "" {
		return zerr.With(zerr.Wrap(ErrMissingMandatoryField, "invalid tool manifest"), "field", "tool.name")
	}
	if c.Version == "" {
		return ErrMissingVersion
	}
	for _, dep := range c.RunDependencies {
		if _, err := ParseSpecifier(dep); err != nil {
			return err
		}
	}
	for _, dep := range c.Build.Dependencies {
		if _, err := ParseSpecifier(dep); err != nil {
			return err
		}
	}
	return nil
}

// EnvVersion returns the version normalized for use as the install
// subdirectory name: lower-cased with any leading or trailing "v" trimmed.
func (c *ToolConfig) EnvVersion() string {
	return strings.Trim(strings.ToLower(c.Version), "v")
}
