package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidSpecifier is returned when a dependency string does not match
	// the "package name optionally followed by a constraint expression"
	// pattern. This is a configuration authoring error and aborts the run.
	ErrInvalidSpecifier = zerr.New("invalid dependency specifier")

	// ErrUnreadableLock is returned when a lock file exists but cannot be
	// parsed. Callers discard the file and treat the environment as requiring
	// full recreation; this is recoverable, not fatal.
	ErrUnreadableLock = zerr.New("unreadable lock file")

	// ErrMissingVersion is returned when neither tool.version nor
	// project.version is defined in the manifest.
	ErrMissingVersion = zerr.New("tool version is not defined")

	// ErrMissingMandatoryField is returned when the manifest lacks a required
	// field other than the version.
	ErrMissingMandatoryField = zerr.New("missing mandatory manifest field")

	// ErrMissingManifest is returned when the tool directory contains neither
	// a tool.toml nor a pyproject.toml file.
	ErrMissingManifest = zerr.New("tool must be defined in a tool.toml or pyproject.toml file")

	// ErrEnvironmentCreationFailed is returned when the external package
	// manager exits non-zero. The partially built environment tree is deleted
	// before this error propagates.
	ErrEnvironmentCreationFailed = zerr.New("environment creation failed")

	// ErrUnsupportedPlatform is returned when there is no known package
	// manager download source for the current OS/architecture combination.
	// It is raised before any filesystem mutation.
	ErrUnsupportedPlatform = zerr.New("unsupported system or architecture")
)
