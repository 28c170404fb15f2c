package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

// specifierPattern matches a package name optionally followed by a version
// constraint expression, e.g. "numpy", "numpy>=1.20" or "python~=3.11,<3.13".
var specifierPattern = regexp.MustCompile(`^([A-Za-z0-9_-]+)([<>=!~^].*)?$`)

// Specifier is a requested dependency: a package name plus an optional
// version constraint expression.
type Specifier struct {
	// Name is the bare package name, matching [A-Za-z0-9_-]+.
	Name string

	// Constraint is the raw constraint expression, empty for a bare name.
	Constraint string
}

// ParseSpecifier splits a dependency string into its package name and
// constraint expression. It returns ErrInvalidSpecifier when the string does
// not match the expected pattern.
func ParseSpecifier(raw string) (Specifier, error) {
	m := specifierPattern.FindStringSubmatch(raw)
	if m == nil {
		return Specifier{}, zerr.With(zerr.Wrap(ErrInvalidSpecifier, "failed to parse dependency"), "specifier", raw)
	}
	return Specifier{Name: m[1], Constraint: m[2]}, nil
}

// String reassembles the original specifier string.
func (s Specifier) String() string {
	return s.Name + s.Constraint
}
