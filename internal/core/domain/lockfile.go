package domain

import (
	"slices"
	"strings"
)

// Lockfile is the persisted record of exactly which package versions are
// installed for a tool's environment, plus the channels they came from.
// Entries are unique by package name.
type Lockfile struct {
	// Channels is the ordered list of package channels.
	Channels []string

	// Dependencies is the ordered list of pin strings. A fully pinned entry
	// has the form "name=version=build"; entries appended by the staleness
	// evaluator may still be raw requested specifiers until the next export
	// replaces them with exact resolved pins.
	Dependencies []string
}

// Entries reconstructs the pinned packages as a map from package name to
// version components, splitting each pin string on "=". Raw specifier
// entries carry no pin and are not reported.
func (l *Lockfile) Entries() map[string][]string {
	entries := make(map[string][]string, len(l.Dependencies))
	for _, pin := range l.Dependencies {
		parts := strings.Split(pin, "=")
		if len(parts) < 2 {
			continue
		}
		entries[parts[0]] = parts[1:]
	}
	return entries
}

// Append adds a raw dependency entry to the lock file.
func (l *Lockfile) Append(spec string) {
	l.Dependencies = append(l.Dependencies, spec)
}

// RemovePackage drops every entry whose package name equals name, whether it
// is a resolved pin or a raw specifier. Entries of other packages, including
// ones sharing the name as a prefix, are never touched.
func (l *Lockfile) RemovePackage(name string) {
	l.Dependencies = slices.DeleteFunc(l.Dependencies, func(pin string) bool {
		return pinName(pin) == name
	})
}

// Canonicalize sorts the dependency list lexicographically by full pin
// string so that identical dependency sets always serialize byte-identical.
func (l *Lockfile) Canonicalize() {
	slices.Sort(l.Dependencies)
}

// pinName returns the leading package identifier of a pin or specifier.
func pinName(pin string) string {
	end := strings.IndexFunc(pin, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return false
		}
		return true
	})
	if end < 0 {
		return pin
	}
	return pin[:end]
}
