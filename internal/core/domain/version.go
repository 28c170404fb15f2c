package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version is a parsed dot-separated version string such as "1.19.0".
type Version struct {
	raw   string
	parts []string
}

// ParseVersion parses a version string. Any non-empty string is accepted;
// the comparison semantics are defined by Compare.
func ParseVersion(raw string) Version {
	return Version{raw: raw, parts: strings.Split(raw, ".")}
}

// String returns the original version string.
func (v Version) String() string {
	return v.raw
}

// Compare orders two versions component-wise. Components are compared
// numerically when both sides are numeric and lexicographically otherwise.
// A missing component compares as "0", so "1.20" and "1.20.0" are equal.
func (v Version) Compare(o Version) int {
	n := max(len(v.parts), len(o.parts))
	for i := range n {
		a, b := component(v.parts, i), component(o.parts, i)
		if a == b {
			continue
		}
		ai, aerr := strconv.Atoi(a)
		bi, berr := strconv.Atoi(b)
		if aerr == nil && berr == nil {
			if ai == bi {
				continue
			}
			if ai < bi {
				return -1
			}
			return 1
		}
		if a < b {
			return -1
		}
		return 1
	}
	return 0
}

func component(parts []string, i int) string {
	if i >= len(parts) {
		return "0"
	}
	return parts[i]
}

// bump returns the smallest version excluded by a compatible-release clause:
// the last component is dropped and the new final component incremented,
// e.g. 1.4.2 -> 1.5 and 2.1 -> 3.
func (v Version) bump() Version {
	parts := make([]string, len(v.parts))
	copy(parts, v.parts)
	if len(parts) >= 2 {
		parts = parts[:len(parts)-1]
	}
	last := len(parts) - 1
	if n, err := strconv.Atoi(parts[last]); err == nil {
		parts[last] = strconv.Itoa(n + 1)
	}
	return Version{raw: strings.Join(parts, "."), parts: parts}
}

// Constraint is a parsed version constraint expression: a comma-separated
// list of clauses that must all hold for a version to match.
//
// The supported operators are a contract boundary and are exhaustively:
// ==, !=, <, <=, >, >= and ~= (compatible release: ~=X.Y.Z is equivalent
// to >=X.Y.Z,<X.(Y+1)). Any other operator is rejected with
// ErrInvalidSpecifier.
type Constraint struct {
	clauses []clause
}

type clause struct {
	op      string
	version Version
}

// constraint operators ordered so two-character operators match first.
var operators = []string{"==", "!=", "<=", ">=", "~=", "<", ">"}

// ParseConstraint parses a constraint expression such as ">=1.20,<2".
func ParseConstraint(expr string) (Constraint, error) {
	var c Constraint
	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		var op string
		for _, candidate := range operators {
			if strings.HasPrefix(part, candidate) {
				op = candidate
				break
			}
		}
		if op == "" {
			return Constraint{}, zerr.With(zerr.Wrap(ErrInvalidSpecifier, "unsupported constraint operator"), "constraint", expr)
		}
		ver := strings.TrimSpace(strings.TrimPrefix(part, op))
		if ver == "" {
			return Constraint{}, zerr.With(zerr.Wrap(ErrInvalidSpecifier, "constraint is missing a version"), "constraint", expr)
		}
		c.clauses = append(c.clauses, clause{op: op, version: ParseVersion(ver)})
	}
	return c, nil
}

// Matches reports whether the version satisfies every clause.
func (c Constraint) Matches(v Version) bool {
	for _, cl := range c.clauses {
		if !cl.matches(v) {
			return false
		}
	}
	return true
}

func (cl clause) matches(v Version) bool {
	cmp := v.Compare(cl.version)
	switch cl.op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "~=":
		return cmp >= 0 && v.Compare(cl.version.bump()) < 0
	}
	return false
}
