package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolcube/toolcube/internal/core/domain"
)

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.19.0", "1.20", -1},
		{"1.20", "1.19.0", 1},
		{"1.20", "1.20.0", 0},
		{"1.2", "1.10", -1},
		{"2", "10", -1},
		{"1.0.0", "1.0.0", 0},
		{"1.0.post1", "1.0.post2", -1},
		{"3.11", "3.12", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			got := domain.ParseVersion(tt.a).Compare(domain.ParseVersion(tt.b))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConstraintMatches(t *testing.T) {
	tests := []struct {
		expr    string
		version string
		want    bool
	}{
		{"==1.4.2", "1.4.2", true},
		{"==1.4.2", "1.4.3", false},
		{"!=1.4.2", "1.4.3", true},
		{"!=1.4.2", "1.4.2", false},
		{"<2", "1.9.9", true},
		{"<2", "2.0", false},
		{"<=2.0", "2.0", true},
		{">1.19", "1.20", true},
		{">1.19", "1.19", false},
		{">=1.20", "1.19.0", false},
		{">=1.20", "1.20.0", true},
		{"~=1.4.2", "1.4.9", true},
		{"~=1.4.2", "1.5.0", false},
		{"~=1.4.2", "1.4.1", false},
		{"~=2.1", "2.9", true},
		{"~=2.1", "3.0", false},
		{">=1.20,<2", "1.26.4", true},
		{">=1.20,<2", "2.1", false},
		{">=3.11, <3.13", "3.12.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr+" "+tt.version, func(t *testing.T) {
			c, err := domain.ParseConstraint(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Matches(domain.ParseVersion(tt.version)))
		})
	}
}

func TestParseConstraint_RejectsUnknownOperators(t *testing.T) {
	for _, expr := range []string{"^1.2", "=1.2", "~1.2", ">=1.20,^2", ">="} {
		t.Run(expr, func(t *testing.T) {
			_, err := domain.ParseConstraint(expr)
			assert.ErrorIs(t, err, domain.ErrInvalidSpecifier)
		})
	}
}
