package micromamba_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toolcube/toolcube/internal/adapters/micromamba"
	"github.com/toolcube/toolcube/internal/core/domain"
)

func TestDownloadURL(t *testing.T) {
	cases := []struct {
		goos, goarch string
		want         string
	}{
		{"linux", "amd64", "https://micro.mamba.pm/api/micromamba/linux-64/latest"},
		{"linux", "arm64", "https://micro.mamba.pm/api/micromamba/linux-aarch64/latest"},
		{"linux", "ppc64le", "https://micro.mamba.pm/api/micromamba/linux-ppc64le/latest"},
		{"darwin", "amd64", "https://micro.mamba.pm/api/micromamba/osx-64/latest"},
		{"darwin", "arm64", "https://micro.mamba.pm/api/micromamba/osx-arm64/latest"},
	}
	for _, tc := range cases {
		got, err := micromamba.DownloadURL(tc.goos, tc.goarch)
		if err != nil {
			t.Errorf("DownloadURL(%s, %s): unexpected error: %v", tc.goos, tc.goarch, err)
			continue
		}
		assert.Equal(t, tc.want, got)
	}
}

func TestDownloadURL_Unsupported(t *testing.T) {
	cases := []struct{ goos, goarch string }{
		{"windows", "amd64"},
		{"linux", "riscv64"},
		{"darwin", "ppc64le"},
	}
	for _, tc := range cases {
		_, err := micromamba.DownloadURL(tc.goos, tc.goarch)
		if !errors.Is(err, domain.ErrUnsupportedPlatform) {
			t.Errorf("DownloadURL(%s, %s): expected ErrUnsupportedPlatform, got %v", tc.goos, tc.goarch, err)
		}
	}
}
