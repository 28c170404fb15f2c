// Package micromamba provides the adapters around the micromamba binary:
// bootstrapping the binary itself and driving it to create, recreate and
// export environments.
package micromamba

import (
	"fmt"

	"github.com/toolcube/toolcube/internal/core/domain"
	"go.trai.ch/zerr"
)

const urlTemplate = "https://micro.mamba.pm/api/micromamba/%s/latest"

// DownloadURL returns the micromamba release URL for the given platform. It
// fails with domain.ErrUnsupportedPlatform when no download source is known,
// before any filesystem mutation has happened.
func DownloadURL(goos, goarch string) (string, error) {
	var slug string
	switch goos {
	case "linux":
		switch goarch {
		case "amd64":
			slug = "linux-64"
		case "arm64":
			slug = "linux-aarch64"
		case "ppc64le":
			slug = "linux-ppc64le"
		}
	case "darwin":
		switch goarch {
		case "amd64":
			slug = "osx-64"
		case "arm64":
			slug = "osx-arm64"
		}
	}
	if slug == "" {
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedPlatform, "no download source"), "os", goos)
		return "", zerr.With(err, "arch", goarch)
	}
	return fmt.Sprintf(urlTemplate, slug), nil
}
