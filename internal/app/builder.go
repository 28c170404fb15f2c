// Package app implements the environment lifecycle driver.
package app

import (
	"github.com/toolcube/toolcube/internal/core/ports"
)

// Components contains the initialized application components. The struct
// provides controlled access to the pieces the CLI layer needs.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}
