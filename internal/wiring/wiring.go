// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/toolcube/toolcube/internal/adapters/config"
	_ "github.com/toolcube/toolcube/internal/adapters/fs"
	_ "github.com/toolcube/toolcube/internal/adapters/ledger"
	_ "github.com/toolcube/toolcube/internal/adapters/lock"
	_ "github.com/toolcube/toolcube/internal/adapters/logger"
	_ "github.com/toolcube/toolcube/internal/adapters/micromamba"
	_ "github.com/toolcube/toolcube/internal/adapters/pip"
	_ "github.com/toolcube/toolcube/internal/adapters/shell"
	_ "github.com/toolcube/toolcube/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "github.com/toolcube/toolcube/internal/app"
	_ "github.com/toolcube/toolcube/internal/engine/reconcile"
)
