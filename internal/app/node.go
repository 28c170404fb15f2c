package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/toolcube/toolcube/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"github.com/toolcube/toolcube/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"github.com/toolcube/toolcube/internal/adapters/ledger"             //nolint:depguard // Wired in app layer
	"github.com/toolcube/toolcube/internal/adapters/lock"               //nolint:depguard // Wired in app layer
	"github.com/toolcube/toolcube/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"github.com/toolcube/toolcube/internal/adapters/micromamba"         //nolint:depguard // Wired in app layer
	"github.com/toolcube/toolcube/internal/adapters/pip"                //nolint:depguard // Wired in app layer
	"github.com/toolcube/toolcube/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"github.com/toolcube/toolcube/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/toolcube/toolcube/internal/core/ports"
	"github.com/toolcube/toolcube/internal/engine/reconcile"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			lock.NodeID,
			ledger.NodeID,
			reconcile.NodeID,
			micromamba.ManagerNodeID,
			micromamba.FetcherNodeID,
			pip.NodeID,
			fs.NodeID,
			shell.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	loader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}
	locks, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}
	ledgers, err := graft.Dep[ports.LedgerStore](ctx)
	if err != nil {
		return nil, err
	}
	evaluator, err := graft.Dep[*reconcile.Evaluator](ctx)
	if err != nil {
		return nil, err
	}
	manager, err := graft.Dep[ports.PackageManager](ctx)
	if err != nil {
		return nil, err
	}
	bootstrap, err := graft.Dep[ports.Bootstrapper](ctx)
	if err != nil {
		return nil, err
	}
	installer, err := graft.Dep[ports.Installer](ctx)
	if err != nil {
		return nil, err
	}
	mirror, err := graft.Dep[ports.Mirror](ctx)
	if err != nil {
		return nil, err
	}
	builder, err := graft.Dep[ports.BuildRunner](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(log, loader, locks, ledgers, evaluator, manager, bootstrap, installer, mirror, builder, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       application,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
