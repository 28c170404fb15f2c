package micromamba

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/toolcube/toolcube/internal/adapters/logger"
	"github.com/toolcube/toolcube/internal/core/ports"
)

const (
	// ManagerNodeID is the unique identifier for the package manager Graft node.
	ManagerNodeID graft.ID = "adapter.package_manager"
	// FetcherNodeID is the unique identifier for the bootstrapper Graft node.
	FetcherNodeID graft.ID = "adapter.bootstrapper"
)

func init() {
	graft.Register(graft.Node[ports.PackageManager]{
		ID:        ManagerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.PackageManager, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(log), nil
		},
	})

	graft.Register(graft.Node[ports.Bootstrapper]{
		ID:        FetcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Bootstrapper, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(log), nil
		},
	})
}
