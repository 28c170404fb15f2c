package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/toolcube/toolcube/internal/adapters/logger"
	"github.com/toolcube/toolcube/internal/core/ports"
)

// NodeID is the unique identifier for the mirror Graft node.
const NodeID graft.ID = "adapter.mirror"

func init() {
	graft.Register(graft.Node[ports.Mirror]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Mirror, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewMirror(log), nil
		},
	})
}
