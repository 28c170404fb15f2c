package ledger

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/toolcube/toolcube/internal/adapters/logger"
	"github.com/toolcube/toolcube/internal/core/ports"
)

// NodeID is the unique identifier for the ledger store Graft node.
const NodeID graft.ID = "adapter.ledger_store"

func init() {
	graft.Register(graft.Node[ports.LedgerStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.LedgerStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(log), nil
		},
	})
}
