package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sift/internal/adapters/logger"
	"go.trai.ch/sift/internal/core/ports"
)

const (
	WalkerNodeID    graft.ID = "adapter.fs.walker"
	CollectorNodeID graft.ID = "adapter.fs.collector"
)

func init() {
	// Walker Node (concrete implementation needed by Collector)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Collector Node
	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        CollectorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCollector(walker, log), nil
		},
	})
}
