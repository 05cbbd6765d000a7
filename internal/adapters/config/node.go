package config

import (
	"context"

	"github.com/grindlemire/graft"
	adapterfs "go.trai.ch/sift/internal/adapters/fs"
	"go.trai.ch/sift/internal/adapters/logger"
	"go.trai.ch/sift/internal/core/ports"
)

const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{adapterfs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			walker, err := graft.Dep[*adapterfs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(walker, log), nil
		},
	})
}
