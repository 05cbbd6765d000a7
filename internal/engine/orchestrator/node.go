package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sift/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/sift/internal/engine/resolver"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resolver.NodeID,
			fs.CollectorNodeID,
			cache.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			caches, err := graft.Dep[ports.RunCacheFactory](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(res, fingerprinter, caches, tracer, log), nil
		},
	})
}
