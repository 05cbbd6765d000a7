// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sift/internal/adapters/cache"
	_ "go.trai.ch/sift/internal/adapters/config"
	_ "go.trai.ch/sift/internal/adapters/fs"
	_ "go.trai.ch/sift/internal/adapters/logger"
	_ "go.trai.ch/sift/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/sift/internal/app"
	_ "go.trai.ch/sift/internal/engine/orchestrator"
	_ "go.trai.ch/sift/internal/engine/resolver"
)
