// Package app implements the application layer for sift.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/sift/internal/adapters/cache"   //nolint:depguard // Wired in app layer
	"go.trai.ch/sift/internal/adapters/engines" //nolint:depguard // Wired in app layer
	progrockadapter "go.trai.ch/sift/internal/adapters/telemetry/progrock"
	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/sift/internal/engine/orchestrator"
	"go.trai.ch/sift/internal/tui"
	"go.trai.ch/zerr"
)

// RunOptions carries the per-invocation knobs from the CLI.
type RunOptions struct {
	// Paths is the caller-supplied scope for the current mode.
	Paths []string
	// Full runs every engine over its configured full scope instead.
	Full bool
	// Engines restricts the run to the named engines; empty means all.
	Engines []string
	// Profile forces a profile for every engine.
	Profile string
	// NoCache bypasses cache reads; runs still update the cache.
	NoCache bool
	// Watch renders live progress in the terminal.
	Watch bool
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	orchestrator *orchestrator.Orchestrator
	tracer       ports.Tracer
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	orch *orchestrator.Orchestrator,
	tracer ports.Tracer,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		orchestrator: orch,
		tracer:       tracer,
		logger:       logger,
	}
}

// Audit runs the configured engines over the given root and returns the
// aggregated outcome. Engine failures are part of the outcome, not an error.
func (a *App) Audit(ctx context.Context, root string, opts RunOptions) (*domain.AuditOutcome, error) {
	cfg, err := a.configLoader.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	registry, err := engines.FromConfig(cfg, a.logger)
	if err != nil {
		return nil, err
	}

	selected, err := selectEngines(registry, opts.Engines)
	if err != nil {
		return nil, err
	}

	mode := domain.ModeCurrent
	if opts.Full {
		mode = domain.ModeFull
	}

	finish := a.startWatch(opts.Watch)
	defer finish()

	outcome, err := a.orchestrator.Run(ctx, orchestrator.Request{
		Config:  cfg,
		Engines: selected,
		Modes:   []domain.Mode{mode},
		Paths:   opts.Paths,
		Profile: opts.Profile,
		NoCache: opts.NoCache,
	})
	if err != nil {
		return nil, zerr.Wrap(err, "audit execution failed")
	}
	return outcome, nil
}

// Clean removes the persistent run cache under root.
func (a *App) Clean(root string) error {
	path := filepath.Join(root, cache.DefaultCacheFile)
	for _, target := range []string{path, path + ".lock"} {
		if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			return zerr.Wrap(err, "failed to remove cache file")
		}
	}
	return nil
}

// startWatch attaches the TUI to the tracer's feed when watching is enabled
// and the tracer supports it. The returned function ends the stream and
// waits for the UI to exit.
func (a *App) startWatch(watch bool) func() {
	if !watch {
		return func() {}
	}
	tracer, ok := a.tracer.(*progrockadapter.Tracer)
	if !ok {
		return func() {}
	}

	program := tea.NewProgram(tui.NewModel(tracer.Feed()))
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := program.Run(); err != nil {
			a.logger.Warn("progress UI exited: " + err.Error())
		}
	}()
	return func() {
		_ = tracer.Close()
		<-done
	}
}

// selectEngines resolves the requested engine subset, defaulting to all in
// sorted name order.
func selectEngines(registry *engines.Registry, names []string) ([]ports.Engine, error) {
	if len(names) == 0 {
		return registry.Engines(), nil
	}
	selected := make([]ports.Engine, 0, len(names))
	for _, name := range names {
		engine, err := registry.Get(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, engine)
	}
	return selected, nil
}
