// Package engines provides engine adapters and the engine registry.
package engines

import (
	"sort"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry holds the configured engines for one audit invocation. It is
// constructed once at startup and injected into the orchestrator; there is
// no global registry.
type Registry struct {
	engines map[string]ports.Engine
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]ports.Engine)}
}

// Register adds an engine, rejecting duplicate names.
func (r *Registry) Register(engine ports.Engine) error {
	name := engine.Name()
	if _, exists := r.engines[name]; exists {
		return zerr.With(zerr.New("engine already registered"), "engine", name)
	}
	r.engines[name] = engine
	return nil
}

// Get returns the engine registered under name.
func (r *Registry) Get(name string) (ports.Engine, error) {
	engine, ok := r.engines[name]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownEngine, "engine", name)
	}
	return engine, nil
}

// Names returns the registered engine names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Engines returns the registered engines in sorted name order.
func (r *Registry) Engines() []ports.Engine {
	names := r.Names()
	result := make([]ports.Engine, 0, len(names))
	for _, name := range names {
		result = append(result, r.engines[name])
	}
	return result
}

// FromConfig builds a Registry of command engines from the loaded
// configuration.
func FromConfig(cfg *domain.AuditConfig, logger ports.Logger) (*Registry, error) {
	if len(cfg.Engines) == 0 {
		return nil, domain.ErrNoEnginesConfigured
	}

	registry := NewRegistry()
	for _, settings := range cfg.Engines {
		if err := registry.Register(NewCommandEngine(settings, logger)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
