// Package orchestrator drives engine execution over the cache.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/sift/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// RunStatus represents the status of one (engine, mode) run.
type RunStatus string

const (
	// StatusPending indicates the run is waiting to be executed.
	StatusPending RunStatus = "Pending"
	// StatusRunning indicates the run is currently executing.
	StatusRunning RunStatus = "Running"
	// StatusCompleted indicates the run executed its engine.
	StatusCompleted RunStatus = "Completed"
	// StatusCached indicates the run was served from the cache.
	StatusCached RunStatus = "Cached"
	// StatusFailed indicates the engine invocation failed.
	StatusFailed RunStatus = "Failed"
)

// Request describes one audit invocation.
type Request struct {
	// Config is the loaded configuration including discovered overrides.
	Config *domain.AuditConfig
	// Engines is the set of engines to run, in execution order.
	Engines []ports.Engine
	// Modes selects the scopes to run each engine for.
	Modes []domain.Mode
	// Paths is the caller-supplied scope for ModeCurrent runs.
	Paths []string
	// Profile optionally forces a profile for every engine.
	Profile string
	// NoCache bypasses cache reads; runs still update the cache.
	NoCache bool
}

// Orchestrator executes engines over fingerprinted file sets, serving
// unchanged invocations from the cache. One engine failing never aborts the
// audit; its result carries the error instead.
type Orchestrator struct {
	resolver      *resolver.Resolver
	fingerprinter ports.Fingerprinter
	caches        ports.RunCacheFactory
	tracer        ports.Tracer
	logger        ports.Logger

	mu        sync.RWMutex
	runStatus map[string]RunStatus
}

// New creates a new Orchestrator.
func New(
	res *resolver.Resolver,
	fingerprinter ports.Fingerprinter,
	caches ports.RunCacheFactory,
	tracer ports.Tracer,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		resolver:      res,
		fingerprinter: fingerprinter,
		caches:        caches,
		tracer:        tracer,
		logger:        logger,
		runStatus:     make(map[string]RunStatus),
	}
}

// Status returns the recorded status for a run name ("engine/mode").
func (o *Orchestrator) Status(name string) RunStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.runStatus[name]
}

func (o *Orchestrator) updateStatus(name string, status RunStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runStatus[name] = status
}

// Run executes every (engine, mode) pair sequentially and returns the
// aggregated outcome. The cache is saved exactly once, after all runs.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*domain.AuditOutcome, error) {
	if req.Config == nil {
		return nil, zerr.New("orchestrator requires a loaded configuration")
	}
	if len(req.Engines) == 0 {
		return nil, domain.ErrNoEnginesConfigured
	}

	modes := req.Modes
	if len(modes) == 0 {
		modes = []domain.Mode{domain.ModeCurrent}
	}

	var planned []string
	for _, eng := range req.Engines {
		for _, mode := range modes {
			name := runName(eng.Name(), mode)
			planned = append(planned, name)
			o.updateStatus(name, StatusPending)
		}
	}
	o.tracer.EmitPlan(ctx, planned)

	// The cache lives at the audited root, which is only known per request.
	store := o.caches.Open(req.Config.Root)

	outcome := &domain.AuditOutcome{}
	for _, eng := range req.Engines {
		for _, mode := range modes {
			if err := ctx.Err(); err != nil {
				return outcome, zerr.Wrap(err, "audit interrupted")
			}

			result, truncated := o.runOne(ctx, req, store, eng, mode)
			outcome.Results = append(outcome.Results, result)
			outcome.Truncated = outcome.Truncated || truncated
		}
	}

	if err := store.Save(); err != nil {
		o.logger.Warn("failed to persist run cache: " + err.Error())
	}

	return outcome, nil
}

// runOne executes a single (engine, mode) pair and returns its result plus
// whether a collection budget truncated the fingerprint scan.
func (o *Orchestrator) runOne(ctx context.Context, req Request, store ports.RunCache, eng ports.Engine, mode domain.Mode) (domain.RunResult, bool) {
	name := runName(eng.Name(), mode)
	o.updateStatus(name, StatusRunning)

	cfg := req.Config
	settings := cfg.Engines[eng.Name()]
	options := o.resolver.Resolve(cfg, settings, req.Profile, eng.CategoryMapping())

	rc := ports.RunContext{Root: cfg.Root, Mode: mode, Options: options}
	paths := o.scopePaths(req, settings, options, mode)

	ctx, span := o.tracer.Start(ctx, name)
	defer span.End()

	flags := o.cacheFlags(ctx, cfg.Root, eng, options)
	key := store.KeyFor(eng.Name(), mode, paths, flags)

	var baseline domain.HashMap
	if !req.NoCache {
		baseline = store.PeekFileHashes(key)
	}

	targets := o.fingerprinter.Targets(cfg.Root, paths, options.Include, eng.FingerprintTargets(rc, paths))
	hashes, truncated, err := o.fingerprinter.Collect(ctx, cfg.Root, targets, ports.CollectOptions{
		Baseline:         baseline,
		Extensions:       cfg.Collector.Extensions,
		MaxFiles:         cfg.Collector.MaxFiles,
		MaxBytes:         cfg.Collector.MaxBytes,
		Workers:          cfg.Collector.Workers,
		RespectGitignore: cfg.Collector.RespectGitignore,
	})
	if err != nil {
		span.RecordError(err)
		o.updateStatus(name, StatusFailed)
		return failedResult(eng.Name(), mode, options, err), truncated
	}
	if truncated {
		o.logger.Warn("fingerprint scan for " + name + " hit a collection budget, caching disabled for this run")
	}

	if !req.NoCache && !truncated {
		if cached := store.Get(key, hashes); cached != nil {
			o.updateStatus(name, StatusCached)
			span.SetAttribute("cached", true)
			fmt.Fprintf(span, "cache hit, %d diagnostics\n", len(cached.Diagnostics))
			return cachedResult(eng.Name(), mode, options, cached), false
		}
	}

	report, err := eng.Run(ctx, rc, paths)
	if err != nil {
		span.RecordError(err)
		o.updateStatus(name, StatusFailed)
		o.logger.Error(zerr.With(zerr.Wrap(err, "engine invocation failed"), "engine", eng.Name()))
		return failedResult(eng.Name(), mode, options, err), truncated
	}

	fmt.Fprintf(span, "exit %d, %d diagnostics\n", report.ExitCode, len(report.Diagnostics))
	span.SetAttribute("diagnostics", len(report.Diagnostics))

	if !truncated {
		store.Update(key, domain.CachedRun{
			Command:         report.Command,
			ExitCode:        report.ExitCode,
			DurationMs:      report.DurationMs,
			Diagnostics:     report.Diagnostics,
			FileHashes:      hashes,
			Profile:         options.Profile,
			ConfigFile:      options.ConfigFile,
			PluginArgs:      options.PluginArgs,
			Include:         options.Include,
			Exclude:         options.Exclude,
			Overrides:       options.Overrides,
			CategoryMapping: options.CategoryMapping,
			ToolSummary:     report.ToolSummary,
		})
	}

	o.updateStatus(name, StatusCompleted)
	return domain.RunResult{
		Engine:      eng.Name(),
		Mode:        mode,
		Command:     report.Command,
		ExitCode:    report.ExitCode,
		DurationMs:  report.DurationMs,
		Diagnostics: report.Diagnostics,
		Options:     options,
		ToolSummary: report.ToolSummary,
	}, truncated
}

// scopePaths determines the path set an engine is invoked over. ModeCurrent
// uses the caller-supplied paths; ModeFull uses the engine's configured full
// scope. Both fall back to the resolved includes and finally the root, and
// excluded prefixes are always filtered out.
func (o *Orchestrator) scopePaths(req Request, settings domain.EngineSettings, options domain.EngineOptions, mode domain.Mode) []string {
	var scope []string
	switch mode {
	case domain.ModeCurrent:
		scope = domain.NormalizePaths(req.Config.Root, req.Paths)
	case domain.ModeFull:
		scope = domain.NormalizePaths(req.Config.Root, settings.FullPaths)
	}
	if len(scope) == 0 {
		scope = options.Include
	}
	if len(scope) == 0 {
		return []string{"."}
	}

	filtered := scope[:0:0]
	for _, path := range scope {
		if domain.UnderAny(path, options.Exclude) {
			continue
		}
		filtered = append(filtered, path)
	}
	if len(filtered) == 0 {
		return []string{"."}
	}
	sort.Strings(filtered)
	return filtered
}

// cacheFlags builds the non-path inputs of the cache key. Any change to the
// resolved options, the engine's config file content, or the tool version
// lands a different key.
func (o *Orchestrator) cacheFlags(ctx context.Context, root string, eng ports.Engine, options domain.EngineOptions) []string {
	flags := make([]string, 0, len(options.PluginArgs)+6)
	flags = append(flags, options.PluginArgs...)

	if options.Profile != "" {
		flags = append(flags, "profile="+options.Profile)
	}
	if len(options.Include) > 0 {
		flags = append(flags, "include="+strings.Join(options.Include, ","))
	}
	if len(options.Exclude) > 0 {
		flags = append(flags, "exclude="+strings.Join(options.Exclude, ","))
	}

	if options.ConfigFile != "" {
		flags = append(flags, "config="+options.ConfigFile)
		configPath := options.ConfigFile
		if !filepath.IsAbs(configPath) {
			configPath = filepath.Join(root, filepath.FromSlash(configPath))
		}
		hash, mtime, err := o.fingerprinter.Identity(configPath)
		if err != nil {
			o.logger.Warn("config file " + options.ConfigFile + " could not be fingerprinted for the cache key")
		} else {
			flags = append(flags, "config_hash="+hash, "config_mtime="+strconv.FormatInt(mtime, 10))
		}
	}

	if versioned, ok := eng.(ports.Versioned); ok {
		if version := versioned.Version(ctx); version != "" {
			flags = append(flags, "version="+version)
		}
	}

	return flags
}

func runName(engine string, mode domain.Mode) string {
	return engine + "/" + string(mode)
}

func cachedResult(engine string, mode domain.Mode, options domain.EngineOptions, cached *domain.CachedRun) domain.RunResult {
	return domain.RunResult{
		Engine:      engine,
		Mode:        mode,
		Command:     cached.Command,
		ExitCode:    cached.ExitCode,
		DurationMs:  cached.DurationMs,
		Diagnostics: cached.Diagnostics,
		Cached:      true,
		Options:     options,
		ToolSummary: cached.ToolSummary,
	}
}

func failedResult(engine string, mode domain.Mode, options domain.EngineOptions, err error) domain.RunResult {
	return domain.RunResult{
		Engine:      engine,
		Mode:        mode,
		ExitCode:    1,
		Options:     options,
		EngineError: err.Error(),
	}
}
