// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/sift/internal/core/domain"
)

// RunContext carries everything an engine needs besides the path list.
type RunContext struct {
	// Root is the absolute repository root.
	Root string
	// Mode is the scope the engine is being invoked for.
	Mode domain.Mode
	// Options is the fully resolved option set for this run.
	Options domain.EngineOptions
}

// EngineReport is the adapter-normalized outcome of one engine invocation.
type EngineReport struct {
	Command     []string
	ExitCode    int
	DurationMs  float64
	Diagnostics []domain.Diagnostic
	ToolSummary *domain.ToolSummary
}

// Engine wraps one external static-analysis tool behind a uniform
// run/diagnostics interface. Implementations turn a path list plus resolved
// options into a subprocess invocation and parse the tool's native output.
//
//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type Engine interface {
	// Name returns the engine's registry name.
	Name() string

	// Run invokes the tool over the given paths. A returned error marks the
	// engine as failed for this run; it never aborts the audit.
	Run(ctx context.Context, rc RunContext, paths []string) (*EngineReport, error)

	// CategoryMapping returns the engine's static diagnostic-code to
	// category mapping.
	CategoryMapping() map[string][]string

	// FingerprintTargets returns extra paths, relative to the root, whose
	// content should invalidate this engine's cache entries.
	FingerprintTargets(rc RunContext, paths []string) []string
}

// Versioned is an optional upgrade interface for engines that can detect
// their underlying tool version. The version participates in cache keys so
// a tool upgrade invalidates prior entries.
type Versioned interface {
	Version(ctx context.Context) string
}
