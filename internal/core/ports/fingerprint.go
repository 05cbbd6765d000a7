package ports

import (
	"context"

	"go.trai.ch/sift/internal/core/domain"
)

// CollectOptions tunes one fingerprint collection.
type CollectOptions struct {
	// Baseline lets the collector reuse a prior hash when a file's
	// (mtime, size) pair is unchanged, skipping the read entirely.
	Baseline domain.HashMap
	// Extensions restricts directory walks to recognized source files.
	// Explicitly listed files bypass the filter.
	Extensions []string
	// MaxFiles halts scanning once this many files were visited (0 = unbounded).
	MaxFiles int
	// MaxBytes halts scanning once the cumulative stat size exceeds it (0 = unbounded).
	MaxBytes int64
	// Workers is "auto", "", or an integer string; 0/1 means sequential.
	Workers string
	// RespectGitignore restricts scanning to files git would track,
	// falling back to a full scan when git is unavailable.
	RespectGitignore bool
}

// Fingerprinter computes content-hash maps over file sets.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks
type Fingerprinter interface {
	// Collect walks the given paths under root and returns the hash map
	// plus whether a budget truncated the scan. Vanished or unreadable
	// files become tagged payloads, never errors.
	Collect(ctx context.Context, root string, paths []string, opts CollectOptions) (domain.HashMap, bool, error)

	// Targets computes the fingerprint target set for a run: modePaths when
	// non-empty, else defaultPaths, always extended with present root-marker
	// files and engine-supplied extras. Never returns an empty set.
	Targets(root string, modePaths, defaultPaths, extra []string) []string

	// Identity returns the content hash and mtime (nanoseconds) of a single
	// file, used for config-file identity in cache keys.
	Identity(path string) (string, int64, error)
}
