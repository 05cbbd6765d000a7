package ports

import "go.trai.ch/sift/internal/core/domain"

// RunCache defines the interface for the persistent run cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunCache interface {
	// KeyFor builds the deterministic cache key for one logical invocation.
	// Equal logical invocations produce byte-identical keys regardless of
	// the ordering of paths or flags.
	KeyFor(engine string, mode domain.Mode, paths []string, flags []string) string

	// Get returns a copy of the stored run for key if, and only if, the
	// entire stored hash map is structurally equal to current. Returns nil
	// otherwise.
	Get(key string, current domain.HashMap) *domain.CachedRun

	// Update inserts or overwrites the entry for key and marks the store
	// dirty. It does not write to disk.
	Update(key string, run domain.CachedRun)

	// PeekFileHashes returns a copy of the stored entry's hash map without
	// validating it, for seeding the collector's baseline. Returns nil when
	// the key is unknown.
	PeekFileHashes(key string) domain.HashMap

	// Save persists the store to disk if it is dirty, atomically and under
	// an advisory lock. A clean store is a no-op.
	Save() error
}

// RunCacheFactory opens the run cache bound to a project root. The root is
// only known once the CLI has resolved it, so the cache cannot be
// constructed at wiring time.
type RunCacheFactory interface {
	// Open returns the run cache stored under root, loading any existing
	// content.
	Open(root string) RunCache
}
