// Package cache implements the persistent on-disk run cache.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RunCache = (*Store)(nil)

// DefaultCacheFile is the cache location relative to the repository root.
const DefaultCacheFile = ".sift-cache.json"

// cacheFile is the on-disk shape: a single JSON object keyed by cache key.
// Entries serialize sorted by key, which keeps the file human-diffable.
type cacheFile struct {
	Entries map[string]domain.CachedRun `json:"entries"`
}

// Store implements ports.RunCache backed by a flat JSON file.
//
// Lifecycle per on-disk file: absent -> loaded (possibly empty on parse
// failure) -> mutated (dirty) -> saved (clean). The store exclusively owns
// the on-disk representation; callers only ever receive copies.
type Store struct {
	path   string
	logger ports.Logger

	mu      sync.RWMutex
	entries map[string]domain.CachedRun
	dirty   bool
}

// NewStore creates a Store backed by the file at path, loading any existing
// content. A missing or corrupt file yields an empty cache; corruption is
// reported as a warning rather than failing the audit.
func NewStore(path string, logger ports.Logger) *Store {
	s := &Store{
		path:    filepath.Clean(path),
		logger:  logger,
		entries: make(map[string]domain.CachedRun),
	}
	s.load()
	return s
}

func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && s.logger != nil {
			s.logger.Warn("cache file unreadable, starting with an empty cache")
		}
		return
	}
	if len(data) == 0 {
		return
	}

	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		if s.logger != nil {
			s.logger.Warn("cache file corrupt, starting with an empty cache")
		}
		return
	}
	if file.Entries != nil {
		s.entries = file.Entries
	}
}

// KeyFor builds the deterministic cache key: engine, mode, sorted-unique
// path set, and sorted flag list. Equal logical invocations always produce
// byte-identical keys regardless of input ordering.
func (s *Store) KeyFor(engine string, mode domain.Mode, paths, flags []string) string {
	parts := []string{
		engine,
		string(mode),
		strings.Join(sortUnique(paths), ","),
		strings.Join(sortUnique(flags), ","),
	}
	return strings.Join(parts, ":")
}

// Get returns a copy of the stored run for key only when the entire stored
// hash map structurally equals current. One added, removed, or changed path
// invalidates the whole entry.
func (s *Store) Get(key string, current domain.HashMap) *domain.CachedRun {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	if !entry.FileHashes.Equal(current) {
		return nil
	}

	cloned := entry.Clone()
	return &cloned
}

// Update inserts or overwrites the entry for key, canonicalizing its
// diagnostics, and marks the store dirty. It does not write to disk.
func (s *Store) Update(key string, run domain.CachedRun) {
	stored := run.Clone()
	domain.SortDiagnostics(stored.Diagnostics)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = stored
	s.dirty = true
}

// PeekFileHashes returns a copy of the stored entry's hash map without
// validating it against current state. Used to seed the fingerprint
// collector's baseline so unchanged files are never re-hashed, even across
// cache-key changes.
func (s *Store) PeekFileHashes(key string) domain.HashMap {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	return entry.FileHashes.Clone()
}

// Save persists the store when dirty: serialize, write to a temp file, and
// atomically rename into place while holding an advisory lock on the cache
// file's lock sibling. A reader never observes a partial file, and two
// concurrent sift processes never interleave writes.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(cacheFile{Entries: s.entries}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal run cache")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for run cache")
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to lock run cache"), "path", s.path)
	}
	defer lock.Unlock() //nolint:errcheck // Best effort unlock in defer

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp cache file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to write temp cache file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to close temp cache file")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to replace run cache")
	}

	s.dirty = false
	return nil
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func sortUnique(values []string) []string {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)

	unique := sorted[:0]
	var prev string
	for i, v := range sorted {
		if i > 0 && v == prev {
			continue
		}
		unique = append(unique, v)
		prev = v
	}
	return unique
}
