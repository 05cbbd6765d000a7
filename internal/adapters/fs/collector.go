package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Collector)(nil)

// hashChunkSize is the read buffer used for streaming file hashing; files
// are never loaded whole into memory.
const hashChunkSize = 64 * 1024

// Collector walks file sets and produces content-hash maps.
type Collector struct {
	walker *Walker
	logger ports.Logger
}

// NewCollector creates a new Collector.
func NewCollector(walker *Walker, logger ports.Logger) *Collector {
	return &Collector{walker: walker, logger: logger}
}

type pendingFile struct {
	rel   string
	abs   string
	mtime int64
	size  int64
}

// Collect walks the given paths under root and returns the hash map plus
// whether a budget truncated the scan. The resulting map is identical for
// any worker count.
func (c *Collector) Collect(ctx context.Context, root string, paths []string, opts ports.CollectOptions) (domain.HashMap, bool, error) {
	candidates := c.listCandidates(ctx, root, paths, opts)

	result := make(domain.HashMap, len(candidates))
	var pending []pendingFile
	var totalBytes int64
	visited := 0
	truncated := false

	for _, rel := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, false, zerr.Wrap(err, "fingerprint collection interrupted")
		}
		if opts.MaxFiles > 0 && visited >= opts.MaxFiles {
			truncated = true
			break
		}

		abs := absolutePath(root, rel)
		info, err := os.Stat(abs)
		if err != nil {
			result[rel] = domain.MissingFile()
			visited++
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		size := info.Size()
		if opts.MaxBytes > 0 && totalBytes+size > opts.MaxBytes {
			truncated = true
			break
		}
		totalBytes += size
		visited++

		mtime := info.ModTime().UnixNano()
		if base, ok := opts.Baseline[rel]; ok && base.Hash != "" && base.Mtime == mtime && base.Size == size {
			// Metadata unchanged since the baseline was recorded; reuse the
			// hash without re-reading the file.
			result[rel] = base
			continue
		}

		pending = append(pending, pendingFile{rel: rel, abs: abs, mtime: mtime, size: size})
	}

	if err := c.hashPending(ctx, pending, resolveWorkers(opts.Workers), result); err != nil {
		return nil, false, err
	}

	return result, truncated, nil
}

// listCandidates expands the target paths into a sorted, deduplicated list
// of repository-relative file paths.
func (c *Collector) listCandidates(ctx context.Context, root string, paths []string, opts ports.CollectOptions) []string {
	exts := normalizeExtensions(opts.Extensions)

	seen := make(map[string]struct{})
	var candidates []string
	add := func(rel string) {
		if _, ok := seen[rel]; ok {
			return
		}
		seen[rel] = struct{}{}
		candidates = append(candidates, rel)
	}

	for _, rel := range domain.NormalizePaths(root, paths) {
		abs := absolutePath(root, rel)
		info, err := os.Stat(abs)
		if err != nil {
			// Kept as a candidate so the vanished target shows up as a
			// missing entry in the map.
			add(rel)
			continue
		}
		if info.IsDir() {
			for path := range c.walker.WalkFiles(abs, exts) {
				add(domain.NormalizePath(root, path))
			}
			continue
		}
		// Explicitly listed files bypass the extension filter.
		add(rel)
	}

	if opts.RespectGitignore {
		if tracked, ok := gitTrackedFiles(ctx, root); ok {
			filtered := candidates[:0]
			for _, rel := range candidates {
				if filepath.IsAbs(rel) {
					filtered = append(filtered, rel)
					continue
				}
				if _, ok := tracked[rel]; ok {
					filtered = append(filtered, rel)
				}
			}
			candidates = filtered
		} else if c.logger != nil {
			c.logger.Warn("git unavailable, fingerprinting without gitignore filtering")
		}
	}

	sort.Strings(candidates)
	return candidates
}

// hashPending hashes the files that missed the baseline, optionally across
// a bounded worker pool. Results are collected per index so the assembled
// map is free of races and independent of scheduling order.
func (c *Collector) hashPending(ctx context.Context, pending []pendingFile, workers int, result domain.HashMap) error {
	if len(pending) == 0 {
		return nil
	}

	if workers <= 1 {
		for _, p := range pending {
			if err := ctx.Err(); err != nil {
				return zerr.Wrap(err, "fingerprint hashing interrupted")
			}
			result[p.rel] = hashOne(p)
		}
		return nil
	}

	payloads := make([]domain.FileHashPayload, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			payloads[i] = hashOne(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zerr.Wrap(err, "fingerprint hashing interrupted")
	}

	for i, p := range pending {
		result[p.rel] = payloads[i]
	}
	return nil
}

func hashOne(p pendingFile) domain.FileHashPayload {
	f, err := os.Open(p.abs) //nolint:gosec // path derives from the scanned tree
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.MissingFile()
		}
		return domain.UnreadableFile()
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(digest, f, buf); err != nil {
		return domain.UnreadableFile()
	}
	return domain.ContentHash(fmt.Sprintf("%016x", digest.Sum64()), p.mtime, p.size)
}

// Targets computes the fingerprint target set for a run.
func (c *Collector) Targets(root string, modePaths, defaultPaths, extra []string) []string {
	return FingerprintTargets(root, modePaths, defaultPaths, extra)
}

// Identity returns the content hash and mtime of a single file.
func (c *Collector) Identity(path string) (string, int64, error) {
	return HashFile(path)
}

// HashFile computes the streamed content hash and mtime (nanoseconds) of a
// single file, used for config-file identity in cache keys.
func HashFile(path string) (string, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}

	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(digest, f, buf); err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return fmt.Sprintf("%016x", digest.Sum64()), info.ModTime().UnixNano(), nil
}

// resolveWorkers turns the configured worker spec into a pool size.
func resolveWorkers(spec string) int {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "", "0", "1":
		return 1
	case "auto":
		return runtime.NumCPU()
	}
	n, err := strconv.Atoi(strings.TrimSpace(spec))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func normalizeExtensions(exts []string) []string {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

func absolutePath(root, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}
