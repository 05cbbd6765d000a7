package domain

import (
	"path/filepath"
	"strings"
)

// NormalizePaths canonicalizes raw path strings to unique, repository-
// relative, forward-slash paths, preserving first-seen order. Inputs
// resolving outside root keep their absolute form instead of erroring.
func NormalizePaths(root string, raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, p := range raw {
		if p == "" {
			continue
		}
		normalized := NormalizePath(root, p)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}

// NormalizePath canonicalizes a single path string against root.
func NormalizePath(root, p string) string {
	abs := p
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// RelativeOverridePath resolves a path string found inside a path-scoped
// override file against that override's own directory, then re-expresses it
// relative to root.
func RelativeOverridePath(root, overrideDir, p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(overrideDir, p)
	}
	return NormalizePath(root, p)
}

// NormalizeOverridePaths applies RelativeOverridePath to each entry,
// deduplicating while preserving first-seen order.
func NormalizeOverridePaths(root, overrideDir string, raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, p := range raw {
		if p == "" {
			continue
		}
		normalized := RelativeOverridePath(root, overrideDir, p)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}

// UnderAny reports whether path equals one of the prefixes or lies beneath
// one of them. Paths are the forward-slash repository-relative form produced
// by NormalizePaths.
func UnderAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
