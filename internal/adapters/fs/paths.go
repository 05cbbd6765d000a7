package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/sift/internal/core/domain"
)

// rootMarkers are files at the repository root whose content affects every
// engine. Present markers are always appended to the fingerprint target set.
var rootMarkers = []string{
	"sift.yaml",
	"pyproject.toml",
	"poetry.lock",
	"requirements.txt",
	"package-lock.json",
	"go.mod",
}

// FingerprintTargets computes the fingerprint target set for a run:
// modePaths when non-empty, else defaultPaths, always extended with present
// root markers and any engine-supplied extra paths. The set never ends up
// empty; "." is the fallback.
func FingerprintTargets(root string, modePaths, defaultPaths, extra []string) []string {
	targets := modePaths
	if len(targets) == 0 {
		targets = defaultPaths
	}

	combined := make([]string, 0, len(targets)+len(rootMarkers)+len(extra))
	combined = append(combined, targets...)
	for _, marker := range rootMarkers {
		if _, err := os.Stat(filepath.Join(root, marker)); err == nil {
			combined = append(combined, marker)
		}
	}
	combined = append(combined, extra...)

	normalized := domain.NormalizePaths(root, combined)
	if len(normalized) == 0 {
		return []string{"."}
	}
	return normalized
}
