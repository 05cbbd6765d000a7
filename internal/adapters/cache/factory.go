package cache

import (
	"path/filepath"

	"go.trai.ch/sift/internal/core/ports"
)

var _ ports.RunCacheFactory = (*Factory)(nil)

// Factory opens stores bound to a project root. The cache file and its lock
// sibling always live at the root being audited, never at the process
// working directory.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// Open returns the store backed by root's cache file, loading any existing
// content.
func (f *Factory) Open(root string) ports.RunCache {
	return NewStore(filepath.Join(root, DefaultCacheFile), f.logger)
}
