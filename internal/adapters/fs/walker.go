// Package fs provides file system adapters for path normalization and
// content fingerprinting.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields regular files under dir in lexical order, skipping .git
// and .jj directories. When exts is non-empty only files with a matching
// extension are yielded. Symlinked directories are not descended into.
func (w *Walker) WalkFiles(dir string, exts []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// A directory that vanished mid-walk is not fatal.
				return nil
			}

			if d.IsDir() {
				name := d.Name()
				if name == ".git" || name == ".jj" {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if len(exts) > 0 && !slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
