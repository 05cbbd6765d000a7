package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sift/internal/adapters/fs"
	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
)

func newCollector() *fs.Collector {
	return fs.NewCollector(fs.NewWalker(), nil)
}

// writeTree creates files under root from relative path to content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestCollector_CollectBasics(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.py":      "print('a')",
		"src/b.py":      "print('b')",
		"src/c.txt":     "not python",
		"src/deep/d.py": "print('d')",
	})

	collector := newCollector()
	hashes, truncated, err := collector.Collect(context.Background(), root, []string{"src"}, ports.CollectOptions{
		Extensions: []string{".py"},
	})
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, []string{"src/a.py", "src/b.py", "src/deep/d.py"}, hashes.Paths())

	for _, path := range hashes.Paths() {
		payload := hashes[path]
		assert.Len(t, payload.Hash, 16, "xxhash hex digest for %s", path)
		assert.False(t, payload.Missing)
		assert.False(t, payload.Unreadable)
		assert.Positive(t, payload.Size)
	}
}

func TestCollector_WorkerCountDoesNotChangeResult(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["src/"+name+".py"] = "content of " + name
	}
	writeTree(t, root, files)

	collector := newCollector()
	var reference domain.HashMap
	for _, workers := range []string{"", "1", "2", "4", "auto"} {
		hashes, truncated, err := collector.Collect(context.Background(), root, []string{"src"}, ports.CollectOptions{
			Extensions: []string{".py"},
			Workers:    workers,
		})
		require.NoError(t, err, "workers=%s", workers)
		assert.False(t, truncated)
		if reference == nil {
			reference = hashes
			continue
		}
		assert.True(t, reference.Equal(hashes), "workers=%s produced a different map", workers)
	}
}

func TestCollector_ExplicitFileBypassesExtensionFilter(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"config.toml": "x = 1"})

	collector := newCollector()
	hashes, _, err := collector.Collect(context.Background(), root, []string{"config.toml"}, ports.CollectOptions{
		Extensions: []string{".py"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"config.toml"}, hashes.Paths())
}

func TestCollector_MissingTargetBecomesTaggedPayload(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	collector := newCollector()

	hashes, _, err := collector.Collect(context.Background(), root, []string{"gone.py"}, ports.CollectOptions{})
	require.NoError(t, err)
	require.Contains(t, hashes, "gone.py")
	assert.True(t, hashes["gone.py"].Missing)
}

func TestCollector_MaxFilesTruncatesDeterministically(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.py": "a",
		"src/b.py": "b",
		"src/c.py": "c",
		"src/d.py": "d",
		"src/e.py": "e",
	})

	collector := newCollector()
	first, truncated, err := collector.Collect(context.Background(), root, []string{"src"}, ports.CollectOptions{
		Extensions: []string{".py"},
		MaxFiles:   3,
	})
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Equal(t, []string{"src/a.py", "src/b.py", "src/c.py"}, first.Paths())

	second, truncated2, err := collector.Collect(context.Background(), root, []string{"src"}, ports.CollectOptions{
		Extensions: []string{".py"},
		MaxFiles:   3,
	})
	require.NoError(t, err)
	assert.True(t, truncated2)
	assert.True(t, first.Equal(second))
}

func TestCollector_MaxBytesTruncates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.py": "0123456789",
		"src/b.py": "0123456789",
		"src/c.py": "0123456789",
	})

	collector := newCollector()
	hashes, truncated, err := collector.Collect(context.Background(), root, []string{"src"}, ports.CollectOptions{
		Extensions: []string{".py"},
		MaxBytes:   25,
	})
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Equal(t, []string{"src/a.py", "src/b.py"}, hashes.Paths())
}

func TestCollector_BaselineSkipsRead(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/a.py": "print('a')"})

	collector := newCollector()
	first, _, err := collector.Collect(context.Background(), root, []string{"src"}, ports.CollectOptions{
		Extensions: []string{".py"},
	})
	require.NoError(t, err)

	// Plant a fake hash with matching (mtime, size): the collector must trust
	// the baseline and return it verbatim instead of re-reading the file.
	baseline := first.Clone()
	planted := baseline["src/a.py"]
	planted.Hash = "deadbeefdeadbeef"
	baseline["src/a.py"] = planted

	second, _, err := collector.Collect(context.Background(), root, []string{"src"}, ports.CollectOptions{
		Extensions: []string{".py"},
		Baseline:   baseline,
	})
	require.NoError(t, err)
	assert.Equal(t, "deadbeefdeadbeef", second["src/a.py"].Hash)
}

func TestCollector_BaselineIgnoredOnSizeChange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/a.py": "print('a')"})

	collector := newCollector()
	first, _, err := collector.Collect(context.Background(), root, []string{"src"}, ports.CollectOptions{
		Extensions: []string{".py"},
	})
	require.NoError(t, err)

	writeTree(t, root, map[string]string{"src/a.py": "print('a')  # changed"})

	second, _, err := collector.Collect(context.Background(), root, []string{"src"}, ports.CollectOptions{
		Extensions: []string{".py"},
		Baseline:   first,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first["src/a.py"].Hash, second["src/a.py"].Hash)
}

func TestHashFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o600))

	hash, mtime, err := fs.HashFile(path)
	require.NoError(t, err)
	assert.Len(t, hash, 16)
	assert.Positive(t, mtime)

	_, _, err = fs.HashFile(filepath.Join(root, "gone.toml"))
	require.Error(t, err)
}

func TestFingerprintTargets(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"sift.yaml": "engines: {}"})

	t.Run("mode paths win over defaults", func(t *testing.T) {
		t.Parallel()
		got := fs.FingerprintTargets(root, []string{"src/a.py"}, []string{"src"}, nil)
		assert.Equal(t, []string{"src/a.py", "sift.yaml"}, got)
	})

	t.Run("defaults used when mode paths empty", func(t *testing.T) {
		t.Parallel()
		got := fs.FingerprintTargets(root, nil, []string{"src"}, []string{"ruff.toml"})
		assert.Equal(t, []string{"src", "sift.yaml", "ruff.toml"}, got)
	})

	t.Run("falls back to repository root", func(t *testing.T) {
		t.Parallel()
		empty := t.TempDir()
		got := fs.FingerprintTargets(empty, nil, nil, nil)
		assert.Equal(t, []string{"."}, got)
	})
}
