package cache_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sift/internal/adapters/cache"
	"go.trai.ch/sift/internal/core/domain"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Info(string)     {}
func (l *recordingLogger) Warn(msg string) { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(error)     {}

func sampleRun(hashes domain.HashMap) domain.CachedRun {
	return domain.CachedRun{
		Command:    []string{"ruff", "check"},
		ExitCode:   1,
		DurationMs: 12.5,
		Diagnostics: []domain.Diagnostic{
			{Tool: "ruff", Severity: domain.SeverityError, Path: "src/a.py", Line: 3, Column: 1, Code: "E501", Message: "line too long"},
		},
		FileHashes: hashes,
	}
}

func TestStore_KeyFor(t *testing.T) {
	t.Parallel()

	store := cache.NewStore(filepath.Join(t.TempDir(), cache.DefaultCacheFile), nil)

	t.Run("ordering independent", func(t *testing.T) {
		t.Parallel()
		a := store.KeyFor("ruff", domain.ModeCurrent, []string{"b.py", "a.py"}, []string{"x", "y"})
		b := store.KeyFor("ruff", domain.ModeCurrent, []string{"a.py", "b.py"}, []string{"y", "x"})
		assert.Equal(t, a, b)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()
		a := store.KeyFor("ruff", domain.ModeCurrent, []string{"a.py", "a.py"}, nil)
		b := store.KeyFor("ruff", domain.ModeCurrent, []string{"a.py"}, nil)
		assert.Equal(t, a, b)
	})

	t.Run("mode distinguishes", func(t *testing.T) {
		t.Parallel()
		a := store.KeyFor("ruff", domain.ModeCurrent, []string{"a.py"}, nil)
		b := store.KeyFor("ruff", domain.ModeFull, []string{"a.py"}, nil)
		assert.NotEqual(t, a, b)
	})

	t.Run("flags distinguish", func(t *testing.T) {
		t.Parallel()
		a := store.KeyFor("ruff", domain.ModeCurrent, []string{"a.py"}, []string{"profile=strict"})
		b := store.KeyFor("ruff", domain.ModeCurrent, []string{"a.py"}, []string{"profile=lenient"})
		assert.NotEqual(t, a, b)
	})
}

func TestStore_GetRequiresTotalHashEquality(t *testing.T) {
	t.Parallel()

	store := cache.NewStore(filepath.Join(t.TempDir(), cache.DefaultCacheFile), nil)
	hashes := domain.HashMap{
		"src/a.py": domain.ContentHash("aa", 1, 2),
		"src/b.py": domain.ContentHash("bb", 3, 4),
	}
	store.Update("key", sampleRun(hashes))

	t.Run("hit on equal map", func(t *testing.T) {
		t.Parallel()
		got := store.Get("key", hashes.Clone())
		require.NotNil(t, got)
		assert.Equal(t, 1, got.ExitCode)
	})

	t.Run("miss on changed payload", func(t *testing.T) {
		t.Parallel()
		current := hashes.Clone()
		current["src/a.py"] = domain.ContentHash("cc", 5, 2)
		assert.Nil(t, store.Get("key", current))
	})

	t.Run("miss on added path", func(t *testing.T) {
		t.Parallel()
		current := hashes.Clone()
		current["src/c.py"] = domain.ContentHash("dd", 6, 7)
		assert.Nil(t, store.Get("key", current))
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, store.Get("other", hashes))
	})
}

func TestStore_GetReturnsClone(t *testing.T) {
	t.Parallel()

	store := cache.NewStore(filepath.Join(t.TempDir(), cache.DefaultCacheFile), nil)
	hashes := domain.HashMap{"a.py": domain.ContentHash("aa", 1, 2)}
	store.Update("key", sampleRun(hashes))

	first := store.Get("key", hashes)
	require.NotNil(t, first)
	first.Diagnostics[0].Message = "mutated"
	first.FileHashes["a.py"] = domain.MissingFile()

	second := store.Get("key", hashes)
	require.NotNil(t, second)
	assert.Equal(t, "line too long", second.Diagnostics[0].Message)
}

func TestStore_PeekFileHashes(t *testing.T) {
	t.Parallel()

	store := cache.NewStore(filepath.Join(t.TempDir(), cache.DefaultCacheFile), nil)
	hashes := domain.HashMap{"a.py": domain.ContentHash("aa", 1, 2)}
	store.Update("key", sampleRun(hashes))

	peeked := store.PeekFileHashes("key")
	require.NotNil(t, peeked)
	assert.True(t, hashes.Equal(peeked))

	assert.Nil(t, store.PeekFileHashes("missing"))
}

func TestStore_SaveAndReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), cache.DefaultCacheFile)
	store := cache.NewStore(path, nil)
	hashes := domain.HashMap{
		"a.py":       domain.ContentHash("aa", 1, 2),
		"missing.py": domain.MissingFile(),
	}
	store.Update("key", sampleRun(hashes))
	require.NoError(t, store.Save())

	reloaded := cache.NewStore(path, nil)
	assert.Equal(t, 1, reloaded.Len())

	got := reloaded.Get("key", hashes)
	require.NotNil(t, got)
	assert.Equal(t, []string{"ruff", "check"}, got.Command)
	assert.True(t, hashes.Equal(got.FileHashes))
}

func TestStore_SaveCleanIsNoOp(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), cache.DefaultCacheFile)
	store := cache.NewStore(path, nil)
	hashes := domain.HashMap{"a.py": domain.ContentHash("aa", 1, 2)}
	store.Update("key", sampleRun(hashes))
	require.NoError(t, store.Save())

	// Overwrite the file with a sentinel; a clean store must not touch it.
	require.NoError(t, os.WriteFile(path, []byte(`{"entries":{}}`), 0o600))
	require.NoError(t, store.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"entries":{}}`, string(data))
}

func TestStore_CorruptFileWarnsAndStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), cache.DefaultCacheFile)
	require.NoError(t, os.WriteFile(path, []byte("{ not json"), 0o600))

	logger := &recordingLogger{}
	store := cache.NewStore(path, logger)

	assert.Equal(t, 0, store.Len())
	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "corrupt")
}

func TestStore_FileIsDeterministic(t *testing.T) {
	t.Parallel()

	write := func(dir string, order []string) []byte {
		path := filepath.Join(dir, cache.DefaultCacheFile)
		store := cache.NewStore(path, nil)
		for _, key := range order {
			store.Update(key, sampleRun(domain.HashMap{"a.py": domain.ContentHash("aa", 1, 2)}))
		}
		require.NoError(t, store.Save())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		return data
	}

	first := write(t.TempDir(), []string{"k1", "k2", "k3"})
	second := write(t.TempDir(), []string{"k3", "k1", "k2"})
	assert.Equal(t, string(first), string(second))

	// The serialized form stays valid JSON with the expected wrapper.
	var file struct {
		Entries map[string]json.RawMessage `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(first, &file))
	assert.Len(t, file.Entries, 3)
}
