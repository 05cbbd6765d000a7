package engines_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sift/internal/adapters/engines"
	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
)

// scriptEngine wraps a shell snippet as an engine command. The trailing
// argv0 placeholder keeps appended plugin args and paths out of the script.
func scriptEngine(name, script string) *engines.CommandEngine {
	return engines.NewCommandEngine(domain.EngineSettings{
		Name:    name,
		Command: []string{"sh", "-c", script, name},
	}, nil)
}

func TestCommandEngine_ParsesJSONLines(t *testing.T) {
	t.Parallel()

	script := `
printf 'some tool banner\n'
printf '{"severity":"error","path":"src/b.py","line":3,"column":1,"code":"E1","message":"bad"}\n'
printf 'progress: 50%%\n'
printf '{"severity":"warning","file":"src/a.py","line":7,"column":2,"code":"W2","message":"meh"}\n'
`
	eng := scriptEngine("demo", script)

	rc := ports.RunContext{Root: t.TempDir(), Mode: domain.ModeCurrent}
	report, err := eng.Run(context.Background(), rc, []string{"src"})
	require.NoError(t, err)
	assert.Equal(t, 0, report.ExitCode)

	require.Len(t, report.Diagnostics, 2)
	// Sorted by path: a.py before b.py, and the "file" key is accepted.
	assert.Equal(t, "src/a.py", report.Diagnostics[0].Path)
	assert.Equal(t, domain.SeverityWarning, report.Diagnostics[0].Severity)
	assert.Equal(t, "src/b.py", report.Diagnostics[1].Path)
	assert.Equal(t, domain.SeverityError, report.Diagnostics[1].Severity)
	assert.Equal(t, "demo", report.Diagnostics[0].Tool)

	require.NotNil(t, report.ToolSummary)
	assert.Equal(t, 1, report.ToolSummary.Errors)
	assert.Equal(t, 1, report.ToolSummary.Warnings)
}

func TestCommandEngine_NonzeroExitIsNotAnError(t *testing.T) {
	t.Parallel()

	eng := scriptEngine("demo", `printf '{"severity":"error","path":"a.py","line":1,"column":1,"message":"x"}\n'; exit 1`)

	report, err := eng.Run(context.Background(), ports.RunContext{Root: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ExitCode)
	assert.Len(t, report.Diagnostics, 1)
}

func TestCommandEngine_StartFailureIsAnError(t *testing.T) {
	t.Parallel()

	eng := engines.NewCommandEngine(domain.EngineSettings{
		Name:    "ghost",
		Command: []string{"/nonexistent/sift-test-binary"},
	}, nil)

	_, err := eng.Run(context.Background(), ports.RunContext{Root: t.TempDir()}, nil)
	require.Error(t, err)
}

func TestCommandEngine_NoCommandConfigured(t *testing.T) {
	t.Parallel()

	eng := engines.NewCommandEngine(domain.EngineSettings{Name: "empty"}, nil)
	_, err := eng.Run(context.Background(), ports.RunContext{Root: t.TempDir()}, nil)
	require.Error(t, err)
}

func TestCommandEngine_FingerprintTargets(t *testing.T) {
	t.Parallel()

	eng := engines.NewCommandEngine(domain.EngineSettings{
		Name:       "demo",
		ConfigFile: "ruff.toml",
	}, nil)

	t.Run("settings config only", func(t *testing.T) {
		t.Parallel()
		got := eng.FingerprintTargets(ports.RunContext{}, nil)
		assert.Equal(t, []string{"ruff.toml"}, got)
	})

	t.Run("resolved config appended when different", func(t *testing.T) {
		t.Parallel()
		rc := ports.RunContext{Options: domain.EngineOptions{ConfigFile: "ruff-strict.toml"}}
		got := eng.FingerprintTargets(rc, nil)
		assert.Equal(t, []string{"ruff.toml", "ruff-strict.toml"}, got)
	})

	t.Run("identical config not duplicated", func(t *testing.T) {
		t.Parallel()
		rc := ports.RunContext{Options: domain.EngineOptions{ConfigFile: "ruff.toml"}}
		got := eng.FingerprintTargets(rc, nil)
		assert.Equal(t, []string{"ruff.toml"}, got)
	})
}

func TestCommandEngine_Version(t *testing.T) {
	t.Parallel()

	eng := engines.NewCommandEngine(domain.EngineSettings{
		Name:    "demo",
		Command: []string{"sh"},
	}, nil)

	// sh --version fails on some systems; either way the result is stable.
	first := eng.Version(context.Background())
	second := eng.Version(context.Background())
	assert.Equal(t, first, second)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := engines.NewRegistry()
	require.NoError(t, registry.Register(scriptEngine("ruff", "true")))
	require.NoError(t, registry.Register(scriptEngine("mypy", "true")))

	t.Run("duplicate registration rejected", func(t *testing.T) {
		t.Parallel()
		err := registry.Register(scriptEngine("ruff", "true"))
		require.Error(t, err)
	})

	t.Run("get known engine", func(t *testing.T) {
		t.Parallel()
		eng, err := registry.Get("ruff")
		require.NoError(t, err)
		assert.Equal(t, "ruff", eng.Name())
	})

	t.Run("get unknown engine", func(t *testing.T) {
		t.Parallel()
		_, err := registry.Get("pylint")
		require.ErrorIs(t, err, domain.ErrUnknownEngine)
	})

	t.Run("names sorted", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"mypy", "ruff"}, registry.Names())
	})
}

func TestRegistry_FromConfig(t *testing.T) {
	t.Parallel()

	t.Run("no engines configured", func(t *testing.T) {
		t.Parallel()
		_, err := engines.FromConfig(&domain.AuditConfig{}, nil)
		require.ErrorIs(t, err, domain.ErrNoEnginesConfigured)
	})

	t.Run("builds command engines", func(t *testing.T) {
		t.Parallel()
		cfg := &domain.AuditConfig{
			Engines: map[string]domain.EngineSettings{
				"ruff": {Name: "ruff", Command: []string{"ruff", "check"}},
			},
		}
		registry, err := engines.FromConfig(cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"ruff"}, registry.Names())
	})
}
