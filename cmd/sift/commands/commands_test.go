package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sift/cmd/sift/commands"
	"go.trai.ch/sift/internal/adapters/cache"
	"go.trai.ch/sift/internal/adapters/config"
	adapterfs "go.trai.ch/sift/internal/adapters/fs"
	"go.trai.ch/sift/internal/adapters/telemetry"
	"go.trai.ch/sift/internal/app"
	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/engine/orchestrator"
	"go.trai.ch/sift/internal/engine/resolver"
)

type testLogger struct{}

func (l *testLogger) Info(string) {}
func (l *testLogger) Warn(string) {}
func (l *testLogger) Error(error) {}

// newCLI wires a CLI over real adapters, the same shape the graft nodes
// produce. The cache follows the root chosen via -C at run time.
func newCLI(t *testing.T) (*commands.CLI, *bytes.Buffer) {
	t.Helper()
	logger := &testLogger{}
	walker := adapterfs.NewWalker()
	tracer := telemetry.NewNoOpTracer()
	orch := orchestrator.New(
		resolver.New(logger),
		adapterfs.NewCollector(walker, logger),
		cache.NewFactory(logger),
		tracer,
		logger,
	)
	cli := commands.New(app.New(config.NewLoader(walker, logger), orch, tracer, logger))

	out := &bytes.Buffer{}
	cli.SetOut(out)
	return cli, out
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func engineConfig(severity string) string {
	return `
collector:
  extensions: [".py"]
include: ["src"]
engines:
  demo:
    cmd: ["sh", "-c", "printf '{\"severity\":\"` + severity + `\",\"path\":\"src/a.py\",\"line\":1,\"column\":1,\"code\":\"X1\",\"message\":\"finding\"}\n'", "demo"]
`
}

func TestVersionCommand(t *testing.T) {
	cli, out := newCLI(t)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "sift version dev\n", out.String())
}

func TestRun_PrintsDiagnosticsAndSummary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, config.ConfigFileName, engineConfig("warning"))
	writeFile(t, root, "src/a.py", "print('a')")

	cli, out := newCLI(t)
	cli.SetArgs([]string{"run", "-C", root})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "src/a.py:1:1: warning X1 finding (demo)")
	assert.Contains(t, out.String(), "demo/current: 1 diagnostics")
}

func TestRun_ErrorSeverityFailsTheAudit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, config.ConfigFileName, engineConfig("error"))
	writeFile(t, root, "src/a.py", "print('a')")

	cli, out := newCLI(t)
	cli.SetArgs([]string{"run", "-C", root})

	err := cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrAuditFailed)
	// Findings are still printed before the failure is reported.
	assert.Contains(t, out.String(), "src/a.py:1:1: error X1 finding (demo)")
}

func TestRun_UnknownEngine(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, config.ConfigFileName, engineConfig("warning"))

	cli, _ := newCLI(t)
	cli.SetArgs([]string{"run", "-C", root, "--engine", "ghost"})

	err := cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrUnknownEngine)
}

func TestRun_MissingConfig(t *testing.T) {
	root := t.TempDir()
	cli, _ := newCLI(t)
	cli.SetArgs([]string{"run", "-C", root})

	err := cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestClean_RemovesCacheFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, cache.DefaultCacheFile, "{}")

	cli, _ := newCLI(t)
	cli.SetArgs([]string{"clean", "-C", root})

	require.NoError(t, cli.Execute(context.Background()))
	assert.NoFileExists(t, filepath.Join(root, cache.DefaultCacheFile))
}
