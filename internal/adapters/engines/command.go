package engines

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Engine    = (*CommandEngine)(nil)
	_ ports.Versioned = (*CommandEngine)(nil)
)

// CommandEngine wraps one external analysis tool as a subprocess. The
// configured argv is extended with the resolved plugin args and the path
// list; stdout is parsed as JSON-lines diagnostics. Tools locate their own
// config files; the config file still participates in fingerprinting via
// FingerprintTargets.
type CommandEngine struct {
	settings domain.EngineSettings
	logger   ports.Logger

	versionOnce sync.Once
	version     string
}

// NewCommandEngine creates an engine from its configuration entry.
func NewCommandEngine(settings domain.EngineSettings, logger ports.Logger) *CommandEngine {
	return &CommandEngine{settings: settings, logger: logger}
}

// Name returns the engine's registry name.
func (e *CommandEngine) Name() string {
	return e.settings.Name
}

// Run invokes the tool over the given paths with full stdout/stderr
// capture. A nonzero exit is a normal outcome for an analysis tool with
// findings; only a failure to start or a signal is an engine error.
func (e *CommandEngine) Run(ctx context.Context, rc ports.RunContext, paths []string) (*ports.EngineReport, error) {
	if len(e.settings.Command) == 0 {
		return nil, zerr.With(zerr.New("engine has no command configured"), "engine", e.Name())
	}

	argv := slices.Clone(e.settings.Command)
	argv = append(argv, rc.Options.PluginArgs...)
	argv = append(argv, paths...)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // argv comes from the user's configuration
	cmd.Dir = rc.Root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, zerr.With(zerr.Wrap(runErr, "engine command failed to start"), "engine", e.Name())
		}
		exitCode = exitErr.ExitCode()
		if exitCode < 0 {
			return nil, zerr.With(zerr.Wrap(runErr, "engine command terminated by signal"), "engine", e.Name())
		}
	}

	diagnostics := e.parseDiagnostics(stdout.Bytes())
	domain.SortDiagnostics(diagnostics)
	summary := domain.Summarize(diagnostics)

	return &ports.EngineReport{
		Command:     argv,
		ExitCode:    exitCode,
		DurationMs:  durationMs,
		Diagnostics: diagnostics,
		ToolSummary: &summary,
	}, nil
}

// diagnosticLine is one JSON-lines record on the tool's stdout. Both "path"
// and "file" are accepted for the location key.
type diagnosticLine struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// parseDiagnostics scans stdout line by line. Lines that are not JSON
// objects are tool noise and skipped.
func (e *CommandEngine) parseDiagnostics(out []byte) []domain.Diagnostic {
	var diagnostics []domain.Diagnostic

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}

		var parsed diagnosticLine
		if err := json.Unmarshal(line, &parsed); err != nil {
			continue
		}

		var raw map[string]any
		_ = json.Unmarshal(line, &raw)

		path := parsed.Path
		if path == "" {
			path = parsed.File
		}

		diagnostics = append(diagnostics, domain.Diagnostic{
			Tool:     e.Name(),
			Severity: domain.NormalizeSeverity(parsed.Severity),
			Path:     filepath.ToSlash(path),
			Line:     parsed.Line,
			Column:   parsed.Column,
			Code:     parsed.Code,
			Message:  parsed.Message,
			Raw:      raw,
		})
	}

	return diagnostics
}

// CategoryMapping returns the engine's static diagnostic-code to category
// mapping as configured.
func (e *CommandEngine) CategoryMapping() map[string][]string {
	return e.settings.Categories
}

// FingerprintTargets returns the config files whose content should
// invalidate this engine's cache entries.
func (e *CommandEngine) FingerprintTargets(rc ports.RunContext, _ []string) []string {
	var extra []string
	if e.settings.ConfigFile != "" {
		extra = append(extra, e.settings.ConfigFile)
	}
	if rc.Options.ConfigFile != "" && rc.Options.ConfigFile != e.settings.ConfigFile {
		extra = append(extra, rc.Options.ConfigFile)
	}
	return extra
}

// Version detects the tool version by invoking "<tool> --version" once per
// process. A tool that cannot report a version yields "".
func (e *CommandEngine) Version(ctx context.Context) string {
	e.versionOnce.Do(func() {
		if len(e.settings.Command) == 0 {
			return
		}
		cmd := exec.CommandContext(ctx, e.settings.Command[0], "--version") //nolint:gosec // argv comes from the user's configuration
		out, err := cmd.Output()
		if err != nil {
			return
		}
		line, _, _ := strings.Cut(string(out), "\n")
		e.version = strings.TrimSpace(line)
	})
	return e.version
}
