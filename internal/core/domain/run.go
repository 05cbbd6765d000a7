package domain

import "slices"

// Mode selects the scope of an audit pass. Each engine gets an independent
// cache key per mode.
type Mode string

const (
	// ModeCurrent is the narrow fast-feedback scope.
	ModeCurrent Mode = "current"
	// ModeFull is the broad full-tree scope.
	ModeFull Mode = "full"
)

// CachedRun is one previously observed engine invocation as persisted in the
// cache file. The cache store owns the canonical copy; callers always
// receive clones.
type CachedRun struct {
	Command         []string            `json:"command"`
	ExitCode        int                 `json:"exit_code"`
	DurationMs      float64             `json:"duration_ms"`
	Diagnostics     []Diagnostic        `json:"diagnostics"`
	FileHashes      HashMap             `json:"file_hashes"`
	Profile         string              `json:"profile,omitempty"`
	ConfigFile      string              `json:"config_file,omitempty"`
	PluginArgs      []string            `json:"plugin_args,omitempty"`
	Include         []string            `json:"include,omitempty"`
	Exclude         []string            `json:"exclude,omitempty"`
	Overrides       []OverrideEntry     `json:"overrides,omitempty"`
	CategoryMapping map[string][]string `json:"category_mapping,omitempty"`
	ToolSummary     *ToolSummary        `json:"tool_summary"`
}

// Clone returns an independent copy of the run.
func (r CachedRun) Clone() CachedRun {
	cloned := r
	cloned.Command = slices.Clone(r.Command)
	cloned.Diagnostics = CloneDiagnostics(r.Diagnostics)
	cloned.FileHashes = r.FileHashes.Clone()
	cloned.PluginArgs = slices.Clone(r.PluginArgs)
	cloned.Include = slices.Clone(r.Include)
	cloned.Exclude = slices.Clone(r.Exclude)
	cloned.Overrides = slices.Clone(r.Overrides)
	if r.CategoryMapping != nil {
		cloned.CategoryMapping = make(map[string][]string, len(r.CategoryMapping))
		for k, v := range r.CategoryMapping {
			cloned.CategoryMapping[k] = slices.Clone(v)
		}
	}
	if r.ToolSummary != nil {
		summary := *r.ToolSummary
		cloned.ToolSummary = &summary
	}
	return cloned
}

// RunResult is the orchestrator's output for one (engine, mode) pair.
// EngineError marks a non-fatal engine failure and is mutually exclusive
// with a successful diagnostics list.
type RunResult struct {
	Engine      string        `json:"engine"`
	Mode        Mode          `json:"mode"`
	Command     []string      `json:"command"`
	ExitCode    int           `json:"exit_code"`
	DurationMs  float64       `json:"duration_ms"`
	Diagnostics []Diagnostic  `json:"diagnostics"`
	Cached      bool          `json:"cached"`
	Options     EngineOptions `json:"options"`
	ToolSummary *ToolSummary  `json:"tool_summary,omitempty"`
	EngineError string        `json:"engine_error,omitempty"`
}

// Failed reports whether the engine failed to produce diagnostics.
func (r RunResult) Failed() bool {
	return r.EngineError != ""
}

// AuditOutcome is the aggregate produced by one orchestrator invocation,
// consumed by the reporting layer.
type AuditOutcome struct {
	Results   []RunResult `json:"results"`
	Truncated bool        `json:"truncated"`
}
