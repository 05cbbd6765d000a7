package domain

import "strings"

// AuditConfig is the domain view of the loaded configuration: collector
// settings, engine declarations, and the ordered list of path-scoped
// override files discovered on disk.
type AuditConfig struct {
	Root      string
	Collector CollectorSettings
	// PluginArgs, Include, and Exclude apply to every engine and sit at the
	// bottom of the merge order: global, then engine settings, then profile.
	PluginArgs []string
	Include    []string
	Exclude    []string
	Engines    map[string]EngineSettings
	Overrides  []OverrideFile
}

// CollectorSettings configures the fingerprint collector.
type CollectorSettings struct {
	// Extensions restricts directory walks to recognized source files.
	Extensions []string
	// Workers is "auto", "", or an integer string; 0/1 means sequential.
	Workers string
	// MaxFiles bounds how many files one collection may visit (0 = unbounded).
	MaxFiles int
	// MaxBytes bounds the cumulative stat size of visited files (0 = unbounded).
	MaxBytes int64
	// RespectGitignore restricts scanning to files git would track.
	RespectGitignore bool
}

// EngineSettings declares one configured engine.
type EngineSettings struct {
	Name       string
	Command    []string
	PluginArgs []string
	Include    []string
	Exclude    []string
	// Profile names the default profile, overridable per invocation.
	Profile    string
	ConfigFile string
	Profiles   map[string]Profile
	// FullPaths is the full-mode scope; current mode takes its paths from
	// the invocation.
	FullPaths []string
	// Categories maps diagnostic codes to category labels.
	Categories map[string][]string
}

// Profile is a named, reusable bundle of engine options. A profile may
// extend another profile of the same engine.
type Profile struct {
	Extends    string
	PluginArgs []string
	Include    []string
	Exclude    []string
	ConfigFile string
}

// OverrideFile is one path-scoped override discovered on disk. Include and
// exclude entries have already been re-expressed relative to the repository
// root by the loader.
type OverrideFile struct {
	// Path is the repository-relative directory the override scopes to.
	Path       string
	Profile    string
	PluginArgs []string
	Include    []string
	Exclude    []string
	Profiles   map[string]Profile
}

// Depth returns the directory depth of the override's path, used to order
// overrides shallowest-to-deepest so deeper ones win.
func (f OverrideFile) Depth() int {
	if f.Path == "" || f.Path == "." {
		return 0
	}
	return strings.Count(f.Path, "/") + 1
}
