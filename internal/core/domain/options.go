package domain

import (
	"slices"
	"strings"
)

// EngineOptions is the fully resolved set of invocation options for one
// (engine, run) pair. It is produced once by the option resolver and not
// mutated afterwards.
type EngineOptions struct {
	PluginArgs      []string            `json:"plugin_args,omitempty"`
	Include         []string            `json:"include,omitempty"`
	Exclude         []string            `json:"exclude,omitempty"`
	Profile         string              `json:"profile,omitempty"`
	ConfigFile      string              `json:"config_file,omitempty"`
	Overrides       []OverrideEntry     `json:"overrides,omitempty"`
	CategoryMapping map[string][]string `json:"category_mapping,omitempty"`
}

// Clone returns an independent copy.
func (o EngineOptions) Clone() EngineOptions {
	cloned := o
	cloned.PluginArgs = slices.Clone(o.PluginArgs)
	cloned.Include = slices.Clone(o.Include)
	cloned.Exclude = slices.Clone(o.Exclude)
	cloned.Overrides = slices.Clone(o.Overrides)
	if o.CategoryMapping != nil {
		cloned.CategoryMapping = make(map[string][]string, len(o.CategoryMapping))
		for k, v := range o.CategoryMapping {
			cloned.CategoryMapping[k] = slices.Clone(v)
		}
	}
	return cloned
}

// OverrideEntry records the fields an applied path-scoped override actually
// changed, not the full merged state. An entry with no changed fields is
// never emitted.
type OverrideEntry struct {
	Path       string   `json:"path"`
	Profile    string   `json:"profile,omitempty"`
	PluginArgs []string `json:"plugin_args,omitempty"`
	Include    []string `json:"include,omitempty"`
	Exclude    []string `json:"exclude,omitempty"`
}

// Empty reports whether the entry carries no changed fields.
func (e OverrideEntry) Empty() bool {
	return e.Profile == "" && len(e.PluginArgs) == 0 && len(e.Include) == 0 && len(e.Exclude) == 0
}

// NormalizeCategoryMapping lowercases keys and values and sorts and
// deduplicates each value list, so equal logical mappings compare equal.
func NormalizeCategoryMapping(mapping map[string][]string) map[string][]string {
	if len(mapping) == 0 {
		return nil
	}
	normalized := make(map[string][]string, len(mapping))
	for key, values := range mapping {
		lowered := make([]string, 0, len(values))
		for _, v := range values {
			lowered = append(lowered, strings.ToLower(v))
		}
		slices.Sort(lowered)
		normalized[strings.ToLower(key)] = slices.Compact(lowered)
	}
	return normalized
}
