// Package resolver merges global settings, named profiles, and path-scoped
// overrides into the final engine invocation options.
package resolver

import (
	"sort"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
)

// Resolver computes EngineOptions. It is stateless; one instance serves all
// engines.
type Resolver struct {
	logger ports.Logger
}

// New creates a new Resolver.
func New(logger ports.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve merges, in order: global config, engine settings, the active
// profile, and every path-scoped override sorted shallowest-to-deepest so
// deeper overrides win. List merges append new entries only; nothing is
// ever removed or duplicated. A missing profile reference is a warning,
// never an error.
func (r *Resolver) Resolve(
	cfg *domain.AuditConfig,
	settings domain.EngineSettings,
	explicitProfile string,
	engineCategories map[string][]string,
) domain.EngineOptions {
	state := domain.EngineOptions{}

	// Active profile: explicit override > engine default > none.
	profileName := explicitProfile
	if profileName == "" {
		profileName = settings.Profile
	}
	var profile *domain.Profile
	if profileName != "" {
		if resolved, ok := lookupProfile(settings.Profiles, profileName); ok {
			profile = &resolved
			state.Profile = profileName
		} else {
			r.logger.Warn("profile " + profileName + " not defined for engine " + settings.Name + ", continuing with base settings")
		}
	}

	state.PluginArgs = appendNew(state.PluginArgs, cfg.PluginArgs)
	state.PluginArgs = appendNew(state.PluginArgs, settings.PluginArgs)

	include := appendNew(appendNew(nil, cfg.Include), settings.Include)
	exclude := appendNew(appendNew(nil, cfg.Exclude), settings.Exclude)

	state.ConfigFile = settings.ConfigFile

	if profile != nil {
		state.PluginArgs = appendNew(state.PluginArgs, profile.PluginArgs)
		include = appendNew(include, profile.Include)
		exclude = appendNew(exclude, profile.Exclude)
		if profile.ConfigFile != "" {
			state.ConfigFile = profile.ConfigFile
		}
	}

	state.Include = domain.NormalizePaths(cfg.Root, include)
	state.Exclude = domain.NormalizePaths(cfg.Root, exclude)

	for _, override := range sortOverrides(cfg.Overrides) {
		r.applyOverride(cfg, settings, override, &state)
	}

	state.CategoryMapping = domain.NormalizeCategoryMapping(engineCategories)
	return state
}

// applyOverride applies one path-scoped override and records the diff it
// introduced, if any.
func (r *Resolver) applyOverride(
	cfg *domain.AuditConfig,
	settings domain.EngineSettings,
	override domain.OverrideFile,
	state *domain.EngineOptions,
) {
	beforeProfile := state.Profile
	beforeArgs := len(state.PluginArgs)
	beforeInclude := len(state.Include)
	beforeExclude := len(state.Exclude)

	if override.Profile != "" {
		profiles := mergedProfiles(settings.Profiles, override.Profiles)
		if resolved, ok := lookupProfile(profiles, override.Profile); ok {
			state.Profile = override.Profile
			state.PluginArgs = appendNew(state.PluginArgs, resolved.PluginArgs)
			state.Include = appendNew(state.Include, domain.NormalizePaths(cfg.Root, resolved.Include))
			state.Exclude = appendNew(state.Exclude, domain.NormalizePaths(cfg.Root, resolved.Exclude))
			if resolved.ConfigFile != "" {
				state.ConfigFile = resolved.ConfigFile
			}
		} else {
			r.logger.Warn("override " + override.Path + " references unknown profile " + override.Profile + " for engine " + settings.Name)
		}
	}

	state.PluginArgs = appendNew(state.PluginArgs, override.PluginArgs)
	state.Include = appendNew(state.Include, override.Include)
	state.Exclude = appendNew(state.Exclude, override.Exclude)

	entry := domain.OverrideEntry{Path: override.Path}
	if state.Profile != beforeProfile {
		entry.Profile = state.Profile
	}
	if len(state.PluginArgs) > beforeArgs {
		entry.PluginArgs = append([]string(nil), state.PluginArgs[beforeArgs:]...)
	}
	if len(state.Include) > beforeInclude {
		entry.Include = append([]string(nil), state.Include[beforeInclude:]...)
	}
	if len(state.Exclude) > beforeExclude {
		entry.Exclude = append([]string(nil), state.Exclude[beforeExclude:]...)
	}
	if !entry.Empty() {
		state.Overrides = append(state.Overrides, entry)
	}
}

// sortOverrides orders overrides by ascending directory depth, ties broken
// by path string, so deeper overrides are applied last and win.
func sortOverrides(overrides []domain.OverrideFile) []domain.OverrideFile {
	sorted := make([]domain.OverrideFile, len(overrides))
	copy(sorted, overrides)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Depth() != sorted[j].Depth() {
			return sorted[i].Depth() < sorted[j].Depth()
		}
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}

// lookupProfile resolves a profile by name, flattening its extends chain.
// Child entries win over parent entries; list fields merge parent-first.
func lookupProfile(profiles map[string]domain.Profile, name string) (domain.Profile, bool) {
	profile, ok := profiles[name]
	if !ok {
		return domain.Profile{}, false
	}

	visited := map[string]bool{name: true}
	merged := profile
	parent := profile.Extends
	for parent != "" && !visited[parent] {
		visited[parent] = true
		base, ok := profiles[parent]
		if !ok {
			break
		}
		merged.PluginArgs = appendNew(append([]string(nil), base.PluginArgs...), merged.PluginArgs)
		merged.Include = appendNew(append([]string(nil), base.Include...), merged.Include)
		merged.Exclude = appendNew(append([]string(nil), base.Exclude...), merged.Exclude)
		if merged.ConfigFile == "" {
			merged.ConfigFile = base.ConfigFile
		}
		parent = base.Extends
	}
	merged.Extends = ""
	return merged, true
}

func mergedProfiles(base, overlay map[string]domain.Profile) map[string]domain.Profile {
	if len(overlay) == 0 {
		return base
	}
	merged := make(map[string]domain.Profile, len(base)+len(overlay))
	for name, profile := range base {
		merged[name] = profile
	}
	for name, profile := range overlay {
		merged[name] = profile
	}
	return merged
}

// appendNew appends entries from additions that are not already present,
// preserving order. It never removes or duplicates entries.
func appendNew(existing, additions []string) []string {
	if len(additions) == 0 {
		return existing
	}
	seen := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		seen[v] = struct{}{}
	}
	for _, v := range additions {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		existing = append(existing, v)
	}
	return existing
}
