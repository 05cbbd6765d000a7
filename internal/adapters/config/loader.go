// Package config provides the configuration loader for sift.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	adapterfs "go.trai.ch/sift/internal/adapters/fs"
	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigLoader = (*Loader)(nil)

const (
	// ConfigFileName is the root configuration file.
	ConfigFileName = "sift.yaml"
	// OverrideFileName is the name of path-scoped override files discovered
	// anywhere below the root.
	OverrideFileName = ".sift.yaml"
)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	walker *adapterfs.Walker
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(walker *adapterfs.Walker, logger ports.Logger) *Loader {
	return &Loader{walker: walker, logger: logger}
}

// Load reads sift.yaml from root and discovers path-scoped override files.
func (l *Loader) Load(root string) (*domain.AuditConfig, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve root")
	}

	path := filepath.Join(absRoot, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file fileDTO
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	cfg := &domain.AuditConfig{
		Root:       absRoot,
		Collector:  mapCollector(file.Collector),
		PluginArgs: file.PluginArgs,
		Include:    file.Include,
		Exclude:    file.Exclude,
		Engines:    make(map[string]domain.EngineSettings, len(file.Engines)),
	}
	for name, dto := range file.Engines {
		cfg.Engines[name] = mapEngine(name, dto)
	}

	overrides, err := l.discoverOverrides(absRoot)
	if err != nil {
		return nil, err
	}
	cfg.Overrides = overrides

	return cfg, nil
}

// discoverOverrides walks the tree for override files. Files that fail to
// parse are skipped with a warning; a broken override never fails the audit.
func (l *Loader) discoverOverrides(root string) ([]domain.OverrideFile, error) {
	var overrides []domain.OverrideFile
	for path := range l.walker.WalkFiles(root, []string{".yaml"}) {
		if filepath.Base(path) != OverrideFileName {
			continue
		}

		data, err := os.ReadFile(path) //nolint:gosec // path comes from the walked tree
		if err != nil {
			l.logger.Warn("skipping unreadable override file " + path)
			continue
		}

		var dto overrideDTO
		if err := yaml.Unmarshal(data, &dto); err != nil {
			l.logger.Warn("skipping malformed override file " + path)
			continue
		}

		dir := filepath.Dir(path)
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			continue
		}

		overrides = append(overrides, domain.OverrideFile{
			Path:       filepath.ToSlash(rel),
			Profile:    dto.Profile,
			PluginArgs: dto.PluginArgs,
			Include:    domain.NormalizeOverridePaths(root, dir, dto.Include),
			Exclude:    domain.NormalizeOverridePaths(root, dir, dto.Exclude),
			Profiles:   mapProfiles(dto.Profiles),
		})
	}
	return overrides, nil
}

func mapCollector(dto collectorDTO) domain.CollectorSettings {
	settings := domain.CollectorSettings{
		Extensions:       dto.Extensions,
		Workers:          dto.Workers,
		MaxFiles:         dto.MaxFiles,
		MaxBytes:         dto.MaxBytes,
		RespectGitignore: true,
	}
	if dto.RespectGitignore != nil {
		settings.RespectGitignore = *dto.RespectGitignore
	}
	if len(settings.Extensions) == 0 {
		settings.Extensions = []string{".py", ".pyi"}
	}
	return settings
}

func mapEngine(name string, dto engineDTO) domain.EngineSettings {
	return domain.EngineSettings{
		Name:       name,
		Command:    dto.Cmd,
		PluginArgs: dto.PluginArgs,
		Include:    dto.Include,
		Exclude:    dto.Exclude,
		Profile:    dto.Profile,
		ConfigFile: dto.ConfigFile,
		Profiles:   mapProfiles(dto.Profiles),
		FullPaths:  dto.FullPaths,
		Categories: dto.Categories,
	}
}

func mapProfiles(dtos map[string]profileDTO) map[string]domain.Profile {
	if len(dtos) == 0 {
		return nil
	}
	profiles := make(map[string]domain.Profile, len(dtos))
	for name, dto := range dtos {
		profiles[name] = domain.Profile{
			Extends:    dto.Extends,
			PluginArgs: dto.PluginArgs,
			Include:    dto.Include,
			Exclude:    dto.Exclude,
			ConfigFile: dto.ConfigFile,
		}
	}
	return profiles
}
