package config

// fileDTO is the YAML shape of sift.yaml.
type fileDTO struct {
	Version    string               `yaml:"version"`
	Collector  collectorDTO         `yaml:"collector"`
	PluginArgs []string             `yaml:"plugin_args"`
	Include    []string             `yaml:"include"`
	Exclude    []string             `yaml:"exclude"`
	Engines    map[string]engineDTO `yaml:"engines"`
}

type collectorDTO struct {
	Extensions       []string `yaml:"extensions"`
	Workers          string   `yaml:"workers"`
	MaxFiles         int      `yaml:"max_files"`
	MaxBytes         int64    `yaml:"max_bytes"`
	RespectGitignore *bool    `yaml:"respect_gitignore"`
}

type engineDTO struct {
	Cmd        []string              `yaml:"cmd"`
	PluginArgs []string              `yaml:"plugin_args"`
	Include    []string              `yaml:"include"`
	Exclude    []string              `yaml:"exclude"`
	Profile    string                `yaml:"profile"`
	ConfigFile string                `yaml:"config_file"`
	FullPaths  []string              `yaml:"full_paths"`
	Profiles   map[string]profileDTO `yaml:"profiles"`
	Categories map[string][]string   `yaml:"categories"`
}

type profileDTO struct {
	Extends    string   `yaml:"extends"`
	PluginArgs []string `yaml:"plugin_args"`
	Include    []string `yaml:"include"`
	Exclude    []string `yaml:"exclude"`
	ConfigFile string   `yaml:"config_file"`
}

// overrideDTO is the YAML shape of a path-scoped .sift.yaml override file.
// Include and exclude entries are interpreted relative to the override's own
// directory.
type overrideDTO struct {
	Profile    string                `yaml:"profile"`
	PluginArgs []string              `yaml:"plugin_args"`
	Include    []string              `yaml:"include"`
	Exclude    []string              `yaml:"exclude"`
	Profiles   map[string]profileDTO `yaml:"profiles"`
}
