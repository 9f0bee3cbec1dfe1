package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk tally configuration. All fields are optional; a
// missing config file yields the zero value.
type Config struct {
	// Remap rewrites working-directory paths recorded in logs before repo
	// resolution (old path -> canonical path).
	Remap map[string]string `yaml:"remap"`
	// ProjectRemap renames a project (by base name) for aggregation.
	ProjectRemap map[string]string `yaml:"project_remap"`
	// ParentRemap renames a project keyed by "parentdir/name"; it takes
	// priority over ProjectRemap.
	ParentRemap map[string]string `yaml:"parent_remap"`
	Ignore      Ignore            `yaml:"ignore"`
	// LogBundle is a directory of per-machine log copies maintained by
	// `tally sync`.
	LogBundle string `yaml:"log_bundle"`
}

type Ignore struct {
	Paths    []string `yaml:"paths"`
	Projects []string `yaml:"projects"`
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tally", "config.yaml")
}

// Load reads the config at path, or the default location when path is empty.
// A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return Config{}, nil
		}
	} else {
		path = ExpandHome(path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.LogBundle = ExpandHome(cfg.LogBundle)
	return cfg, nil
}

// ExpandHome resolves a leading ~ to the current user's home directory.
func ExpandHome(path string) string {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// IgnoresPath reports whether cwd matches an ignored path exactly or lives
// underneath one.
func (c Config) IgnoresPath(cwd string) bool {
	for _, ignored := range c.Ignore.Paths {
		if cwd == ignored || strings.HasPrefix(cwd, ignored+"/") {
			return true
		}
	}
	return false
}

// IgnoresProject reports whether a project base name is ignored.
func (c Config) IgnoresProject(name string) bool {
	for _, ignored := range c.Ignore.Projects {
		if name == ignored {
			return true
		}
	}
	return false
}

// MapPath applies the path remap and ignore rules to a logged working
// directory. The second return is false when events from this path must be
// dropped.
func (c Config) MapPath(cwd string) (string, bool) {
	if mapped, ok := c.Remap[cwd]; ok {
		cwd = mapped
	}
	if c.IgnoresPath(cwd) {
		return "", false
	}
	if c.IgnoresProject(filepath.Base(cwd)) {
		return "", false
	}
	return cwd, true
}

// RenameProject applies parent-scoped then plain project renames.
func (c Config) RenameProject(parentDir, name string) string {
	if parentDir != "" {
		if renamed, ok := c.ParentRemap[parentDir+"/"+name]; ok {
			return renamed
		}
	}
	if renamed, ok := c.ProjectRemap[name]; ok {
		return renamed
	}
	return name
}
