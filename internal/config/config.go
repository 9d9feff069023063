// Package config loads the settings shared by the shard and index commands.
//
// Values are layered: struct defaults, then an optional config file (YAML,
// JSON, TOML, or JSONC with comments and trailing commas), then MIRROR_SHARD_*
// environment variables. Command-line flags are applied on top by the caller.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tidwall/jsonc"

	"github.com/dendrascience/mirror-shard/metaindex"
)

// Lookup strategies for resolving archives.
const (
	LookupIndex = "index"
	LookupWalk  = "walk"
)

// Config holds every tunable of a run.
type Config struct {
	SourceDir string `yaml:"source_dir" json:"source_dir" toml:"source_dir" env:"MIRROR_SHARD_SOURCE_DIR"`
	IndexDir  string `yaml:"index_dir" json:"index_dir" toml:"index_dir" env:"MIRROR_SHARD_INDEX_DIR"`
	MirrorDir string `yaml:"mirror_dir" json:"mirror_dir" toml:"mirror_dir" env:"MIRROR_SHARD_MIRROR_DIR"`
	LogPath   string `yaml:"log_path" json:"log_path" toml:"log_path" env:"MIRROR_SHARD_LOG_PATH"`

	Threads int  `yaml:"threads" json:"threads" toml:"threads" env:"MIRROR_SHARD_THREADS" env-default:"4"`
	DryRun  bool `yaml:"dry_run" json:"dry_run" toml:"dry_run" env:"MIRROR_SHARD_DRY_RUN"`
	Verbose bool `yaml:"verbose" json:"verbose" toml:"verbose" env:"MIRROR_SHARD_VERBOSE"`

	Lookup     string   `yaml:"lookup" json:"lookup" toml:"lookup" env:"MIRROR_SHARD_LOOKUP" env-default:"index"`
	Overwrite  bool     `yaml:"overwrite" json:"overwrite" toml:"overwrite" env:"MIRROR_SHARD_OVERWRITE"`
	Extensions []string `yaml:"extensions" json:"extensions" toml:"extensions" env:"MIRROR_SHARD_EXTENSIONS" env-default:".crate"`

	ExcludeDirs  []string `yaml:"exclude_dirs" json:"exclude_dirs" toml:"exclude_dirs" env:"MIRROR_SHARD_EXCLUDE_DIRS" env-default:".git,.venv,site-packages,pip,python*,__pycache__"`
	SkipSuffixes []string `yaml:"skip_suffixes" json:"skip_suffixes" toml:"skip_suffixes" env:"MIRROR_SHARD_SKIP_SUFFIXES" env-default:".py,.pyc,.pyd,.dll,.exe,.bat,.sh,.md,.txt,.html"`
	SkipNames    []string `yaml:"skip_names" json:"skip_names" toml:"skip_names" env:"MIRROR_SHARD_SKIP_NAMES" env-default:"config.json"`
}

// Load reads the config file at path, if path is not empty, and applies the
// environment on top.
func Load(path string) (Config, error) {
	var cfg Config
	switch {
	case path == "":
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("reading environment: %w", err)
		}
	case strings.EqualFold(filepath.Ext(path), ".jsonc"):
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("reading environment: %w", err)
		}
	default:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Validate reports settings that cannot produce a working run.
func (c Config) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", c.Threads)
	}
	if c.Lookup != LookupIndex && c.Lookup != LookupWalk {
		return fmt.Errorf("lookup must be %q or %q, got %q", LookupIndex, LookupWalk, c.Lookup)
	}
	for _, e := range c.Extensions {
		if !strings.HasPrefix(e, ".") || len(e) < 2 {
			return fmt.Errorf("extension %q must start with a dot", e)
		}
	}
	return c.Filter().Validate()
}

// Filter returns the metadata file filter described by the config.
func (c Config) Filter() metaindex.Filter {
	return metaindex.Filter{
		ExcludeDirs:  c.ExcludeDirs,
		SkipSuffixes: c.SkipSuffixes,
		SkipNames:    c.SkipNames,
	}
}
