// Package config loads settings for the alvin command from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/alvin"
)

// Config holds the command's settings.
type Config struct {
	// RecursionLimit is the maximum evaluation nesting.
	RecursionLimit int `yaml:"recursion_limit"`
	// SourceExt is the extension required of files passed to load.
	SourceExt string `yaml:"source_ext"`
	// CollectEvery is the number of top-level inputs between closure
	// registry collections in the REPL. Zero disables periodic collection.
	CollectEvery int `yaml:"collect_every"`

	Extensions Extensions `yaml:"extensions"`
	REPL       REPL       `yaml:"repl"`
}

// Extensions configures the extension store.
type Extensions struct {
	// Store is the path of the file holding extension definitions. Empty
	// means extensions are kept only in memory.
	Store string `yaml:"store"`
	// Persist keeps extensions registered during a session. Otherwise the
	// store reverts when the interpreter exits.
	Persist bool `yaml:"persist"`
}

// REPL configures the interactive prompt.
type REPL struct {
	Prompt   string `yaml:"prompt"`
	Continue string `yaml:"continue"`
	// History is the path of the line history file. Empty disables history.
	History string `yaml:"history"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		RecursionLimit: alvin.DefaultRecursionLimit,
		SourceExt:      alvin.DefaultSourceExt,
		CollectEvery:   64,
		Extensions: Extensions{
			Store: "~/.alvin/extensions.txt",
		},
		REPL: REPL{
			Prompt:   "(α) ",
			Continue: "... ",
			History:  "~/.alvin/history",
		},
	}
}

// Load reads a configuration file. Settings missing from the file keep their
// defaults, and a missing file yields the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("config %s: recursion_limit must not be negative", path)
	}
	if cfg.SourceExt != "" && !strings.HasPrefix(cfg.SourceExt, ".") {
		cfg.SourceExt = "." + cfg.SourceExt
	}
	return cfg, nil
}

// Options returns interpreter options applying the configuration.
func (c *Config) Options() []alvin.Option {
	return []alvin.Option{
		alvin.WithRecursionLimit(c.RecursionLimit),
		alvin.WithSourceExt(c.SourceExt),
	}
}

// Store returns the configured extension store.
func (c *Config) Store() alvin.Store {
	if c.Extensions.Store == "" {
		return alvin.NewMemStore("")
	}
	return alvin.FileStore{Path: ExpandHome(c.Extensions.Store)}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ExpandHome replaces a leading ~ in path with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// DefaultPath is the configuration file read when none is named.
func DefaultPath() string {
	return ExpandHome("~/.alvin/config.yaml")
}
