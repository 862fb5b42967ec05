// Package config resolves the settings shared by every golden command:
// where the golden file lives, which repository and branch hold the
// baseline, and which revision to diff against.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"golden/internal/logging"
)

const (
	DefaultGoldenPath = "golden.json"
	DefaultRemote     = "origin"
	DefaultBranch     = "master"
)

// Config is read once per process from an optional file and flag overrides.
type Config struct {
	BaseRev    string `json:"diff_base,omitempty" yaml:"diff_base,omitempty"`
	GoldenPath string `json:"golden_path,omitempty" yaml:"golden_path,omitempty"`
	RepoDir    string `json:"repo_dir,omitempty" yaml:"repo_dir,omitempty"`
	Remote     string `json:"remote,omitempty" yaml:"remote,omitempty"`
	Branch     string `json:"branch,omitempty" yaml:"branch,omitempty"`
	FetchDepth int    `json:"fetch_depth,omitempty" yaml:"fetch_depth,omitempty"`
	LogLevel   string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat  string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// DiffBase is the revision the baseline golden file is read at. It
// defaults to the remote-tracking ref of the baseline branch.
func (c *Config) DiffBase() string {
	if rev := strings.TrimSpace(c.BaseRev); rev != "" {
		return rev
	}
	return c.Remote + "/" + c.Branch
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.FetchDepth < 0 {
		errs = append(errs, fmt.Errorf("fetch_depth must be >= 0, got %d", c.FetchDepth))
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if strings.ContainsAny(c.Remote, " \t") || strings.ContainsAny(c.Branch, " \t") {
		errs = append(errs, errors.New("remote and branch must not contain whitespace"))
	}
	for _, f := range [...]struct{ name, value string }{
		{"diff_base", c.BaseRev}, {"remote", c.Remote}, {"branch", c.Branch},
	} {
		if strings.HasPrefix(strings.TrimSpace(f.value), "-") {
			errs = append(errs, fmt.Errorf("%s must not start with '-', got %q", f.name, f.value))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) applyDefaults() {
	if c.GoldenPath == "" {
		c.GoldenPath = DefaultGoldenPath
	}
	if c.RepoDir == "" {
		c.RepoDir = "."
	}
	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	if c.Branch == "" {
		c.Branch = DefaultBranch
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// LoadFromPath reads a config file (YAML or JSON), applies defaults and validates it.
// Format is detected by extension (.yaml/.yml → YAML, .json → JSON) or by content.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes. ext is the file extension used as a format hint; empty = detect from content.
func Load(data []byte, ext string) (*Config, error) {
	var c Config
	if err := decode(data, ext, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

func decode(data []byte, ext string, c *Config) error {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}
	if ext == ".json" {
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config json: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}
