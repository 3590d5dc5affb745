// Package config provides reading and writing of resolvemcp configuration.
// Supports both global (~/.resolvemcp/config.yaml) and local
// (.resolvemcp/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: goes back to wherever the config was read from.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Dir is the name of the config directory, both in $HOME and locally.
const Dir = ".resolvemcp"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.resolvemcp/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .resolvemcp/config.yaml
	ScopeLocal
)

// Python selects the interpreter that runs the bridge.
type Python struct {
	Path string `yaml:"path,omitempty"`
}

// Resolve holds host connection settings.
type Resolve struct {
	ScriptAPI     string `yaml:"script_api,omitempty"`
	ScriptLib     string `yaml:"script_lib,omitempty"`
	Timeout       string `yaml:"timeout,omitempty"`
	RetryInterval string `yaml:"retry_interval,omitempty"`
}

// Scripting gates the execute_python and execute_lua tools.
type Scripting struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// MediaPool holds media pool presentation settings.
type MediaPool struct {
	ClipLimit *int `yaml:"clip_limit,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultRetryInterval = 5 * time.Second
	DefaultClipLimit     = 10
)

// Validation bounds for configuration values.
const (
	MinClipLimit = 1
	MaxClipLimit = 1000
)

// Config contains configuration for resolvemcp.
type Config struct {
	Python    Python    `yaml:"python,omitempty"`
	Resolve   Resolve   `yaml:"resolve,omitempty"`
	Scripting Scripting `yaml:"scripting,omitempty"`
	MediaPool MediaPool `yaml:"mediapool,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.MediaPool.ClipLimit != nil {
		v := *c.MediaPool.ClipLimit
		if v < MinClipLimit || v > MaxClipLimit {
			return fmt.Errorf("%w: mediapool.clip_limit must be between %d and %d, got %d",
				ErrInvalidValue, MinClipLimit, MaxClipLimit, v)
		}
	}
	if err := validDuration("resolve.timeout", c.Resolve.Timeout); err != nil {
		return err
	}
	return validDuration("resolve.retry_interval", c.Resolve.RetryInterval)
}

func validDuration(key, s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fmt.Errorf("%w: %s must be a positive duration such as 30s, got %q", ErrInvalidValue, key, s)
	}
	return nil
}

// PythonPath returns the bridge interpreter (defaults to python3, or
// python on Windows where the launcher installs no python3).
func (c *Config) PythonPath() string {
	if c.Python.Path != "" {
		return c.Python.Path
	}
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// Timeout returns the per-call host timeout (defaults to 30s).
func (c *Config) Timeout() time.Duration {
	return durationOr(c.Resolve.Timeout, DefaultTimeout)
}

// RetryInterval returns the minimum gap between reconnect attempts
// (defaults to 5s).
func (c *Config) RetryInterval() time.Duration {
	return durationOr(c.Resolve.RetryInterval, DefaultRetryInterval)
}

func durationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// ScriptingEnabled reports whether arbitrary code execution tools are
// offered (defaults to true).
func (c *Config) ScriptingEnabled() bool {
	if c.Scripting.Enabled == nil {
		return true
	}
	return *c.Scripting.Enabled
}

// ClipLimit returns how many clips the current folder listing shows
// (defaults to 10).
func (c *Config) ClipLimit() int {
	if c.MediaPool.ClipLimit == nil {
		return DefaultClipLimit
	}
	return *c.MediaPool.ClipLimit
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file:
// ~/.resolvemcp/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return loadPath(path, scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
