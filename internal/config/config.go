// Package config loads and validates pagewright configuration.
//
// Input names (layout fragments and content trees) are fixed constants joined
// under project.root; everything else comes from pagewright.yaml, .env files
// and PAGEWRIGHT_* environment overrides, in that order of increasing precedence.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

// DefaultFile is the configuration file looked up when no path is given.
const DefaultFile = "pagewright.yaml"

// Config represents the application configuration.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Output  OutputConfig  `yaml:"output"`
	Server  ServerConfig  `yaml:"server"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// ProjectConfig locates the source tree.
type ProjectConfig struct {
	Root string `yaml:"root"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Profile     Profile `yaml:"profile"`
	Directory   string  `yaml:"directory,omitempty"` // Overrides the profile's directory
	PostsSubdir string  `yaml:"posts_subdir"`
}

// ServerConfig configures the development file server process.
type ServerConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	StopTimeout time.Duration `yaml:"stop_timeout"`
	// Command replaces the built-in server; {host}, {port} and {dir} are substituted.
	Command []string `yaml:"command,omitempty"`
}

// WatchConfig configures the change watcher.
type WatchConfig struct {
	Root             string        `yaml:"root"`
	Debounce         time.Duration `yaml:"debounce,omitempty"`
	RespectGitignore bool          `yaml:"respect_gitignore"`
	RebuildInterval  time.Duration `yaml:"rebuild_interval,omitempty"`
	// BuildCommand runs builds out of process instead of in-process.
	BuildCommand []string `yaml:"build_command,omitempty"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables the Prometheus endpoint of the watch command.
type MetricsConfig struct {
	Address string `yaml:"address,omitempty"`
}

// Load reads configPath, applies defaults and environment overrides, and validates
// the result. An empty configPath falls back to DefaultFile when it exists and to
// pure defaults otherwise; an explicit path that does not exist is an error.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load env file").Fatal().Build()
	}

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultFile
	}

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
				Fatal().WithContext("path", configPath).Build()
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	case errors.Is(err, fs.ErrNotExist):
		return nil, ferrors.NewError(ferrors.CategoryNotFound, "configuration file not found").
			Fatal().WithContext("path", configPath).Build()
	default:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read configuration").
			Fatal().WithContext("path", configPath).Build()
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration with every default applied and no file or
// environment input.
func Default() *Config {
	cfg := &Config{}
	_ = applyDefaults(cfg)
	return cfg
}
