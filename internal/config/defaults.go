package config

import (
	"time"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

const (
	DefaultHost        = "127.0.0.1"
	DefaultPort        = 8000
	DefaultStopTimeout = 5 * time.Second
	DefaultPostsSubdir = "posts"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// ProjectDefaultApplier defaults the project root to the working directory.
type ProjectDefaultApplier struct{}

func (ProjectDefaultApplier) Domain() string { return "project" }

func (ProjectDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Project.Root == "" {
		cfg.Project.Root = "."
	}
	return nil
}

// OutputDefaultApplier resolves the deployment profile.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	p, err := NormalizeProfile(string(cfg.Output.Profile))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid output.profile").Fatal().Build()
	}
	cfg.Output.Profile = p
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = p.Directory()
	}
	if cfg.Output.PostsSubdir == "" {
		cfg.Output.PostsSubdir = DefaultPostsSubdir
	}
	return nil
}

// ServerDefaultApplier handles dev server defaults.
type ServerDefaultApplier struct{}

func (ServerDefaultApplier) Domain() string { return "server" }

func (ServerDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.StopTimeout == 0 {
		cfg.Server.StopTimeout = DefaultStopTimeout
	}
	return nil
}

// WatchDefaultApplier handles watcher defaults. Runs after OutputDefaultApplier
// because the debounce window depends on the profile.
type WatchDefaultApplier struct{}

func (WatchDefaultApplier) Domain() string { return "watch" }

func (WatchDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Watch.Root == "" {
		cfg.Watch.Root = cfg.Project.Root
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = cfg.Output.Profile.Debounce()
	}
	return nil
}

// LoggingDefaultApplier normalizes logging settings.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		ProjectDefaultApplier{},
		OutputDefaultApplier{},
		ServerDefaultApplier{},
		WatchDefaultApplier{},
		LoggingDefaultApplier{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
