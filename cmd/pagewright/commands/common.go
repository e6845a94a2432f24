package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagewright/internal/config"
	"git.home.luguber.info/inful/pagewright/internal/site"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: pagewright.yaml when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Build the site into the output root"`
	Watch WatchCmd `cmd:"" help:"Build, serve and rebuild on changes"`
	Serve ServeCmd `cmd:"" help:"Serve a directory over HTTP (used by watch)"`
	Check CheckCmd `cmd:"" help:"Verify internal links in the built site"`
	Init  InitCmd  `cmd:"" help:"Write a starter configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(os.Getenv(config.EnvLogLevel)).SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// configureLogging applies the logging section of a loaded configuration.
// --verbose keeps precedence over the configured level.
func configureLogging(cfg *config.Config, verbose bool) {
	level := cfg.Logging.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// overrides carries per-command flag values that win over the file.
type overrides struct {
	profile string
	output  string
	host    string
	port    int
}

// loadConfig loads the configuration, applies flag overrides and revalidates.
func loadConfig(root *CLI, o overrides) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	if o.profile != "" {
		p, err := config.NormalizeProfile(o.profile)
		if err != nil {
			return nil, err
		}
		cfg.SetProfile(p)
	}
	if o.output != "" {
		cfg.Output.Directory = o.output
	}
	if o.host != "" {
		cfg.Server.Host = o.host
	}
	if o.port != 0 {
		cfg.Server.Port = o.port
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	configureLogging(cfg, root.Verbose)
	return cfg, nil
}

// builderOptions maps resolved paths onto the build pipeline.
func builderOptions(p config.Paths) site.Options {
	return site.Options{
		Layout: site.LayoutPaths{
			Head:   p.Head,
			Header: p.Header,
			Footer: p.Footer,
			Foot:   p.Foot,
		},
		Pages:       p.Pages,
		Posts:       p.Posts,
		Public:      p.Public,
		Output:      p.Output,
		PostsSubdir: p.PostsSubdir,
	}
}

// configPath is the file init writes and watch ignores.
func configPath(root *CLI) string {
	if root.Config != "" {
		return root.Config
	}
	return config.DefaultFile
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// selfPaths lists files whose changes must never trigger a rebuild.
func selfPaths(root *CLI) []string {
	paths := []string{configPath(root)}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, exe)
	}
	return paths
}
