package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pagewright/internal/config"
	"git.home.luguber.info/inful/pagewright/internal/devserver"
	"git.home.luguber.info/inful/pagewright/internal/logfields"
	"git.home.luguber.info/inful/pagewright/internal/metrics"
	"git.home.luguber.info/inful/pagewright/internal/preview"
	"git.home.luguber.info/inful/pagewright/internal/site"
	"git.home.luguber.info/inful/pagewright/internal/watch"
)

// WatchCmd builds, serves the output root and rebuilds on changes.
type WatchCmd struct {
	Output      string        `short:"o" help:"Output root (overrides output.directory and the profile)"`
	Profile     string        `short:"p" help:"Deployment profile (static_site|docs)"`
	Host        string        `help:"Dev server host (default from server.host)"`
	Port        int           `help:"Dev server port (default from server.port)"`
	Debounce    time.Duration `help:"Debounce window (default from watch.debounce or the profile)"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, overrides{profile: w.Profile, output: w.Output, host: w.Host, port: w.Port})
	if err != nil {
		return err
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}
	if w.MetricsAddr != "" {
		cfg.Metrics.Address = w.MetricsAddr
	}

	ctx, cancel := signalContext()
	defer cancel()

	session, err := newSession(cfg, root)
	if err != nil {
		return err
	}
	fmt.Printf("Watching %s; serving %s on http://%s/\n", cfg.Watch.Root, session.Dir, cfg.Addr())
	return session.Run(ctx)
}

// newSession wires the build runner, watcher and dev server from configuration.
func newSession(cfg *config.Config, root *CLI) (*preview.Session, error) {
	paths := cfg.Paths()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prometheus.Registry
	if cfg.Metrics.Address != "" {
		registry = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	builder := site.NewBuilder(builderOptions(paths)).WithRecorder(recorder)
	var runner watch.BuildRunner = builder
	if len(cfg.Watch.BuildCommand) > 0 {
		slog.Info("Using external build command", slog.Any("command", cfg.Watch.BuildCommand))
		runner = watch.CommandRunner{Argv: cfg.Watch.BuildCommand, Dir: paths.Root}
	}

	watcher, err := watch.New(watch.Options{
		Root:             cfg.Watch.Root,
		Output:           paths.Output,
		Self:             selfPaths(root),
		Debounce:         cfg.Watch.Debounce,
		RespectGitignore: cfg.Watch.RespectGitignore,
		RebuildInterval:  cfg.Watch.RebuildInterval,
		Recorder:         recorder,
	}, runner)
	if err != nil {
		return nil, err
	}
	slog.Debug("Watcher configured", logfields.Path(cfg.Watch.Root), slog.Duration("debounce", cfg.Watch.Debounce))

	return &preview.Session{
		Builder:     runner,
		Server:      preview.Supervised(newLauncher(cfg, root)),
		Watcher:     watcher,
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		Dir:         paths.Output,
		MetricsAddr: cfg.Metrics.Address,
		Registry:    registry,
	}, nil
}

// newLauncher builds the dev server launcher. The built-in server child is
// handed the same --config so it resolves the same project.
func newLauncher(cfg *config.Config, root *CLI) *devserver.Launcher {
	l := devserver.NewLauncher(cfg.Server.Command, cfg.Server.StopTimeout)
	l.ConfigPath = root.Config
	return l
}
