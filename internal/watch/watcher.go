package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
	"git.home.luguber.info/inful/pagewright/internal/logfields"
	"git.home.luguber.info/inful/pagewright/internal/metrics"
)

// Options configures a Watcher.
type Options struct {
	Root             string
	Output           string
	Self             []string
	Debounce         time.Duration
	RespectGitignore bool
	RebuildInterval  time.Duration
	Clock            clockwork.Clock
	Recorder         metrics.Recorder
}

// Watcher runs the change-filter-debounce-build loop.
type Watcher struct {
	opts      Options
	runner    BuildRunner
	filters   Chain
	debouncer *Debouncer
	recorder  metrics.Recorder
	clock     clockwork.Clock

	// dirs holds every directory ever watched. Removed or renamed paths are
	// no longer stat-able, so this is how their events are recognized as
	// directory events. Only the loop goroutine touches it.
	dirs map[string]struct{}

	readyOnce sync.Once
	ready     chan struct{}
}

// New creates a watcher for opts.Root that invokes runner on qualifying changes.
func New(opts Options, runner BuildRunner) (*Watcher, error) {
	if runner == nil {
		return nil, ferrors.ValidationError("build runner is required").Build()
	}
	if opts.Root == "" {
		return nil, ferrors.ValidationError("watch root is required").Build()
	}
	if opts.Debounce <= 0 {
		return nil, ferrors.ValidationError("debounce window must be > 0").Build()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	opts.Root = absClean(opts.Root)
	if opts.Output != "" {
		opts.Output = absClean(opts.Output)
	}

	filters := DefaultChain(opts.Root, opts.Output, opts.Self...)
	if opts.RespectGitignore {
		gi, err := NewGitignoreFilter(opts.Root)
		if err != nil {
			return nil, err
		}
		filters = append(filters, gi)
	}

	return &Watcher{
		opts:      opts,
		runner:    runner,
		filters:   filters,
		debouncer: NewDebouncer(opts.Debounce, opts.Clock),
		recorder:  opts.Recorder,
		clock:     opts.Clock,
		dirs:      make(map[string]struct{}),
		ready:     make(chan struct{}),
	}, nil
}

// Ready is closed once Run has registered its watches.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Handle evaluates one change event and runs a build when it qualifies.
// It reports whether a build was triggered.
func (w *Watcher) Handle(ctx context.Context, ev ChangeEvent) bool {
	if name, discard := w.filters.Match(ev); discard {
		w.recorder.IncWatchEvent(metrics.DecisionFiltered)
		slog.Debug("Ignoring change", logfields.Path(ev.Path), logfields.Op(ev.Op.String()), slog.String("filter", name))
		return false
	}
	return w.trigger(ctx, ev.Path, ev.Op.String())
}

// Request asks for a rebuild that is not tied to a file change. It passes
// through the debouncer like any other trigger.
func (w *Watcher) Request(ctx context.Context, reason string) bool {
	return w.trigger(ctx, "", reason)
}

func (w *Watcher) trigger(ctx context.Context, path, op string) bool {
	if !w.debouncer.Accept() {
		w.recorder.IncWatchEvent(metrics.DecisionDebounced)
		slog.Debug("Change within debounce window; dropped", logfields.Path(path), logfields.Op(op))
		return false
	}
	w.recorder.IncWatchEvent(metrics.DecisionAccepted)
	slog.Info("Change detected; rebuilding site", logfields.Path(path), logfields.Op(op))

	start := w.clock.Now()
	// Builds run to completion even when shutdown has been requested.
	if err := w.runner.Run(context.WithoutCancel(ctx)); err != nil {
		slog.Warn("Rebuild failed", logfields.Elapsed(w.clock.Since(start)), logfields.Error(err))
		return true
	}
	slog.Info("Rebuild complete", logfields.Elapsed(w.clock.Since(start)))
	return true
}

// Run watches until ctx is cancelled. Events are handled one at a time on
// the calling goroutine, so when Run returns no build is in flight.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryWatch, "create filesystem watcher").Build()
	}
	defer func() { _ = fw.Close() }()

	if err := w.addDirsRecursive(fw, w.opts.Root); err != nil {
		return err
	}

	var requests <-chan struct{}
	if w.opts.RebuildInterval > 0 {
		sched, err := NewScheduler(w.opts.RebuildInterval, w.clock)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Scheduler shutdown error", logfields.Error(err))
			}
		}()
		requests = sched.Requests()
	}

	slog.Info("Watching for changes",
		logfields.Path(w.opts.Root),
		slog.Duration("debounce", w.debouncer.Window()))
	w.readyOnce.Do(func() { close(w.ready) })

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleNotify(ctx, fw, ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-requests:
			w.Request(ctx, "scheduled")
		}
	}
}

func (w *Watcher) handleNotify(ctx context.Context, fw *fsnotify.Watcher, ev fsnotify.Event) {
	ce := w.classify(ev)
	if ce.IsDir && ce.Op.Has(fsnotify.Create) && !w.skipDir(ce.Path) {
		if err := w.addDirsRecursive(fw, ce.Path); err != nil {
			slog.Warn("Failed to watch new directory", logfields.Path(ce.Path), logfields.Error(err))
		}
	}
	w.Handle(ctx, ce)
}

// classify converts ev, marking removals and renames of known directories
// as directory events.
func (w *Watcher) classify(ev fsnotify.Event) ChangeEvent {
	ce := FromNotify(ev)
	_, known := w.dirs[ce.Path]
	switch {
	case ce.Op.Has(fsnotify.Remove) || ce.Op.Has(fsnotify.Rename):
		// The set entry stays: the directory's own watch reports the same path again.
		ce.IsDir = known
	case known && !ce.IsDir:
		if _, err := os.Lstat(ce.Path); err == nil {
			// A file now lives where a directory used to be.
			delete(w.dirs, ce.Path)
		}
	}
	return ce
}

// skipDir reports whether a directory should not be watched at all.
func (w *Watcher) skipDir(path string) bool {
	ev := ChangeEvent{Path: path, IsDir: true}
	return UnderFilter{Dir: w.opts.Output}.Discard(ev) || HiddenFilter{Root: w.opts.Root}.Discard(ev)
}

func (w *Watcher) addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("Skipping unreadable path", logfields.Path(path), logfields.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.opts.Root && w.skipDir(path) {
			return fs.SkipDir
		}
		if err := fw.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			return nil
		}
		w.dirs[filepath.Clean(path)] = struct{}{}
		return nil
	})
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryWatch, "watch directory tree").
			WithContext("root", root).Build()
	}
	return nil
}
