package site

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
	"git.home.luguber.info/inful/pagewright/internal/logfields"
	"git.home.luguber.info/inful/pagewright/internal/metrics"
)

// Options locates the inputs and the output of a build.
type Options struct {
	Layout      LayoutPaths
	Pages       string
	Posts       string
	Public      string
	Output      string
	PostsSubdir string
}

// Report summarizes a build that got past the integrity checks.
type Report struct {
	ID               string
	StartedAt        time.Time
	Duration         time.Duration
	Pages            TreeReport
	Posts            TreeReport
	PublicDir        string
	PublicErr        error
	MissingFragments []FragmentRole
}

// Failed counts entry failures across both trees.
func (r *Report) Failed() int {
	return len(r.Pages.Failures) + len(r.Posts.Failures)
}

// Outcome classifies the report for metrics and exit status.
func (r *Report) Outcome() metrics.BuildOutcome {
	if r.Failed() > 0 || r.PublicErr != nil {
		return metrics.OutcomePartial
	}
	return metrics.OutcomeSuccess
}

// Err summarizes best-effort failures, or returns nil for a clean build.
func (r *Report) Err() error {
	if r.Outcome() == metrics.OutcomeSuccess {
		return nil
	}
	var errs []error
	for _, t := range []TreeReport{r.Pages, r.Posts} {
		for _, f := range t.Failures {
			errs = append(errs, ferrors.WrapError(f.Err, ferrors.CategoryBuild, "entry failed").
				WithContext("source", f.Source).WithContext("destination", f.Destination).Build())
		}
	}
	if r.PublicErr != nil {
		errs = append(errs, r.PublicErr)
	}
	return ferrors.WrapError(errors.Join(errs...), ferrors.CategoryBuild, "build completed with failures").
		WithContext("failed_entries", r.Failed()).Build()
}

// Builder runs the build pipeline. A Builder is not safe for concurrent use;
// the watch loop never runs two builds at once.
type Builder struct {
	opts     Options
	recorder metrics.Recorder
	now      func() time.Time
}

// NewBuilder creates a builder with a no-op metrics recorder.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts, recorder: metrics.NoopRecorder{}, now: time.Now}
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// Build runs reset, layout load, pages, posts and public copy in that order.
// It returns an error only for fatal conditions (failed reset, empty head or
// foot); best-effort failures are reported in the Report.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	report := &Report{ID: uuid.NewString(), StartedAt: b.now()}
	log := slog.Default().With(logfields.BuildID(report.ID))
	log.InfoContext(ctx, "Starting build", logfields.Destination(b.opts.Output))

	fail := func(err error) (*Report, error) {
		report.Duration = b.now().Sub(report.StartedAt)
		b.recorder.ObserveBuildDuration(report.Duration)
		b.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		log.ErrorContext(ctx, "Build aborted", logfields.Error(err))
		return nil, err
	}

	if err := ResetOutput(b.opts.Output, b.opts.PostsSubdir); err != nil {
		return fail(err)
	}
	log.DebugContext(ctx, "Created clean output directory", logfields.Path(b.opts.Output))

	fragments := LoadFragments(b.opts.Layout)
	for _, f := range []Fragment{fragments.Head, fragments.Foot} {
		if f.Empty() {
			return fail(ferrors.WrapError(f.Err, ferrors.CategoryLayout, string(f.Role)+" fragment is missing or empty").
				Fatal().WithContext("path", f.Path).Build())
		}
	}
	for _, f := range []Fragment{fragments.Header, fragments.Footer} {
		if f.Missing() {
			report.MissingFragments = append(report.MissingFragments, f.Role)
		}
	}

	renderer := NewRenderer(b.opts.Output, b.opts.PostsSubdir, fragments, b.recorder)
	report.Pages = renderer.RenderTree(b.opts.Pages, RolePages)
	report.Posts = renderer.RenderTree(b.opts.Posts, RolePosts)

	report.PublicDir, report.PublicErr = CopyPublic(b.opts.Public, b.opts.Output)
	if report.PublicErr != nil {
		log.ErrorContext(ctx, "Failed to copy public assets", logfields.Source(b.opts.Public), logfields.Error(report.PublicErr))
	} else {
		log.DebugContext(ctx, "Copied public assets", logfields.Source(b.opts.Public), logfields.Destination(report.PublicDir))
	}

	report.Duration = b.now().Sub(report.StartedAt)
	b.recorder.ObserveBuildDuration(report.Duration)
	b.recorder.IncBuildOutcome(report.Outcome())

	log.InfoContext(ctx, "Build finished",
		slog.String("outcome", string(report.Outcome())),
		slog.Int("rendered", report.Pages.Rendered+report.Posts.Rendered),
		slog.Int("copied", report.Pages.Copied+report.Posts.Copied),
		slog.Int("failed", report.Failed()),
		logfields.Elapsed(report.Duration))
	return report, nil
}

// Run satisfies the watcher's BuildRunner: only fatal conditions are errors.
func (b *Builder) Run(ctx context.Context) error {
	_, err := b.Build(ctx)
	return err
}
