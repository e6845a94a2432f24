package watch

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

// Scheduler posts periodic rebuild requests. Requests are delivered on a
// channel with room for one pending request, so a slow build coalesces ticks
// instead of stacking them.
type Scheduler struct {
	scheduler gocron.Scheduler
	requests  chan struct{}
}

// NewScheduler creates a scheduler that requests a rebuild every interval.
func NewScheduler(interval time.Duration, clock clockwork.Clock) (*Scheduler, error) {
	if interval <= 0 {
		return nil, ferrors.ValidationError("rebuild interval must be > 0").Build()
	}
	var opts []gocron.SchedulerOption
	if clock != nil {
		opts = append(opts, gocron.WithClock(clock))
	}
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryWatch, "create scheduler").Build()
	}

	sch := &Scheduler{scheduler: s, requests: make(chan struct{}, 1)}
	if _, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(sch.request),
		gocron.WithName("periodic-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		_ = s.Shutdown()
		return nil, ferrors.WrapError(err, ferrors.CategoryWatch, "schedule periodic rebuild").
			WithContext("interval", interval.String()).Build()
	}
	return sch, nil
}

func (s *Scheduler) request() {
	select {
	case s.requests <- struct{}{}:
	default:
	}
}

// Requests delivers rebuild requests.
func (s *Scheduler) Requests() <-chan struct{} { return s.requests }

// Start begins scheduling.
func (s *Scheduler) Start() {
	slog.Info("Starting periodic rebuild scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for running jobs.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping periodic rebuild scheduler")
	return s.scheduler.Shutdown()
}
