package metrics

import "time"

// BuildOutcome enumerates final build states.
type BuildOutcome string

const (
	OutcomeSuccess BuildOutcome = "success"
	OutcomePartial BuildOutcome = "partial" // entry or public-copy failures were logged
	OutcomeFailed  BuildOutcome = "failed"
)

// EntryResult enumerates per-entry results for counters.
type EntryResult string

const (
	EntryRendered EntryResult = "rendered"
	EntryCopied   EntryResult = "copied"
	EntryFailed   EntryResult = "failed"
)

// WatchDecision enumerates what the watcher did with a change event.
type WatchDecision string

const (
	DecisionAccepted  WatchDecision = "accepted"
	DecisionFiltered  WatchDecision = "filtered"
	DecisionDebounced WatchDecision = "debounced"
)

// Recorder defines observability hooks for builds and the watch loop.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcome)
	IncEntryResult(role string, result EntryResult)
	IncWatchEvent(decision WatchDecision)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome) {}
func (NoopRecorder) IncEntryResult(string, EntryResult) {}
func (NoopRecorder) IncWatchEvent(WatchDecision) {}
