package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	entryResults  *prom.CounterVec
	watchEvents   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the pagewright metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "pagewright",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagewright",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		entryResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagewright",
			Name:      "entries_total",
			Help:      "Content entries processed by tree role and result",
		}, []string{"role", "result"}),
		watchEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagewright",
			Name:      "watch_events_total",
			Help:      "Filesystem change events by watcher decision",
		}, []string{"decision"}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.entryResults, pr.watchEvents)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcome) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncEntryResult(role string, result EntryResult) {
	if p == nil {
		return
	}
	p.entryResults.WithLabelValues(role, string(result)).Inc()
}

func (p *PrometheusRecorder) IncWatchEvent(decision WatchDecision) {
	if p == nil {
		return
	}
	p.watchEvents.WithLabelValues(string(decision)).Inc()
}
