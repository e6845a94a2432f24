package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(OutcomeSuccess)
	pr.IncBuildOutcome(OutcomeSuccess)
	pr.IncEntryResult("pages", EntryRendered)
	pr.IncEntryResult("posts", EntryCopied)
	pr.IncWatchEvent(DecisionDebounced)

	require.InDelta(t, 2, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("success")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.entryResults.WithLabelValues("pages", "rendered")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.watchEvents.WithLabelValues("debounced")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObserveBuildDuration(time.Second)
		pr.IncBuildOutcome(OutcomeFailed)
		pr.IncEntryResult("pages", EntryFailed)
		pr.IncWatchEvent(DecisionFiltered)
	})
}

func TestHTTPHandlerServesRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome(OutcomePartial)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `pagewright_build_outcomes_total{outcome="partial"} 1`), string(body))
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
