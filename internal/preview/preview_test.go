package preview

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
	"git.home.luguber.info/inful/pagewright/internal/metrics"
	"git.home.luguber.info/inful/pagewright/internal/watch"
)

type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, s)
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

type fakeServer struct{ j *journal }

func (s fakeServer) Stop() error {
	s.j.add("server stop")
	return nil
}

type fakeStarter struct {
	j    *journal
	err  error
	args []any
}

func (f *fakeStarter) Start(host string, port int, dir string) (Server, error) {
	f.args = []any{host, port, dir}
	if f.err != nil {
		return nil, f.err
	}
	f.j.add("server start")
	return fakeServer{f.j}, nil
}

type fakeWatcher struct {
	j       *journal
	started chan struct{}
}

func (w *fakeWatcher) Run(ctx context.Context) error {
	w.j.add("watch start")
	close(w.started)
	<-ctx.Done()
	w.j.add("watch stop")
	return nil
}

func newSession(j *journal, buildErr error) (*Session, *fakeStarter, *fakeWatcher) {
	starter := &fakeStarter{j: j}
	w := &fakeWatcher{j: j, started: make(chan struct{})}
	return &Session{
		Builder: watch.RunnerFunc(func(context.Context) error {
			j.add("build")
			return buildErr
		}),
		Server:  starter,
		Watcher: w,
		Host:    "127.0.0.1",
		Port:    8000,
		Dir:     "static_site",
	}, starter, w
}

func runUntilStarted(t *testing.T, s *Session, w *fakeWatcher) error {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-w.started:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never started")
	}
	cancel()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop")
		return nil
	}
}

func TestSessionOrdersStartupAndShutdown(t *testing.T) {
	j := &journal{}
	s, starter, w := newSession(j, nil)

	require.NoError(t, runUntilStarted(t, s, w))
	assert.Equal(t, []string{"build", "server start", "watch start", "watch stop", "server stop"}, j.list())
	assert.Equal(t, []any{"127.0.0.1", 8000, "static_site"}, starter.args)
}

func TestSessionContinuesAfterInitialBuildFailure(t *testing.T) {
	j := &journal{}
	s, _, w := newSession(j, errors.New("missing head"))

	require.NoError(t, runUntilStarted(t, s, w))
	assert.Contains(t, j.list(), "server start")
}

func TestSessionAbortsWhenServerFailsToStart(t *testing.T) {
	j := &journal{}
	s, starter, _ := newSession(j, nil)
	starter.err = errors.New("address in use")

	err := s.Run(t.Context())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryServer))
	assert.NotContains(t, j.list(), "watch start")
}

func TestSessionRequiresCollaborators(t *testing.T) {
	err := (&Session{}).Run(t.Context())
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestSessionServesMetrics(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.IncBuildOutcome(metrics.OutcomeSuccess)

	j := &journal{}
	s, _, w := newSession(j, nil)
	s.MetricsAddr = addr
	s.Registry = reg

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	<-w.started

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "pagewright_build_outcomes_total")

	cancel()
	require.NoError(t, <-done)
}
