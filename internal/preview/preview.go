// Package preview runs the watch-rebuild-serve development loop.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
	"git.home.luguber.info/inful/pagewright/internal/devserver"
	"git.home.luguber.info/inful/pagewright/internal/logfields"
	"git.home.luguber.info/inful/pagewright/internal/metrics"
	"git.home.luguber.info/inful/pagewright/internal/watch"
)

// Server is a running file server.
type Server interface {
	Stop() error
}

// ServerStarter launches a file server serving dir on host:port.
type ServerStarter interface {
	Start(host string, port int, dir string) (Server, error)
}

// Watcher runs until its context is cancelled.
type Watcher interface {
	Run(ctx context.Context) error
}

// Supervised adapts a devserver.Launcher to ServerStarter.
func Supervised(l *devserver.Launcher) ServerStarter {
	return launcherStarter{l}
}

type launcherStarter struct{ l *devserver.Launcher }

func (s launcherStarter) Start(host string, port int, dir string) (Server, error) {
	h, err := s.l.Start(host, port, dir)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Session wires the initial build, the server and the watcher.
type Session struct {
	Builder watch.BuildRunner
	Server  ServerStarter
	Watcher Watcher

	Host string
	Port int
	Dir  string

	// MetricsAddr enables a /metrics endpoint when non-empty.
	MetricsAddr string
	Registry    *prometheus.Registry
}

// Run builds once, starts the server and watches until ctx is cancelled.
// Shutdown stops the watcher first, waits for it, then stops the server.
func (s *Session) Run(ctx context.Context) error {
	if s.Builder == nil || s.Server == nil || s.Watcher == nil {
		return ferrors.ValidationError("preview session requires a builder, a server and a watcher").Build()
	}

	if err := s.Builder.Run(ctx); err != nil {
		slog.Error("Initial build failed; serving whatever is on disk", logfields.Error(err))
	}

	srv, err := s.Server.Start(s.Host, s.Port, s.Dir)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryServer, "start preview server").
			WithContext("addr", net.JoinHostPort(s.Host, strconv.Itoa(s.Port))).Build()
	}
	defer func() {
		if err := srv.Stop(); err != nil {
			slog.Warn("Preview server stop error", logfields.Error(err))
		}
	}()
	slog.Info("Preview available", slog.String("url", "http://"+net.JoinHostPort(s.Host, strconv.Itoa(s.Port))+"/"))

	if s.MetricsAddr != "" {
		stopMetrics, err := s.serveMetrics(ctx)
		if err != nil {
			return err
		}
		defer stopMetrics()
	}

	if err := s.Watcher.Run(ctx); err != nil {
		return err
	}
	slog.Info("Shutting down preview")
	return nil
}

func (s *Session) serveMetrics(ctx context.Context) (func(), error) {
	reg := s.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	ln, err := net.Listen("tcp", s.MetricsAddr)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryServer, "bind metrics endpoint").
			WithContext("addr", s.MetricsAddr).Build()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server error", logfields.Error(err))
		}
	}()
	slog.Info("Metrics endpoint listening", logfields.Addr(ln.Addr().String()))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Metrics server shutdown error", logfields.Error(err))
		}
	}, nil
}
