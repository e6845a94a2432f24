package devserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
	"git.home.luguber.info/inful/pagewright/internal/logfields"
)

const shutdownTimeout = 5 * time.Second

// FileServer serves a directory over plain HTTP with directory listings.
type FileServer struct {
	Dir  string
	Addr string
}

// Handler returns the logged file-serving handler.
func (s *FileServer) Handler() http.Handler {
	return LogRequests(http.FileServer(http.Dir(s.Dir)))
}

// ListenAndServe binds Addr and serves until ctx is cancelled.
func (s *FileServer) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryServer, "bind file server").
			WithContext("addr", s.Addr).Build()
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *FileServer) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()
	slog.Info("Serving files", logfields.Addr(ln.Addr().String()), logfields.Path(s.Dir))

	select {
	case err := <-errCh:
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryServer, "file server failed").
				WithContext("addr", ln.Addr().String()).Build()
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down file server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("File server shutdown error", logfields.Error(err))
	}
	return <-errCh
}
