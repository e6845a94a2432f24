package devserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/pagewright/internal/logfields"
)

// RequestIDHeader carries the per-request id in responses.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFrom returns the request id stored by LogRequests, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder wraps http.ResponseWriter to capture status code and size.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// LogRequests wraps next with structured request logging.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		rw.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(rw, r)

		level := slog.LevelInfo
		switch {
		case rw.status >= 500:
			level = slog.LevelError
		case rw.status >= 400:
			level = slog.LevelWarn
		}
		slog.Log(r.Context(), level, "HTTP request",
			logfields.RequestID(requestID),
			slog.String("method", r.Method),
			logfields.Path(r.URL.Path),
			slog.Int("status", rw.status),
			slog.Int("size", rw.size),
			logfields.Elapsed(time.Since(start)),
			slog.String("remote_addr", r.RemoteAddr))
	})
}
