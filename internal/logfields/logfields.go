package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID     = "build_id"
	KeyRole        = "role"
	KeySource      = "source"
	KeyDestination = "destination"
	KeyPath        = "path"
	KeyOp          = "op"
	KeyDurationMS  = "duration_ms"
	KeyPID         = "pid"
	KeyAddr        = "addr"
	KeyRequestID   = "request_id"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func Role(r string) slog.Attr { return slog.String(KeyRole, r) }
func Source(p string) slog.Attr { return slog.String(KeySource, p) }
func Destination(p string) slog.Attr { return slog.String(KeyDestination, p) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Op(op string) slog.Attr { return slog.String(KeyOp, op) }
func PID(pid int) slog.Attr { return slog.Int(KeyPID, pid) }
func Addr(a string) slog.Attr { return slog.String(KeyAddr, a) }
func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Elapsed(d time.Duration) slog.Attr { return DurationMS(float64(d.Microseconds()) / 1000) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
