package devserver

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
	"git.home.luguber.info/inful/pagewright/internal/logfields"
)

// DefaultStopTimeout bounds the wait between the graceful signal and the kill.
const DefaultStopTimeout = 5 * time.Second

// Launcher starts static file server processes.
type Launcher struct {
	// Command is the server argv. Elements may contain {host}, {port} and
	// {dir}. When empty the current executable is re-run with `serve`.
	Command []string
	// ConfigPath is forwarded as --config to the built-in server command.
	ConfigPath  string
	Env         []string
	StopTimeout time.Duration
	Stdout      io.Writer
	Stderr      io.Writer

	terminate  func(*os.Process) error
	kill       func(*os.Process) error
	executable func() (string, error)
}

// NewLauncher creates a launcher. An empty command selects the built-in server.
func NewLauncher(command []string, stopTimeout time.Duration) *Launcher {
	if stopTimeout <= 0 {
		stopTimeout = DefaultStopTimeout
	}
	return &Launcher{
		Command:     command,
		StopTimeout: stopTimeout,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		terminate:   terminateProcess,
		kill:        killProcess,
		executable:  os.Executable,
	}
}

// Argv resolves the command line for a server on host:port serving dir.
func (l *Launcher) Argv(host string, port int, dir string) ([]string, error) {
	p := strconv.Itoa(port)
	if len(l.Command) == 0 {
		executable := l.executable
		if executable == nil {
			executable = os.Executable
		}
		exe, err := executable()
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryServer, "resolve executable").Build()
		}
		argv := []string{exe}
		if l.ConfigPath != "" {
			cfg, err := filepath.Abs(l.ConfigPath)
			if err != nil {
				return nil, ferrors.WrapError(err, ferrors.CategoryServer, "resolve config path").Build()
			}
			argv = append(argv, "--config", cfg)
		}
		return append(argv, "serve", "--host", host, "--port", p, "--dir", dir), nil
	}
	r := strings.NewReplacer("{host}", host, "{port}", p, "{dir}", dir)
	argv := make([]string, len(l.Command))
	for i, arg := range l.Command {
		argv[i] = r.Replace(arg)
	}
	return argv, nil
}

// Start launches the server and returns without waiting for it to listen.
// The process is not tied to any context: only Handle.Stop ends it.
func (l *Launcher) Start(host string, port int, dir string) (*Handle, error) {
	argv, err := l.Argv(host, port, dir)
	if err != nil {
		return nil, err
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	if len(l.Env) > 0 {
		cmd.Env = append(os.Environ(), l.Env...)
	}
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryServer, "start file server").
			WithContext("command", strings.Join(argv, " ")).
			WithContext("addr", addr).
			Build()
	}

	h := &Handle{
		cmd:       cmd,
		addr:      addr,
		timeout:   l.StopTimeout,
		terminate: l.terminate,
		kill:      l.kill,
		done:      make(chan struct{}),
	}
	if h.timeout <= 0 {
		h.timeout = DefaultStopTimeout
	}
	if h.terminate == nil {
		h.terminate = terminateProcess
	}
	if h.kill == nil {
		h.kill = killProcess
	}
	go func() {
		h.waitErr = cmd.Wait()
		close(h.done)
	}()

	slog.Info("File server started", logfields.PID(cmd.Process.Pid), logfields.Addr(addr), logfields.Path(dir))
	return h, nil
}

// Handle owns one running server process.
type Handle struct {
	cmd       *exec.Cmd
	addr      string
	timeout   time.Duration
	terminate func(*os.Process) error
	kill      func(*os.Process) error

	done    chan struct{}
	waitErr error

	stopOnce sync.Once
	stopErr  error
}

// PID returns the process id.
func (h *Handle) PID() int { return h.cmd.Process.Pid }

// Addr returns host:port the server was asked to bind.
func (h *Handle) Addr() string { return h.addr }

// Done is closed when the process has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Exited reports whether the process has already exited.
func (h *Handle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Err returns the process exit error once it has exited.
func (h *Handle) Err() error {
	if !h.Exited() {
		return nil
	}
	return h.waitErr
}

// Stop terminates the process: a graceful signal, a bounded wait, then a
// kill. Stopping an exited process sends nothing. Repeated calls return the
// first result.
func (h *Handle) Stop() error {
	h.stopOnce.Do(func() { h.stopErr = h.stop() })
	return h.stopErr
}

func (h *Handle) stop() error {
	pid := h.PID()
	if h.Exited() {
		slog.Debug("File server already exited", logfields.PID(pid))
		return nil
	}

	slog.Info("Stopping file server", logfields.PID(pid))
	if err := h.terminate(h.cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
		slog.Warn("Graceful stop not delivered; killing", logfields.PID(pid), logfields.Error(err))
		return h.forceKill()
	}

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()
	select {
	case <-h.done:
		slog.Info("File server stopped", logfields.PID(pid))
		return nil
	case <-timer.C:
		slog.Warn("File server did not stop in time; killing", logfields.PID(pid), slog.Duration("timeout", h.timeout))
		return h.forceKill()
	}
}

func (h *Handle) forceKill() error {
	if err := h.kill(h.cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return ferrors.WrapError(err, ferrors.CategoryServer, "kill file server").
			WithContext("pid", h.PID()).Build()
	}
	<-h.done
	slog.Info("File server killed", logfields.PID(h.PID()))
	return nil
}
