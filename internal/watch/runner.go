package watch

import (
	"context"
	"os/exec"
	"strings"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

// BuildRunner runs one build to completion.
type BuildRunner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to BuildRunner.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error { return f(ctx) }

// CommandRunner runs an external build command.
type CommandRunner struct {
	Argv []string
	Dir  string
}

// Run executes the command. A non-zero exit returns an error that carries the
// captured combined output.
func (r CommandRunner) Run(ctx context.Context) error {
	if len(r.Argv) == 0 {
		return ferrors.ValidationError("build command is empty").Build()
	}
	cmd := exec.CommandContext(ctx, r.Argv[0], r.Argv[1:]...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryBuild, "build command failed").
			WithContext("command", strings.Join(r.Argv, " ")).
			WithContext("output", strings.TrimSpace(string(out))).
			Build()
	}
	return nil
}
