// Package shell executes verification commands through the system shell
// with a hard per-command timeout.
package shell

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/pavedocs/paver/internal/core/ports/driven"
	"github.com/pavedocs/paver/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.CommandRunner = (*Runner)(nil)

// Runner runs each command as `sh -c <command>` in the configured working
// directory. Stdout and stderr are captured together, matching what a
// developer sees in a terminal.
type Runner struct{}

// New creates a shell command runner.
func New() *Runner {
	return &Runner{}
}

// Run executes one command, terminating it when the timeout elapses. A
// command that starts and fails is reported through the result; the error
// return is reserved for infrastructure failures.
func (r *Runner) Run(ctx context.Context, spec driven.CommandSpec) (driven.CommandResult, error) {
	cctx, cancel := context.WithTimeout(ctx, spec.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, "sh", "-c", spec.Command)
	cmd.Dir = spec.Dir
	// Background children inherit the output pipe and would otherwise keep
	// CombinedOutput waiting past the deadline. WaitDelay closes the pipe
	// and reaps the shell shortly after the context expires.
	cmd.WaitDelay = time.Second

	started := time.Now()
	output, err := cmd.CombinedOutput()
	result := driven.CommandResult{
		Output:   string(output),
		Duration: time.Since(started),
	}

	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.Is(err, exec.ErrWaitDelay):
		// The shell exited cleanly but a child still held the output pipe.
		result.ExitCode = 0
	case errors.Is(cctx.Err(), context.DeadlineExceeded):
		result.TimedOut = true
		result.ExitCode = -1
		logger.Debug("command %q timed out after %s", spec.Command, spec.Timeout)
	default:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The shell itself could not be started.
			return driven.CommandResult{}, err
		}
		result.ExitCode = exitErr.ExitCode()
	}
	return result, nil
}
