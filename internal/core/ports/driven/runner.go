package driven

import (
	"context"
	"time"
)

// CommandSpec describes one verification command to execute.
type CommandSpec struct {
	// Command is the shell command line, run via the system shell.
	Command string

	// Dir is the working directory, anchored at the repository root.
	Dir string

	// Timeout bounds execution; the command is forcibly terminated after
	// it elapses. Must be finite.
	Timeout time.Duration
}

// CommandResult is the captured outcome of one command execution. Timeout
// and cancellation both surface as abnormal termination here; the verifier
// maps them onto diagnostic variants.
type CommandResult struct {
	// Output is the combined standard output and standard error.
	Output string

	// ExitCode is the exit status, or -1 if the command did not complete.
	ExitCode int

	// TimedOut is true if the timeout elapsed before completion.
	TimedOut bool

	// Duration is the observed wall-clock run time.
	Duration time.Duration
}

// CommandRunner executes verification commands in a controlled environment.
// Run returns an error only for infrastructure failures (e.g. the shell
// cannot be started); a command that runs and fails is reported through
// CommandResult.
type CommandRunner interface {
	Run(ctx context.Context, spec CommandSpec) (CommandResult, error)
}
