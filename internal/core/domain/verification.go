package domain

import "time"

// CommandStatus classifies how a verification command finished. Timeout and
// interrupt both resolve to abnormal termination variants so diagnostic code
// has one path for "the command did not complete".
type CommandStatus string

// Command outcomes.
const (
	// CommandPassed means exit 0 and, if declared, matching output.
	CommandPassed CommandStatus = "passed"

	// CommandFailed means a non-zero exit status.
	CommandFailed CommandStatus = "failed"

	// CommandMismatched means exit 0 but output missing the declared
	// fragment.
	CommandMismatched CommandStatus = "mismatched"

	// CommandTimedOut means the command was terminated at the timeout.
	CommandTimedOut CommandStatus = "timed_out"

	// CommandSkipped means an earlier command in the same document failed
	// and keep-going was not set.
	CommandSkipped CommandStatus = "skipped"
)

// CommandOutcome records one executed (or skipped) verification command.
type CommandOutcome struct {
	// Document is the declaring document's path.
	Document string `json:"document"`

	// Command is the shell command line.
	Command string `json:"command"`

	// Line is where the command was declared.
	Line int `json:"line,omitempty"`

	// Status classifies the result.
	Status CommandStatus `json:"status"`

	// ExitCode is the command's exit status, or -1 if it did not complete.
	ExitCode int `json:"exit_code"`

	// Output is the captured combined output, possibly truncated.
	Output string `json:"output,omitempty"`

	// Duration is how long the command ran.
	Duration time.Duration `json:"duration_ms"`
}

// VerifyReport is the verification executor's run report, written to disk
// by `verify --report`.
type VerifyReport struct {
	// RunID uniquely identifies this verification run.
	RunID string `json:"run_id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration `json:"duration_ms"`

	// Outcomes are the per-command results in execution order per
	// document.
	Outcomes []CommandOutcome `json:"outcomes"`
}

// Failed returns the number of outcomes that did not pass, excluding
// skipped commands.
func (r *VerifyReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		switch o.Status {
		case CommandFailed, CommandMismatched, CommandTimedOut:
			n++
		}
	}
	return n
}
