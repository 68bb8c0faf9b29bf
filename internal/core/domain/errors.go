package domain

import "errors"

// Domain errors represent engine-level failures.
// These are distinct from diagnostics, which report documentation problems.
var (
	// ErrConfig indicates the configuration file is present but malformed,
	// carries an invalid gradual_until date, or references a docs root
	// that does not exist. Fatal: the run aborts before any checking.
	ErrConfig = errors.New("invalid configuration")

	// ErrParse indicates a documentation file could not be decoded as
	// text. Fatal for that file only; the run continues.
	ErrParse = errors.New("cannot parse document")

	// ErrNotRepository indicates a version-control operation was
	// requested outside a repository.
	ErrNotRepository = errors.New("not a version-controlled repository")

	// ErrChecksFailed indicates at least one error-severity diagnostic
	// survived policy resolution. Maps to the failure exit code.
	ErrChecksFailed = errors.New("checks failed")

	// ErrInterrupted indicates the run was cancelled by a user interrupt.
	// Maps to a distinguished exit status, not pass/fail.
	ErrInterrupted = errors.New("interrupted")
)
