package domain

import "fmt"

// Diagnostic is one reported problem. Diagnostics are immutable once
// emitted; severity adjustment happens when the policy layer builds the
// final report, producing new values rather than mutating these.
type Diagnostic struct {
	// Path is the offending document path, or empty for repository-wide
	// issues (e.g. coverage threshold).
	Path string `json:"path,omitempty"`

	// Line is the 1-indexed line the problem anchors to, or 0.
	Line int `json:"line,omitempty"`

	// Rule is the violated rule's identifier.
	Rule RuleID `json:"rule"`

	// Severity is the resolved, reported severity.
	Severity Severity `json:"severity"`

	// Message is the human-readable description.
	Message string `json:"message"`
}

// String formats the diagnostic the way the text renderer anchors it.
func (d Diagnostic) String() string {
	loc := d.Path
	if loc == "" {
		loc = "<repository>"
	}
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, d.Line)
	}
	return fmt.Sprintf("%s: %s [%s] %s", d.Severity, loc, d.Rule, d.Message)
}

// Report is the run-scoped collection of diagnostics, after policy
// resolution. One report per command invocation.
type Report struct {
	// Diagnostics in emission order.
	Diagnostics []Diagnostic `json:"diagnostics"`

	// Gradual records whether gradual mode was active for this run.
	Gradual bool `json:"gradual,omitempty"`
}

// Count returns the number of diagnostics at the given severity.
func (r *Report) Count(s Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// HasErrors returns true if at least one error-severity diagnostic survived
// policy resolution.
func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}
