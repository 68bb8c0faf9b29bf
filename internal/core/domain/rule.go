package domain

// Severity classifies how a diagnostic affects the run outcome.
type Severity string

// Diagnostic severities, from most to least severe.
const (
	// SeverityError fails the run unless gradual mode downgrades it.
	SeverityError Severity = "error"

	// SeverityWarning is reported but never fails the run.
	SeverityWarning Severity = "warning"

	// SeverityNotice is informational (e.g. gradual mode expiry,
	// non-strict staleness reports).
	SeverityNotice Severity = "notice"
)

// IsValid returns true if the severity is recognised.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityNotice:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Severity) String() string {
	return string(s)
}

// RuleID identifies a check. IDs are stable; they appear in JSON output
// and CI annotations.
type RuleID string

// Rule identifiers.
const (
	// RuleMissingTitle fires when a document has no level-one heading.
	RuleMissingTitle RuleID = "missing-title"

	// RuleMaxLines fires when a document exceeds the configured line budget.
	RuleMaxLines RuleID = "max-lines"

	// RuleRequireVerification fires when a document has no Verification
	// section at all.
	RuleRequireVerification RuleID = "require-verification"

	// RuleRequireVerificationCommands fires when a Verification section
	// is present but declares no executable commands.
	RuleRequireVerificationCommands RuleID = "require-verification-commands"

	// RuleRequireExamples fires when a document has no Examples section.
	RuleRequireExamples RuleID = "require-examples"

	// RuleRequiredSections fires when a classified document is missing a
	// section its type requires.
	RuleRequiredSections RuleID = "required-sections"

	// RuleInvalidPathPattern fires when a declared Paths glob has invalid
	// syntax.
	RuleInvalidPathPattern RuleID = "invalid-path-pattern"

	// RuleEmptyPathPattern warns when a declared Paths glob matches no
	// repository file.
	RuleEmptyPathPattern RuleID = "empty-path-pattern"

	// RuleParseFailure reports a document that could not be decoded as
	// text. The document is excluded from further analysis.
	RuleParseFailure RuleID = "parse-failure"

	// RuleCommandFailed reports a verification command that exited
	// non-zero. Always error severity in the report, even under gradual.
	RuleCommandFailed RuleID = "command-failed"

	// RuleCommandTimeout reports a verification command that was killed
	// after the configured timeout. Treated as the command-failed class.
	RuleCommandTimeout RuleID = "command-timeout"

	// RuleVerificationMismatch reports command output that did not
	// contain the declared fragment.
	RuleVerificationMismatch RuleID = "verification-mismatch"

	// RuleStaleDocument reports a document whose mapped sources changed
	// while the document itself did not.
	RuleStaleDocument RuleID = "stale-document"

	// RuleCoverageThreshold reports a coverage ratio below --threshold.
	RuleCoverageThreshold RuleID = "coverage-threshold"

	// RuleGradualExpired notes that gradual mode was auto-cleared because
	// gradual_until is in the past.
	RuleGradualExpired RuleID = "gradual-expired"
)

// Rule is a named check with a fixed nominal severity. Rules are data: the
// checker owns the registry and dispatches predicates; documents never carry
// behaviour. The nominal severity is never mutated — gradual mode adjusts
// only the reported severity of emitted diagnostics.
type Rule struct {
	// ID is the stable rule identifier.
	ID RuleID

	// Severity is the nominal severity of a violation.
	Severity Severity

	// Description is a one-line summary shown in verbose output.
	Description string

	// AppliesTo restricts the rule to these document types.
	// Nil means the rule applies to every document.
	AppliesTo []DocType

	// Check evaluates the rule against one document and returns the
	// violations found. Nil for cross-document rules evaluated elsewhere.
	Check func(doc *Document) []Diagnostic
}

// Applies returns true if the rule applies to documents of type t.
func (r Rule) Applies(t DocType) bool {
	if r.AppliesTo == nil {
		return true
	}
	for _, at := range r.AppliesTo {
		if at == t {
			return true
		}
	}
	return false
}
