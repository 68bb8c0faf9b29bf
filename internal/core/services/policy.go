package services

import "github.com/pavedocs/paver/internal/core/domain"

// gradualExempt lists the rules whose diagnostics keep error severity in
// the report even under gradual mode. A broken verification command or a
// missed coverage threshold is always surfaced at error class; only the
// exit code bends to gradual.
var gradualExempt = map[domain.RuleID]bool{
	domain.RuleCommandFailed:     true,
	domain.RuleCommandTimeout:    true,
	domain.RuleCoverageThreshold: true,
}

// ResolveReport applies the layered pass/fail policy to raw diagnostics and
// assembles the run report. Under gradual mode every rule-violation error is
// downgraded to a warning for reporting; the underlying rule severities are
// untouched — new diagnostic values are produced, never mutations.
func ResolveReport(diags []domain.Diagnostic, cfg domain.Config) *domain.Report {
	report := &domain.Report{Gradual: cfg.Gradual}
	for _, d := range diags {
		if cfg.Gradual && d.Severity == domain.SeverityError && !gradualExempt[d.Rule] {
			d.Severity = domain.SeverityWarning
		}
		report.Diagnostics = append(report.Diagnostics, d)
	}
	return report
}

// Failed reports whether the run lands in the failure exit class. Gradual
// mode forces the success class regardless of what the report contains;
// otherwise any surviving error-severity diagnostic fails the run. Warnings
// never fail the run.
func Failed(report *domain.Report, cfg domain.Config) bool {
	if cfg.Gradual {
		return false
	}
	return report.HasErrors()
}
