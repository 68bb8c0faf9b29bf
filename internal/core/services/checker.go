package services

import (
	"context"
	"fmt"

	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/core/ports/driving"
	"github.com/pavedocs/paver/internal/logger"
	"github.com/pavedocs/paver/internal/matcher"
)

// Ensure Checker implements the interface.
var _ driving.Checker = (*Checker)(nil)

// requiredSections maps each document type to the sections it must carry
// when its type-specific toggle is enabled.
var requiredSections = map[domain.DocType][]string{
	domain.DocTypeComponent: {"Purpose", "Interface", "Verification", "Examples"},
	domain.DocTypeRunbook:   {"Purpose", "Steps", "Verification"},
	domain.DocTypeADR:       {"Status", "Context", "Decision", "Consequences"},
}

// Checker applies the rule registry to parsed documents. The registry,
// including the type-to-rule-set mapping, is built once at construction;
// checking itself is read-only over documents.
type Checker struct {
	rules     []domain.Rule
	typeRules map[domain.DocType][]domain.Rule
}

// CheckerOption customises checker construction.
type CheckerOption func(*checkerDeps)

type checkerDeps struct {
	repoFiles []string
}

// WithRepositoryFiles supplies the repository file listing used by the
// empty-pattern warning. Without it that rule is skipped.
func WithRepositoryFiles(files []string) CheckerOption {
	return func(d *checkerDeps) {
		d.repoFiles = files
	}
}

// NewChecker builds the active rule registry from the resolved config.
func NewChecker(cfg domain.Config, opts ...CheckerOption) *Checker {
	var deps checkerDeps
	for _, opt := range opts {
		opt(&deps)
	}

	c := &Checker{typeRules: make(map[domain.DocType][]domain.Rule)}
	c.rules = structuralRules(cfg, deps.repoFiles)

	// Sections already enforced by an enabled structural rule are not
	// re-reported by the type-specific rule.
	covered := make(map[string]bool)
	if cfg.Rules.RequireVerification {
		covered["Verification"] = true
	}
	if cfg.Rules.RequireExamples {
		covered["Examples"] = true
	}

	for docType, sections := range requiredSections {
		if !cfg.TypeSpecific.Enabled(docType) {
			continue
		}
		var remaining []string
		for _, s := range sections {
			if !covered[s] {
				remaining = append(remaining, s)
			}
		}
		if len(remaining) > 0 {
			c.typeRules[docType] = []domain.Rule{sectionRule(docType, remaining)}
		}
	}
	return c
}

// Check evaluates every applicable rule against every document. Returned
// diagnostics carry nominal severities; gradual-mode resolution happens in
// ResolveReport.
func (c *Checker) Check(ctx context.Context, docs []*domain.Document) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for _, doc := range docs {
		if ctx.Err() != nil {
			return diags
		}
		for _, rule := range c.rules {
			if rule.Applies(doc.Type) {
				diags = append(diags, rule.Check(doc)...)
			}
		}
		for _, rule := range c.typeRules[doc.Type] {
			diags = append(diags, rule.Check(doc)...)
		}
	}
	logger.Debug("rule check produced %d diagnostics across %d documents", len(diags), len(docs))
	return diags
}

// structuralRules builds the per-document rules active under cfg.
func structuralRules(cfg domain.Config, repoFiles []string) []domain.Rule {
	rules := []domain.Rule{
		{
			ID:          domain.RuleMissingTitle,
			Severity:    domain.SeverityError,
			Description: "every document needs a level-one title",
			Check: func(doc *domain.Document) []domain.Diagnostic {
				if doc.Title != "" {
					return nil
				}
				return []domain.Diagnostic{{
					Path:     doc.Path,
					Line:     1,
					Rule:     domain.RuleMissingTitle,
					Severity: domain.SeverityError,
					Message:  "document has no title heading",
				}}
			},
		},
	}

	if cfg.Rules.MaxLines > 0 {
		maxLines := cfg.Rules.MaxLines
		rules = append(rules, domain.Rule{
			ID:          domain.RuleMaxLines,
			Severity:    domain.SeverityError,
			Description: "documents stay within the configured line budget",
			Check: func(doc *domain.Document) []domain.Diagnostic {
				if doc.Lines <= maxLines {
					return nil
				}
				return []domain.Diagnostic{{
					Path:     doc.Path,
					Rule:     domain.RuleMaxLines,
					Severity: domain.SeverityError,
					Message:  fmt.Sprintf("document is %d lines, limit is %d", doc.Lines, maxLines),
				}}
			},
		})
	}

	if cfg.Rules.RequireVerification {
		rules = append(rules, domain.Rule{
			ID:          domain.RuleRequireVerification,
			Severity:    domain.SeverityError,
			Description: "every document declares how to verify its claims",
			Check: func(doc *domain.Document) []domain.Diagnostic {
				if doc.HasSection("Verification") {
					return nil
				}
				return []domain.Diagnostic{{
					Path:     doc.Path,
					Rule:     domain.RuleRequireVerification,
					Severity: domain.SeverityError,
					Message:  "missing Verification section",
				}}
			},
		})
	}

	if cfg.Rules.RequireVerificationCommands {
		rules = append(rules, domain.Rule{
			ID:          domain.RuleRequireVerificationCommands,
			Severity:    domain.SeverityError,
			Description: "Verification sections declare executable commands",
			Check: func(doc *domain.Document) []domain.Diagnostic {
				sec, ok := doc.Section("Verification")
				if !ok || len(doc.Commands) > 0 {
					// A missing section is require-verification's report.
					return nil
				}
				return []domain.Diagnostic{{
					Path:     doc.Path,
					Line:     sec.Line,
					Rule:     domain.RuleRequireVerificationCommands,
					Severity: domain.SeverityError,
					Message:  "Verification section declares no executable commands",
				}}
			},
		})
	}

	if cfg.Rules.RequireExamples {
		rules = append(rules, domain.Rule{
			ID:          domain.RuleRequireExamples,
			Severity:    domain.SeverityError,
			Description: "every document shows usage examples",
			Check: func(doc *domain.Document) []domain.Diagnostic {
				if doc.HasSection("Examples") {
					return nil
				}
				return []domain.Diagnostic{{
					Path:     doc.Path,
					Rule:     domain.RuleRequireExamples,
					Severity: domain.SeverityError,
					Message:  "missing Examples section",
				}}
			},
		})
	}

	if cfg.Rules.ValidatePaths {
		rules = append(rules, domain.Rule{
			ID:          domain.RuleInvalidPathPattern,
			Severity:    domain.SeverityError,
			Description: "declared path patterns are valid glob syntax",
			Check: func(doc *domain.Document) []domain.Diagnostic {
				var diags []domain.Diagnostic
				for _, p := range doc.PathPatterns {
					if !matcher.Validate(p) {
						diags = append(diags, domain.Diagnostic{
							Path:     doc.Path,
							Rule:     domain.RuleInvalidPathPattern,
							Severity: domain.SeverityError,
							Message:  fmt.Sprintf("invalid glob pattern %q", p),
						})
					}
				}
				return diags
			},
		})
	}

	if cfg.Rules.WarnEmptyPaths && repoFiles != nil {
		files := repoFiles
		rules = append(rules, domain.Rule{
			ID:          domain.RuleEmptyPathPattern,
			Severity:    domain.SeverityWarning,
			Description: "declared path patterns match at least one file",
			Check: func(doc *domain.Document) []domain.Diagnostic {
				var diags []domain.Diagnostic
				for _, p := range doc.PathPatterns {
					if !matcher.Validate(p) {
						continue
					}
					matched := false
					for _, f := range files {
						if matcher.Match(p, f) {
							matched = true
							break
						}
					}
					if !matched {
						diags = append(diags, domain.Diagnostic{
							Path:     doc.Path,
							Rule:     domain.RuleEmptyPathPattern,
							Severity: domain.SeverityWarning,
							Message:  fmt.Sprintf("pattern %q matches no repository file", p),
						})
					}
				}
				return diags
			},
		})
	}

	return rules
}

// sectionRule builds the required-sections rule for one document type.
func sectionRule(docType domain.DocType, sections []string) domain.Rule {
	return domain.Rule{
		ID:          domain.RuleRequiredSections,
		Severity:    domain.SeverityError,
		Description: fmt.Sprintf("%s documents carry their required sections", docType),
		AppliesTo:   []domain.DocType{docType},
		Check: func(doc *domain.Document) []domain.Diagnostic {
			var diags []domain.Diagnostic
			for _, heading := range sections {
				if !doc.HasSection(heading) {
					diags = append(diags, domain.Diagnostic{
						Path:     doc.Path,
						Rule:     domain.RuleRequiredSections,
						Severity: domain.SeverityError,
						Message:  fmt.Sprintf("%s document is missing the %s section", docType, heading),
					})
				}
			}
			return diags
		},
	}
}
