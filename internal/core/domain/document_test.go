package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocType_IsValid(t *testing.T) {
	assert.True(t, DocTypeComponent.IsValid())
	assert.True(t, DocTypeRunbook.IsValid())
	assert.True(t, DocTypeADR.IsValid())
	assert.True(t, DocTypeUnclassified.IsValid())
	assert.False(t, DocType("wiki").IsValid())
}

func TestDocument_Section_CaseInsensitive(t *testing.T) {
	doc := &Document{
		Sections: []Section{
			{Heading: "Purpose", Body: "why", Line: 3},
			{Heading: "Verification", Body: "", Line: 7},
		},
	}

	s, ok := doc.Section("purpose")
	assert.True(t, ok)
	assert.Equal(t, "why", s.Body)

	// Present but empty is distinct from absent.
	s, ok = doc.Section("Verification")
	assert.True(t, ok)
	assert.True(t, s.IsEmpty())

	_, ok = doc.Section("Examples")
	assert.False(t, ok)
}

func TestDocument_HasPathPatterns(t *testing.T) {
	assert.False(t, (&Document{}).HasPathPatterns())
	assert.True(t, (&Document{PathPatterns: []string{"src/**/*.go"}}).HasPathPatterns())
}

func TestVerificationCommand_HasExpectation(t *testing.T) {
	assert.False(t, VerificationCommand{Command: "make test"}.HasExpectation())
	assert.True(t, VerificationCommand{Command: "make test", ExpectedOutput: "ok"}.HasExpectation())
}

func TestRule_Applies(t *testing.T) {
	all := Rule{ID: RuleMaxLines}
	assert.True(t, all.Applies(DocTypeComponent))
	assert.True(t, all.Applies(DocTypeUnclassified))

	scoped := Rule{ID: RuleRequiredSections, AppliesTo: []DocType{DocTypeADR}}
	assert.True(t, scoped.Applies(DocTypeADR))
	assert.False(t, scoped.Applies(DocTypeRunbook))
}

func TestDocumentImpact_Stale(t *testing.T) {
	impacted := DocumentImpact{Document: "docs/components/api.md", MatchedPaths: []string{"src/api.go"}}
	assert.True(t, impacted.Stale())

	selfChanged := DocumentImpact{Document: "docs/components/api.md", MatchedPaths: []string{"src/api.go"}, SelfChanged: true}
	assert.False(t, selfChanged.Stale())

	untouched := DocumentImpact{Document: "docs/components/api.md"}
	assert.False(t, untouched.Stale())
}

func TestCoverageReport_Ratio(t *testing.T) {
	assert.InDelta(t, 100.0, CoverageReport{}.Ratio(), 0.001, "empty scope is full coverage")
	assert.InDelta(t, 80.0, CoverageReport{Total: 10, Covered: 8}.Ratio(), 0.001)
	assert.InDelta(t, 0.0, CoverageReport{Total: 5}.Ratio(), 0.001)
}

func TestReport_Counts(t *testing.T) {
	r := &Report{Diagnostics: []Diagnostic{
		{Rule: RuleMaxLines, Severity: SeverityError},
		{Rule: RuleRequireExamples, Severity: SeverityWarning},
		{Rule: RuleGradualExpired, Severity: SeverityNotice},
	}}

	assert.Equal(t, 1, r.Count(SeverityError))
	assert.Equal(t, 1, r.Count(SeverityWarning))
	assert.Equal(t, 1, r.Count(SeverityNotice))
	assert.True(t, r.HasErrors())
}

func TestTypeSpecificConfig_Enabled(t *testing.T) {
	cfg := TypeSpecificConfig{Components: true, ADRs: true}
	assert.True(t, cfg.Enabled(DocTypeComponent))
	assert.False(t, cfg.Enabled(DocTypeRunbook))
	assert.True(t, cfg.Enabled(DocTypeADR))
	assert.False(t, cfg.Enabled(DocTypeUnclassified))
}
