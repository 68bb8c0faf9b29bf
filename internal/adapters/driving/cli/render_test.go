package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavedocs/paver/internal/core/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{Diagnostics: []domain.Diagnostic{
		{
			Path:     "docs/components/auth.md",
			Line:     3,
			Rule:     domain.RuleRequireVerification,
			Severity: domain.SeverityError,
			Message:  "missing Verification section",
		},
		{
			Rule:     domain.RuleCoverageThreshold,
			Severity: domain.SeverityWarning,
			Message:  "documentation coverage 40.0% is below the required 80.0%",
		},
	}}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"text", "json", "github"} {
		format, err := parseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, outputFormat(valid), format)
	}

	_, err := parseFormat("yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestRenderText(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderText(buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "error: docs/components/auth.md:3 [require-verification] missing Verification section")
	assert.Contains(t, out, "1 error, 1 warning, 0 notices")
	assert.NotContains(t, out, "gradual mode")
}

func TestRenderTextGradualNote(t *testing.T) {
	report := sampleReport()
	report.Gradual = true

	buf := new(bytes.Buffer)
	require.NoError(t, renderText(buf, report))

	assert.Contains(t, buf.String(), "gradual mode active")
}

func TestRenderGitHub(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderGitHub(buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "::error file=docs/components/auth.md,line=3::[require-verification] missing Verification section")
	assert.Contains(t, out, "::warning ::[coverage-threshold]")
}

func TestRenderGitHubEscapesNewlines(t *testing.T) {
	report := &domain.Report{Diagnostics: []domain.Diagnostic{{
		Path:     "docs/notes.md",
		Rule:     domain.RuleMissingTitle,
		Severity: domain.SeverityError,
		Message:  "first line\nsecond line",
	}}}

	buf := new(bytes.Buffer)
	require.NoError(t, renderGitHub(buf, report))

	assert.Contains(t, buf.String(), "first line%0Asecond line")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 errors", plural(0, "error"))
	assert.Equal(t, "1 error", plural(1, "error"))
	assert.Equal(t, "2 errors", plural(2, "error"))
}
