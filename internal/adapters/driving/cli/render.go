package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pavedocs/paver/internal/core/domain"
)

// outputFormat selects how diagnostics are written.
type outputFormat string

const (
	formatText   outputFormat = "text"
	formatJSON   outputFormat = "json"
	formatGitHub outputFormat = "github"
)

// parseFormat validates a --format value.
func parseFormat(s string) (outputFormat, error) {
	switch outputFormat(s) {
	case formatText, formatJSON, formatGitHub:
		return outputFormat(s), nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, json or github)", domain.ErrConfig, s)
	}
}

// renderReport writes the resolved report in the requested format. Every
// format carries the identical diagnostic set.
func renderReport(w io.Writer, format outputFormat, report *domain.Report) error {
	switch format {
	case formatJSON:
		return renderJSON(w, report)
	case formatGitHub:
		return renderGitHub(w, report)
	default:
		return renderText(w, report)
	}
}

func renderText(w io.Writer, report *domain.Report) error {
	for _, d := range report.Diagnostics {
		if _, err := fmt.Fprintln(w, styledDiagnostic(d)); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%s, %s, %s",
		plural(report.Count(domain.SeverityError), "error"),
		plural(report.Count(domain.SeverityWarning), "warning"),
		plural(report.Count(domain.SeverityNotice), "notice"))
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return err
	}

	if report.Gradual {
		_, err := fmt.Fprintln(w, "gradual mode active: rule violations reported as warnings")
		return err
	}
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderGitHub emits workflow commands that annotate the offending files in
// a pull request view.
func renderGitHub(w io.Writer, report *domain.Report) error {
	for _, d := range report.Diagnostics {
		var location string
		if d.Path != "" {
			location = "file=" + d.Path
			if d.Line > 0 {
				location += fmt.Sprintf(",line=%d", d.Line)
			}
		}
		message := fmt.Sprintf("[%s] %s", d.Rule, escapeWorkflowData(d.Message))
		if _, err := fmt.Fprintf(w, "::%s %s::%s\n", githubLevel(d.Severity), location, message); err != nil {
			return err
		}
	}
	return nil
}

func githubLevel(s domain.Severity) string {
	switch s {
	case domain.SeverityError:
		return "error"
	case domain.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}

// escapeWorkflowData applies the workflow-command escaping rules for the
// data portion of an annotation.
func escapeWorkflowData(s string) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return r.Replace(s)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
