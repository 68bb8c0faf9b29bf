package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/pavedocs/paver/internal/core/domain"
)

// Severity styles for the text renderer. Colour is dropped automatically
// when stdout is not a terminal, so piped output stays plain.
var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// colourEnabled gates styling; overridden in tests.
var colourEnabled = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// styledDiagnostic formats one diagnostic line, colouring the severity
// label on a terminal.
func styledDiagnostic(d domain.Diagnostic) string {
	if !colourEnabled() {
		return d.String()
	}

	var style lipgloss.Style
	switch d.Severity {
	case domain.SeverityError:
		style = errorStyle
	case domain.SeverityWarning:
		style = warningStyle
	default:
		style = noticeStyle
	}

	loc := d.Path
	if loc == "" {
		loc = "<repository>"
	}
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, d.Line)
	}
	return fmt.Sprintf("%s: %s [%s] %s", style.Render(string(d.Severity)), loc, d.Rule, d.Message)
}
