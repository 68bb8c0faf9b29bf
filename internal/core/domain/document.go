package domain

import "strings"

// DocType classifies a documentation file. The type is inferred from the
// containing directory (components/, runbooks/, adrs/) or an explicit
// frontmatter marker, and is immutable once a document has been parsed.
type DocType string

// Known document types.
const (
	// DocTypeComponent documents a piece of the system: purpose, interface,
	// verification and usage examples.
	DocTypeComponent DocType = "component"

	// DocTypeRunbook describes an operational procedure.
	DocTypeRunbook DocType = "runbook"

	// DocTypeADR is an architecture decision record.
	DocTypeADR DocType = "adr"

	// DocTypeUnclassified is a document outside any known convention.
	// Only structural rules apply to it.
	DocTypeUnclassified DocType = "unclassified"
)

// IsValid returns true if the document type is recognised.
func (t DocType) IsValid() bool {
	switch t {
	case DocTypeComponent, DocTypeRunbook, DocTypeADR, DocTypeUnclassified:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocType) String() string {
	return string(t)
}

// Section is one heading-delimited region of a document.
type Section struct {
	// Heading is the section heading text without markers.
	Heading string

	// Body is the raw text between this heading and the next.
	Body string

	// Line is the 1-indexed line number of the heading.
	Line int
}

// IsEmpty returns true if the section body contains no non-blank text.
func (s Section) IsEmpty() bool {
	return strings.TrimSpace(s.Body) == ""
}

// VerificationCommand is a shell command declared in a document's
// Verification section, optionally paired with an expected output fragment.
type VerificationCommand struct {
	// Command is the shell command line to execute.
	Command string

	// ExpectedOutput is a fragment the command's output must contain.
	// Empty means no output assertion; the exit status is still checked.
	ExpectedOutput string

	// Line is the 1-indexed line the command appears on.
	Line int
}

// HasExpectation returns true if an output fragment was declared.
func (c VerificationCommand) HasExpectation() bool {
	return c.ExpectedOutput != ""
}

// Document is the parsed representation of one documentation file.
type Document struct {
	// Path is the file path relative to the repository root, with
	// forward slashes.
	Path string

	// Type is the classified document type. Read-only after parsing.
	Type DocType

	// Title is the first level-one heading, or empty if absent.
	Title string

	// Lines is the total number of lines in the file.
	Lines int

	// Sections are the level-two sections in heading order.
	Sections []Section

	// Commands are the verification commands in declared order.
	Commands []VerificationCommand

	// PathPatterns are the literal glob strings declared under the Paths
	// section. No expansion happens at parse time.
	PathPatterns []string
}

// Section returns the named section, matched case-insensitively.
// The boolean distinguishes a missing section from an empty one.
func (d *Document) Section(heading string) (Section, bool) {
	for _, s := range d.Sections {
		if strings.EqualFold(s.Heading, heading) {
			return s, true
		}
	}
	return Section{}, false
}

// HasSection returns true if the named section is present.
func (d *Document) HasSection(heading string) bool {
	_, ok := d.Section(heading)
	return ok
}

// HasPathPatterns returns true if the document declares at least one
// Paths pattern. Documents without patterns are excluded from change
// detection and never contribute to coverage.
func (d *Document) HasPathPatterns() bool {
	return len(d.PathPatterns) > 0
}
