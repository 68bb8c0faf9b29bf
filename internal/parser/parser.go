// Package parser builds the document model: it enumerates a documentation
// tree, classifies each file by directory convention or frontmatter marker,
// and extracts sections, verification commands and declared path patterns.
//
// Parsing is permissive. A missing or malformed section is represented as
// absence and left for the rule checker to report; only a file that cannot
// be decoded as text is a parse failure.
package parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/pavedocs/paver/internal/core/domain"
)

// frontmatter is the optional YAML block between --- delimiters at the top
// of a document. Only the type marker is consumed; anything else is authors'
// metadata.
type frontmatter struct {
	Type string `yaml:"type"`
}

// Parse converts one documentation file into a Document. relPath is the
// repository-relative path recorded on the result; docRelPath is the path
// relative to the docs root, used for directory-convention classification.
// Returns domain.ErrParse (with file and line) when the content cannot be
// decoded as text.
func Parse(relPath, docRelPath string, content []byte) (*domain.Document, error) {
	if line, ok := firstUndecodableLine(content); ok {
		return nil, fmt.Errorf("%w: %s:%d: not valid text", domain.ErrParse, relPath, line)
	}

	doc := &domain.Document{
		Path: relPath,
		Type: classify(docRelPath, content),
	}

	lines := splitLines(content)
	doc.Lines = len(lines)

	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		fence := isFenceMarker(trimmed)
		if fence {
			inFence = !inFence
		}
		if !fence && !inFence {
			if doc.Title == "" && strings.HasPrefix(trimmed, "# ") {
				doc.Title = headingText(trimmed)
				continue
			}
			if isSectionHeading(trimmed) {
				doc.Sections = append(doc.Sections, domain.Section{
					Heading: headingText(trimmed),
					Line:    i + 1,
				})
				continue
			}
		}
		if n := len(doc.Sections); n > 0 {
			doc.Sections[n-1].Body += line + "\n"
		}
	}

	if sec, ok := doc.Section("Verification"); ok {
		doc.Commands = extractCommands(sec)
	}
	if sec, ok := doc.Section("Paths"); ok {
		doc.PathPatterns = extractPathPatterns(sec)
	}

	return doc, nil
}

// classify infers the document type from the first path segment under the
// docs root, then lets an explicit frontmatter marker override it.
func classify(docRelPath string, content []byte) domain.DocType {
	typ := domain.DocTypeUnclassified
	switch firstSegment(docRelPath) {
	case "components":
		typ = domain.DocTypeComponent
	case "runbooks":
		typ = domain.DocTypeRunbook
	case "adrs":
		typ = domain.DocTypeADR
	}

	if fm, ok := parseFrontmatter(content); ok && fm.Type != "" {
		if marked := domain.DocType(fm.Type); marked.IsValid() {
			typ = marked
		}
	}
	return typ
}

// parseFrontmatter reads the YAML block between --- delimiters at the start
// of the document. Malformed frontmatter is ignored; classification falls
// back to the directory convention.
func parseFrontmatter(content []byte) (frontmatter, bool) {
	const delim = "---\n"
	if !bytes.HasPrefix(content, []byte(delim)) {
		return frontmatter{}, false
	}
	rest := content[len(delim):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return frontmatter{}, false
	}

	var fm frontmatter
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return frontmatter{}, false
	}
	return fm, true
}

// codeBlock is a fenced block inside a section body.
type codeBlock struct {
	lang      string
	lines     []string
	startLine int // 1-indexed line of the first content line
}

// executable reports whether the block holds shell commands: a shell
// language tag, or an untagged block using $/> prompt syntax.
func (b codeBlock) executable() bool {
	switch strings.ToLower(b.lang) {
	case "bash", "sh", "shell", "zsh", "console":
		return true
	case "":
		for _, line := range b.lines {
			t := strings.TrimSpace(line)
			if strings.HasPrefix(t, "$ ") || strings.HasPrefix(t, "> ") {
				return true
			}
		}
	}
	return false
}

func (b codeBlock) text() string {
	return strings.TrimSpace(strings.Join(b.lines, "\n"))
}

// extractCommands pulls verification commands from the section's fenced
// code blocks. Executable blocks contribute commands; a non-executable
// block immediately following an executable one is the expected-output
// fragment for the last command of that block.
func extractCommands(sec domain.Section) []domain.VerificationCommand {
	blocks := fencedBlocks(sec)

	var cmds []domain.VerificationCommand
	lastExecutable := false
	for _, b := range blocks {
		if b.executable() {
			before := len(cmds)
			cmds = append(cmds, commandsFromBlock(b)...)
			lastExecutable = len(cmds) > before
			continue
		}
		if lastExecutable && len(cmds) > 0 && !cmds[len(cmds)-1].HasExpectation() {
			cmds[len(cmds)-1].ExpectedOutput = b.text()
		}
		lastExecutable = false
	}
	return cmds
}

// fencedBlocks scans a section body for ``` fenced blocks, tracking line
// numbers relative to the section heading.
func fencedBlocks(sec domain.Section) []codeBlock {
	var blocks []codeBlock
	var current *codeBlock

	for i, line := range strings.Split(sec.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if isFenceMarker(trimmed) {
			if current == nil {
				current = &codeBlock{
					lang:      strings.TrimSpace(strings.TrimLeft(trimmed, "`~")),
					startLine: sec.Line + i + 2,
				}
			} else {
				blocks = append(blocks, *current)
				current = nil
			}
			continue
		}
		if current != nil {
			current.lines = append(current.lines, line)
		}
	}
	return blocks
}

// commandsFromBlock extracts individual command lines from an executable
// block. Handles $-prompt syntax, comment and blank lines, and backslash
// continuations.
func commandsFromBlock(b codeBlock) []domain.VerificationCommand {
	var cmds []domain.VerificationCommand
	var current strings.Builder
	currentLine := 0
	continuation := false

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			cmds = append(cmds, domain.VerificationCommand{Command: s, Line: currentLine})
		}
		current.Reset()
		continuation = false
	}

	for i, raw := range b.lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			if !continuation {
				flush()
			}
			continue
		}

		line = strings.TrimPrefix(line, "$ ")

		if rest, cont := strings.CutSuffix(line, "\\"); cont {
			if !continuation {
				flush()
				currentLine = b.startLine + i
			}
			current.WriteString(rest)
			current.WriteString(" ")
			continuation = true
			continue
		}

		if continuation {
			current.WriteString(line)
			flush()
			continue
		}

		currentLine = b.startLine + i
		current.WriteString(line)
		flush()
	}
	flush()
	return cmds
}

// extractPathPatterns reads the literal glob strings listed under a Paths
// section, one per line or bullet. Backticks and bullet markers are
// stripped; prose lines (anything with interior whitespace) are skipped.
// No expansion happens here.
func extractPathPatterns(sec domain.Section) []string {
	var patterns []string
	for _, line := range strings.Split(sec.Body, "\n") {
		p := strings.TrimSpace(line)
		if p == "" || isFenceMarker(p) {
			continue
		}
		for _, bullet := range []string{"- ", "* ", "+ "} {
			if strings.HasPrefix(p, bullet) {
				p = strings.TrimSpace(strings.TrimPrefix(p, bullet))
				break
			}
		}
		p = strings.Trim(p, "`")
		if p == "" || strings.ContainsAny(p, " \t") {
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns
}

func isFenceMarker(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

func isSectionHeading(trimmed string) bool {
	return strings.HasPrefix(trimmed, "## ")
}

func headingText(trimmed string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimLeft(trimmed, "#"), "#"))
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "./")
	if idx := strings.Index(p, "/"); idx >= 0 {
		return p[:idx]
	}
	return ""
}

// splitLines splits content into lines without counting a trailing newline
// as an extra empty line.
func splitLines(content []byte) []string {
	s := string(content)
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// firstUndecodableLine returns the 1-indexed line of the first byte
// sequence that is not valid text (invalid UTF-8 or a NUL byte).
func firstUndecodableLine(content []byte) (int, bool) {
	offset := -1
	if !utf8.Valid(content) {
		valid := content
		for len(valid) > 0 {
			r, size := utf8.DecodeRune(valid)
			if r == utf8.RuneError && size == 1 {
				offset = len(content) - len(valid)
				break
			}
			valid = valid[size:]
		}
	}
	if nul := bytes.IndexByte(content, 0); nul >= 0 && (offset < 0 || nul < offset) {
		offset = nul
	}
	if offset < 0 {
		return 0, false
	}
	return bytes.Count(content[:offset], []byte("\n")) + 1, true
}
