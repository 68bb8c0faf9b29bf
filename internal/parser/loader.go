package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/logger"
)

// Load walks the docs root and parses every markdown file into the document
// model. Files that cannot be decoded are reported as parse-failure
// diagnostics and excluded from the returned set; the walk itself only
// fails when the docs root is unreadable.
func Load(repoRoot, docsRoot string) ([]*domain.Document, []domain.Diagnostic, error) {
	var docs []*domain.Document
	var diags []domain.Diagnostic

	err := filepath.WalkDir(docsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != docsRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if !isMarkdown(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(repoRoot, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		docRelPath, err := filepath.Rel(docsRoot, path)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", relPath, err)
		}

		doc, err := Parse(relPath, filepath.ToSlash(docRelPath), content)
		if err != nil {
			if errors.Is(err, domain.ErrParse) {
				logger.Warn("excluding %s from analysis: %v", relPath, err)
				diags = append(diags, domain.Diagnostic{
					Path:     relPath,
					Rule:     domain.RuleParseFailure,
					Severity: domain.SeverityError,
					Message:  err.Error(),
				})
				return nil
			}
			return err
		}

		logger.Debug("parsed %s (type=%s, sections=%d, commands=%d)",
			relPath, doc.Type, len(doc.Sections), len(doc.Commands))
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk docs root: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, diags, nil
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}
