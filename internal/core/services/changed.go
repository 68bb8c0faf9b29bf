package services

import (
	"context"
	"fmt"

	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/core/ports/driven"
	"github.com/pavedocs/paver/internal/core/ports/driving"
	"github.com/pavedocs/paver/internal/logger"
	"github.com/pavedocs/paver/internal/matcher"
)

// Ensure ChangeDetector implements the interface.
var _ driving.ChangeDetector = (*ChangeDetector)(nil)

// ChangeDetector maps version-control changes through declared path
// patterns. Diffing itself is the version-control collaborator's job.
type ChangeDetector struct {
	cfg domain.Config
	vcs driven.VersionControl
}

// NewChangeDetector creates a change detector backed by the given
// version-control collaborator.
func NewChangeDetector(cfg domain.Config, vcs driven.VersionControl) *ChangeDetector {
	return &ChangeDetector{cfg: cfg, vcs: vcs}
}

// Detect computes which documents are impacted or stale relative to base.
// A document with no Paths section can never be impacted and is excluded
// from this analysis: undeclared scope cannot be checked. That is a known
// limitation surfaced in the docs, not silently masked behaviour.
func (d *ChangeDetector) Detect(ctx context.Context, docs []*domain.Document, base string) (*domain.ChangeSet, []domain.Diagnostic, error) {
	changed, err := d.vcs.ChangedFiles(ctx, base)
	if err != nil {
		return nil, nil, fmt.Errorf("changed files against %s: %w", base, err)
	}
	logger.Debug("%d files changed against %s", len(changed), base)

	changedSet := make(map[string]bool, len(changed))
	for _, path := range changed {
		changedSet[path] = true
	}

	cs := &domain.ChangeSet{Base: base}
	docsByFile := make(map[string][]string)
	var diags []domain.Diagnostic

	for _, doc := range docs {
		if !doc.HasPathPatterns() {
			continue
		}

		var matched []string
		for _, path := range changed {
			if matcher.MatchAny(doc.PathPatterns, path) {
				matched = append(matched, path)
				docsByFile[path] = append(docsByFile[path], doc.Path)
			}
		}
		if len(matched) == 0 {
			continue
		}

		impact := domain.DocumentImpact{
			Document:     doc.Path,
			MatchedPaths: matched,
			SelfChanged:  changedSet[doc.Path],
		}
		cs.Impacts = append(cs.Impacts, impact)

		if impact.Stale() {
			severity := domain.SeverityNotice
			if d.cfg.Strict {
				severity = domain.SeverityError
			}
			diags = append(diags, domain.Diagnostic{
				Path:     doc.Path,
				Rule:     domain.RuleStaleDocument,
				Severity: severity,
				Message: fmt.Sprintf("sources matching this document changed (%d files, e.g. %s) but the document did not",
					len(matched), matched[0]),
			})
		}
	}

	for _, path := range changed {
		cs.Files = append(cs.Files, domain.ChangedFile{Path: path, Documents: docsByFile[path]})
	}
	return cs, diags, nil
}
