package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/core/ports/driven"
	"github.com/pavedocs/paver/internal/core/ports/driving"
	"github.com/pavedocs/paver/internal/logger"
	"github.com/pavedocs/paver/internal/matcher"
	"github.com/pavedocs/paver/internal/scanner"
)

// Ensure CoverageCalculator implements the interface.
var _ driving.CoverageCalculator = (*CoverageCalculator)(nil)

// thresholdEpsilon absorbs float rounding at the threshold boundary, so a
// ratio of exactly N passes --threshold N.
const thresholdEpsilon = 1e-9

// CoverageCalculator computes the fraction of in-scope source paths
// claimed by at least one document's Paths patterns.
type CoverageCalculator struct {
	cfg domain.Config
	vcs driven.VersionControl
}

// NewCoverageCalculator creates a coverage calculator backed by the given
// version-control collaborator.
func NewCoverageCalculator(cfg domain.Config, vcs driven.VersionControl) *CoverageCalculator {
	return &CoverageCalculator{cfg: cfg, vcs: vcs}
}

// Calculate enumerates in-scope source files and tests each against every
// document's patterns. Runtime include/exclude filters narrow scope for
// this invocation only; the resolved config is never mutated.
func (c *CoverageCalculator) Calculate(ctx context.Context, docs []*domain.Document, opts driving.CoverageOptions) (*domain.CoverageReport, []domain.Diagnostic, error) {
	files, err := c.vcs.TrackedFiles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list repository files: %w", err)
	}

	excludes := c.cfg.MappingExcludes
	// The documentation tree itself is not source scope.
	if rel, err := filepath.Rel(c.cfg.RepoRoot, c.cfg.DocsRoot); err == nil {
		excludes = append(excludes, filepath.ToSlash(rel)+"/")
	}

	scope := scanner.Filter(files, scanner.Options{
		Excludes:        excludes,
		Include:         opts.Include,
		RuntimeExcludes: opts.Exclude,
	})
	logger.Debug("coverage scope: %d of %d repository files", len(scope), len(files))

	var patterns [][]string
	for _, doc := range docs {
		if doc.HasPathPatterns() {
			patterns = append(patterns, doc.PathPatterns)
		}
	}

	report := &domain.CoverageReport{Total: len(scope)}
	for _, path := range scope {
		covered := false
		for _, pats := range patterns {
			if matcher.MatchAny(pats, path) {
				covered = true
				break
			}
		}
		if covered {
			report.Covered++
		} else {
			report.Uncovered = append(report.Uncovered, path)
		}
	}

	var diags []domain.Diagnostic
	if opts.Threshold >= 0 && report.Ratio() < opts.Threshold-thresholdEpsilon {
		diags = append(diags, domain.Diagnostic{
			Rule:     domain.RuleCoverageThreshold,
			Severity: domain.SeverityError,
			Message: fmt.Sprintf("documentation coverage %.1f%% is below the required %.1f%%",
				report.Ratio(), opts.Threshold),
		})
	}
	return report, diags, nil
}
