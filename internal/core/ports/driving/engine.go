package driving

import (
	"context"

	"github.com/pavedocs/paver/internal/core/domain"
)

// Checker applies the active rule registry to a document set.
type Checker interface {
	// Check evaluates every per-document rule and returns the raw
	// diagnostics at nominal severity. Policy resolution happens later.
	Check(ctx context.Context, docs []*domain.Document) []domain.Diagnostic
}

// Verifier executes declared verification commands and compares output
// against declared expectations.
type Verifier interface {
	// Verify runs each document's commands. Commands within one document
	// run in declared order; independent documents may run concurrently.
	Verify(ctx context.Context, docs []*domain.Document) (*domain.VerifyReport, []domain.Diagnostic, error)
}

// ChangeDetector maps version-control changes through document path
// patterns to find impacted and stale documents.
type ChangeDetector interface {
	Detect(ctx context.Context, docs []*domain.Document, base string) (*domain.ChangeSet, []domain.Diagnostic, error)
}

// CoverageOptions narrow the in-scope source set for one invocation only.
// They never mutate the resolved Config's excludes.
type CoverageOptions struct {
	// Include, when non-empty, restricts scope to matching paths.
	Include []string

	// Exclude removes matching paths from scope.
	Exclude []string

	// Threshold fails the run when the ratio falls below it.
	// Negative means no threshold.
	Threshold float64
}

// CoverageCalculator computes the fraction of in-scope source paths claimed
// by at least one document's Paths patterns.
type CoverageCalculator interface {
	Calculate(ctx context.Context, docs []*domain.Document, opts CoverageOptions) (*domain.CoverageReport, []domain.Diagnostic, error)
}
