package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/core/ports/driven"
	"github.com/pavedocs/paver/internal/core/ports/driving"
	"github.com/pavedocs/paver/internal/logger"
)

// Ensure Verifier implements the interface.
var _ driving.Verifier = (*Verifier)(nil)

// defaultWorkers bounds how many documents verify concurrently. Commands
// within one document always run in declared order; later commands may
// assume earlier ones' effects.
const defaultWorkers = 4

// maxCapturedOutput caps the output stored per command outcome.
const maxCapturedOutput = 8 * 1024

// Verifier executes each document's declared verification commands and
// compares captured output against declared expectations.
type Verifier struct {
	cfg     domain.Config
	runner  driven.CommandRunner
	workers int
}

// VerifierOption customises verifier construction.
type VerifierOption func(*Verifier)

// WithWorkers overrides the document-level concurrency bound.
func WithWorkers(n int) VerifierOption {
	return func(v *Verifier) {
		if n > 0 {
			v.workers = n
		}
	}
}

// NewVerifier creates a verification executor using the given runner.
func NewVerifier(cfg domain.Config, runner driven.CommandRunner, opts ...VerifierOption) *Verifier {
	v := &Verifier{cfg: cfg, runner: runner, workers: defaultWorkers}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify runs the verification commands of every document that declares
// any. Independent documents run concurrently under a bounded pool; a
// user-level interrupt cancels all in-flight commands and surfaces as the
// context's error.
func (v *Verifier) Verify(ctx context.Context, docs []*domain.Document) (*domain.VerifyReport, []domain.Diagnostic, error) {
	started := time.Now()

	var targets []*domain.Document
	for _, doc := range docs {
		if len(doc.Commands) > 0 {
			targets = append(targets, doc)
		}
	}

	perDoc := make([][]domain.CommandOutcome, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)

	for i, doc := range targets {
		i, doc := i, doc
		g.Go(func() error {
			outcomes, err := v.verifyDocument(gctx, doc)
			perDoc[i] = outcomes
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	report := &domain.VerifyReport{
		RunID:     uuid.New().String(),
		StartedAt: started,
		Duration:  time.Since(started),
	}
	var diags []domain.Diagnostic
	for _, outcomes := range perDoc {
		report.Outcomes = append(report.Outcomes, outcomes...)
		for _, o := range outcomes {
			if d, ok := v.diagnose(o); ok {
				diags = append(diags, d)
			}
		}
	}

	logger.Info("verified %d documents: %d commands, %d failed",
		len(targets), len(report.Outcomes), report.Failed())
	return report, diags, nil
}

// verifyDocument runs one document's commands in declared order. Without
// keep-going, the first execution failure skips the document's remaining
// commands; other documents still run.
func (v *Verifier) verifyDocument(ctx context.Context, doc *domain.Document) ([]domain.CommandOutcome, error) {
	outcomes := make([]domain.CommandOutcome, 0, len(doc.Commands))
	halted := false

	for _, cmd := range doc.Commands {
		if halted {
			outcomes = append(outcomes, domain.CommandOutcome{
				Document: doc.Path,
				Command:  cmd.Command,
				Line:     cmd.Line,
				Status:   domain.CommandSkipped,
				ExitCode: -1,
			})
			continue
		}
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		logger.Debug("running %q for %s", cmd.Command, doc.Path)
		result, err := v.runner.Run(ctx, driven.CommandSpec{
			Command: cmd.Command,
			Dir:     v.cfg.RepoRoot,
			Timeout: v.cfg.CommandTimeout,
		})
		if err != nil {
			return outcomes, fmt.Errorf("run %q: %w", cmd.Command, err)
		}
		if ctx.Err() != nil {
			return outcomes, ctx.Err()
		}

		outcome := v.classify(doc.Path, cmd, result)
		outcomes = append(outcomes, outcome)

		if !v.cfg.KeepGoing && (outcome.Status == domain.CommandFailed || outcome.Status == domain.CommandTimedOut) {
			halted = true
		}
	}
	return outcomes, nil
}

// classify maps a raw command result onto an outcome, applying the output
// matching policy.
func (v *Verifier) classify(docPath string, cmd domain.VerificationCommand, result driven.CommandResult) domain.CommandOutcome {
	outcome := domain.CommandOutcome{
		Document: docPath,
		Command:  cmd.Command,
		Line:     cmd.Line,
		ExitCode: result.ExitCode,
		Output:   truncate(result.Output, maxCapturedOutput),
		Duration: result.Duration,
	}

	switch {
	case result.TimedOut:
		outcome.Status = domain.CommandTimedOut
	case result.ExitCode != 0:
		outcome.Status = domain.CommandFailed
	case cmd.HasExpectation() && !v.cfg.Rules.SkipOutputMatching && !outputContains(result.Output, cmd.ExpectedOutput):
		outcome.Status = domain.CommandMismatched
	default:
		outcome.Status = domain.CommandPassed
	}
	return outcome
}

// diagnose converts a non-passing outcome into a diagnostic. Execution
// failures are always error severity; mismatch severity follows
// strict_output_matching.
func (v *Verifier) diagnose(o domain.CommandOutcome) (domain.Diagnostic, bool) {
	switch o.Status {
	case domain.CommandFailed:
		return domain.Diagnostic{
			Path:     o.Document,
			Line:     o.Line,
			Rule:     domain.RuleCommandFailed,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("command %q exited with status %d", o.Command, o.ExitCode),
		}, true
	case domain.CommandTimedOut:
		return domain.Diagnostic{
			Path:     o.Document,
			Line:     o.Line,
			Rule:     domain.RuleCommandTimeout,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("command %q timed out after %s", o.Command, v.cfg.CommandTimeout),
		}, true
	case domain.CommandMismatched:
		severity := domain.SeverityWarning
		if v.cfg.Rules.StrictOutputMatching {
			severity = domain.SeverityError
		}
		return domain.Diagnostic{
			Path:     o.Document,
			Line:     o.Line,
			Rule:     domain.RuleVerificationMismatch,
			Severity: severity,
			Message:  fmt.Sprintf("output of %q does not contain the expected fragment", o.Command),
		}, true
	default:
		return domain.Diagnostic{}, false
	}
}

// outputContains applies the output matching policy: both sides are
// whitespace-normalised (runs collapsed to single spaces, ends trimmed),
// then compared with case-sensitive substring containment. This tolerates
// incidental indentation and wrapping while keeping content checks exact.
func outputContains(output, fragment string) bool {
	return strings.Contains(normaliseWhitespace(output), normaliseWhitespace(fragment))
}

func normaliseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "\n[output truncated]"
}
