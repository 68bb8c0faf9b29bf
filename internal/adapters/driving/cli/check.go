package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/pavedocs/paver/internal/adapters/driven/config/file"
	"github.com/pavedocs/paver/internal/adapters/driven/vcs/git"
	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/core/services"
	"github.com/pavedocs/paver/internal/logger"
)

var (
	checkFormat  string
	checkStrict  bool
	checkGradual bool
	checkChanged bool
	checkBase    string
	checkWatch   bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check documentation against the configured rules",
	Long: `Parses the documentation tree and applies the structural and
type-specific rules from .pave.toml. With path arguments, only the named
documents (or directories of documents) are checked.

With --changed, the check is narrowed to documents impacted by source
changes against --base, and impacted documents not updated alongside their
sources are reported as stale.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "output format: text, json or github")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "disable gradual mode and promote stale documents to errors")
	checkCmd.Flags().BoolVar(&checkGradual, "gradual", false, "force gradual mode for this run")
	checkCmd.Flags().BoolVar(&checkChanged, "changed", false, "restrict the check to documents impacted by source changes")
	checkCmd.Flags().StringVar(&checkBase, "base", "HEAD", "version-control base reference for --changed")
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "re-run the check when the docs tree changes")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(checkFormat)
	if err != nil {
		return err
	}

	ov := file.Overrides{Strict: checkStrict}
	if cmd.Flags().Changed("gradual") {
		ov.Gradual = &checkGradual
	}

	if checkWatch {
		return watchChecks(cmd, args, ov, format)
	}
	return checkOnce(cmd.Context(), cmd.OutOrStdout(), args, ov, format)
}

// checkOnce runs one full check pass and renders the report.
func checkOnce(ctx context.Context, w io.Writer, args []string, ov file.Overrides, format outputFormat) error {
	sess, err := loadSession(ov)
	if err != nil {
		return err
	}
	docs := sess.selectDocs(args)
	diags := sess.diags

	var checkerOpts []services.CheckerOption
	repo, repoErr := git.Open(ctx, sess.cfg.RepoRoot)
	if repoErr == nil {
		if files, err := repo.TrackedFiles(ctx); err == nil {
			checkerOpts = append(checkerOpts, services.WithRepositoryFiles(files))
		}
	} else {
		logger.Debug("empty-pattern warnings disabled: %v", repoErr)
	}

	// --changed narrows the run to documents impacted by the change set
	// before any rule logic fires.
	if checkChanged {
		if repoErr != nil {
			return repoErr
		}
		detector := services.NewChangeDetector(sess.cfg, repo)
		changeSet, changeDiags, err := detector.Detect(ctx, docs, checkBase)
		if err != nil {
			return err
		}
		impacted := make(map[string]bool, len(changeSet.Impacts))
		for _, impact := range changeSet.Impacts {
			impacted[impact.Document] = true
		}
		// A document edited in the change set is in scope even when no
		// mapped source of its own changed.
		for _, file := range changeSet.Files {
			impacted[file.Path] = true
		}
		narrowed := docs[:0:0]
		for _, doc := range docs {
			if impacted[doc.Path] {
				narrowed = append(narrowed, doc)
			}
		}
		docs = narrowed
		diags = append(diags, changeDiags...)
	}

	checker := services.NewChecker(sess.cfg, checkerOpts...)
	diags = append(diags, checker.Check(ctx, docs)...)

	if err := ctx.Err(); err != nil {
		return domain.ErrInterrupted
	}

	report := services.ResolveReport(diags, sess.cfg)
	if err := renderReport(w, format, report); err != nil {
		return err
	}
	if services.Failed(report, sess.cfg) {
		return domain.ErrChecksFailed
	}
	return nil
}
