package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavedocs/paver/internal/adapters/driven/config/file"
	"github.com/pavedocs/paver/internal/adapters/driven/vcs/git"
	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/core/ports/driving"
	"github.com/pavedocs/paver/internal/core/services"
)

var (
	coverageFormat    string
	coverageThreshold float64
	coverageInclude   []string
	coverageExclude   []string
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Measure how much of the source tree documentation claims",
	Long: `Computes the fraction of in-scope source files matched by at least
one document's Paths patterns. With --threshold, a ratio below the given
percentage fails the run.`,
	Args: cobra.NoArgs,
	RunE: runCoverage,
}

func init() {
	coverageCmd.Flags().StringVar(&coverageFormat, "format", "text", "output format: text, json or github")
	coverageCmd.Flags().Float64Var(&coverageThreshold, "threshold", -1, "minimum coverage percentage; negative disables")
	coverageCmd.Flags().StringSliceVar(&coverageInclude, "include", nil, "restrict scope to matching globs")
	coverageCmd.Flags().StringSliceVar(&coverageExclude, "exclude", nil, "drop matching globs from scope")
	rootCmd.AddCommand(coverageCmd)
}

func runCoverage(cmd *cobra.Command, _ []string) error {
	format, err := parseFormat(coverageFormat)
	if err != nil {
		return err
	}

	sess, err := loadSession(file.Overrides{})
	if err != nil {
		return err
	}

	repo, err := git.Open(cmd.Context(), sess.cfg.RepoRoot)
	if err != nil {
		return err
	}

	calculator := services.NewCoverageCalculator(sess.cfg, repo)
	coverage, diags, err := calculator.Calculate(cmd.Context(), sess.docs, driving.CoverageOptions{
		Include:   coverageInclude,
		Exclude:   coverageExclude,
		Threshold: coverageThreshold,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report := services.ResolveReport(append(sess.diags, diags...), sess.cfg)

	if format == formatJSON {
		if err := renderJSON(out, struct {
			*domain.CoverageReport
			Ratio       float64             `json:"ratio"`
			Diagnostics []domain.Diagnostic `json:"diagnostics"`
		}{coverage, coverage.Ratio(), report.Diagnostics}); err != nil {
			return err
		}
	} else {
		if format == formatText {
			fmt.Fprintf(out, "coverage: %.1f%% (%d of %d files claimed)\n",
				coverage.Ratio(), coverage.Covered, coverage.Total)
			for _, path := range coverage.Uncovered {
				fmt.Fprintf(out, "uncovered: %s\n", path)
			}
		}
		if err := renderReport(out, format, report); err != nil {
			return err
		}
	}

	if services.Failed(report, sess.cfg) {
		return domain.ErrChecksFailed
	}
	return nil
}
