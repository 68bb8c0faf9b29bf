package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavedocs/paver/internal/adapters/driven/config/file"
	"github.com/pavedocs/paver/internal/adapters/driven/vcs/git"
	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/core/services"
)

var (
	changedFormat string
	changedBase   string
	changedStrict bool
)

var changedCmd = &cobra.Command{
	Use:   "changed",
	Short: "Show documents impacted by source changes",
	Long: `Compares the working tree against a base reference and maps changed
files through each document's declared Paths patterns. A document whose
mapped sources changed without the document changing alongside is stale.

With --strict, stale documents are errors and fail the run.`,
	Args: cobra.NoArgs,
	RunE: runChanged,
}

func init() {
	changedCmd.Flags().StringVar(&changedFormat, "format", "text", "output format: text, json or github")
	changedCmd.Flags().StringVar(&changedBase, "base", "HEAD", "version-control base reference")
	changedCmd.Flags().BoolVar(&changedStrict, "strict", false, "treat stale documents as errors")
	rootCmd.AddCommand(changedCmd)
}

func runChanged(cmd *cobra.Command, _ []string) error {
	format, err := parseFormat(changedFormat)
	if err != nil {
		return err
	}

	sess, err := loadSession(file.Overrides{Strict: changedStrict})
	if err != nil {
		return err
	}

	repo, err := git.Open(cmd.Context(), sess.cfg.RepoRoot)
	if err != nil {
		return err
	}

	detector := services.NewChangeDetector(sess.cfg, repo)
	changeSet, diags, err := detector.Detect(cmd.Context(), sess.docs, changedBase)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report := services.ResolveReport(append(sess.diags, diags...), sess.cfg)

	if format == formatJSON {
		if err := renderJSON(out, struct {
			*domain.ChangeSet
			Diagnostics []domain.Diagnostic `json:"diagnostics"`
		}{changeSet, report.Diagnostics}); err != nil {
			return err
		}
	} else {
		if format == formatText {
			for _, impact := range changeSet.Impacts {
				state := "impacted"
				if impact.Stale() {
					state = "stale"
				}
				fmt.Fprintf(out, "%s: %s (%s against %s)\n",
					state, impact.Document, plural(len(impact.MatchedPaths), "changed file"), changeSet.Base)
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
