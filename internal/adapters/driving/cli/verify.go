package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pavedocs/paver/internal/adapters/driven/config/file"
	"github.com/pavedocs/paver/internal/adapters/driven/exec/shell"
	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/core/services"
)

var (
	verifyFormat     string
	verifyTimeout    time.Duration
	verifyKeepGoing  bool
	verifyReportPath string
	verifyStrict     bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [paths...]",
	Short: "Execute the verification commands declared in documentation",
	Long: `Runs every command declared in Verification sections and compares
captured output against declared expectations. Commands within one document
run in order; independent documents run concurrently.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFormat, "format", "text", "output format: text, json or github")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 0, "per-command timeout (overrides configuration)")
	verifyCmd.Flags().BoolVar(&verifyKeepGoing, "keep-going", false, "continue a document's commands past the first failure")
	verifyCmd.Flags().StringVar(&verifyReportPath, "report", "", "write a JSON run report to this path")
	verifyCmd.Flags().BoolVar(&verifyStrict, "strict", false, "disable gradual mode")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(verifyFormat)
	if err != nil {
		return err
	}

	sess, err := loadSession(file.Overrides{
		Strict:         verifyStrict,
		CommandTimeout: verifyTimeout,
		KeepGoing:      verifyKeepGoing,
	})
	if err != nil {
		return err
	}
	docs := sess.selectDocs(args)

	verifier := services.NewVerifier(sess.cfg, shell.New())
	runReport, diags, err := verifier.Verify(cmd.Context(), docs)
	if err != nil {
		if errors.Is(err, context.Canceled) || cmd.Context().Err() != nil {
			return domain.ErrInterrupted
		}
		return err
	}

	if verifyReportPath != "" {
		if err := writeRunReport(verifyReportPath, runReport); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if format == formatText {
		fmt.Fprintf(out, "run %s: %s, %d failed\n",
			runReport.RunID, plural(len(runReport.Outcomes), "command"), runReport.Failed())
	}

	report := services.ResolveReport(append(sess.diags, diags...), sess.cfg)
	if err := renderReport(out, format, report); err != nil {
		return err
	}
	if services.Failed(report, sess.cfg) {
		return domain.ErrChecksFailed
	}
	return nil
}

// writeRunReport persists the verification run report as indented JSON.
func writeRunReport(path string, report *domain.VerifyReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}
