// Package cli wires the engine components behind the paver command tree
// and maps run outcomes onto exit codes.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/logger"
)

// version is injected by Execute from the build-time value in main.
var version = "dev"

var (
	flagVerbose   bool
	flagDirectory string
)

var rootCmd = &cobra.Command{
	Use:   "paver",
	Short: "Enforce documentation conventions from the command line",
	Long: `Paver keeps a repository's documentation honest. It parses the docs
tree, enforces structural and type-specific rules, executes declared
verification commands, detects documentation left stale by code changes
and measures how much of the source tree documentation claims.

Configuration lives in .pave.toml at the repository root.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVarP(&flagDirectory, "directory", "C", ".", "run as if started in this directory")
}

// Execute runs the command tree and returns the process exit code: 0 when
// the run passed under the active policy, 1 when error diagnostics
// survived, 2 for usage or configuration problems, 130 on interrupt.
func Execute(v string) int {
	version = v

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrChecksFailed):
		// Diagnostics were already rendered.
		return 1
	case errors.Is(err, domain.ErrInterrupted), errors.Is(err, context.Canceled):
		logger.Error("interrupted")
		return 130
	default:
		logger.Error("%v", err)
		return 2
	}
}
