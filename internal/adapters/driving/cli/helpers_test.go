package cli

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// runPaver executes the command tree with args and returns the combined
// output. Flag state is restored afterwards so tests stay independent.
func runPaver(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(resetCommandState)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetCommandState returns every flag to its default, since package-level
// command vars carry values across executions.
func resetCommandState() {
	commands := []*cobra.Command{
		rootCmd, checkCmd, verifyCmd, changedCmd, coverageCmd,
		configGetCmd, configSetCmd, configListCmd, configPathCmd,
	}
	for _, c := range commands {
		c.Flags().VisitAll(resetFlag)
	}
	rootCmd.PersistentFlags().VisitAll(resetFlag)
}

// resetFlag restores one flag to its default. Slice flags need Replace:
// Set(DefValue) on a slice value appends the literal "[]" instead of
// clearing it.
func resetFlag(f *pflag.Flag) {
	if sv, ok := f.Value.(pflag.SliceValue); ok && f.DefValue == "[]" {
		_ = sv.Replace(nil)
	} else {
		_ = f.Value.Set(f.DefValue)
	}
	f.Changed = false
}

// writeFixtureRepo builds a repository layout from relative path -> content.
func writeFixtureRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// writeFile overwrites one file under root.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// initGitRepo turns root into a git repository with everything committed.
func initGitRepo(t *testing.T, root string) {
	t.Helper()
	gitRun(t, root, "init", "--quiet")
	gitRun(t, root, "config", "user.email", "dev@example.com")
	gitRun(t, root, "config", "user.name", "Dev")
	gitRun(t, root, "add", ".")
	gitRun(t, root, "commit", "--quiet", "-m", "initial")
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func init() {
	// Keep rendered output stable regardless of the test terminal.
	colourEnabled = func() bool { return false }
}
