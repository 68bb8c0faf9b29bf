package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavedocs/paver/internal/core/domain"
)

func requirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

const verifiableComponent = `# Greeter

## Purpose

Greets.

## Interface

CLI.

## Verification

` + "```bash" + `
$ echo hello world
` + "```" + `

` + "```" + `
hello world
` + "```" + `

## Examples

greeter hello
`

const failingComponent = `# Flaky

## Purpose

Fails.

## Interface

CLI.

## Verification

` + "```bash" + `
$ exit 7
` + "```" + `

## Examples

none yet
`

func TestVerifyPassingCommands(t *testing.T) {
	requirePOSIX(t)
	root := writeFixtureRepo(t, map[string]string{
		"docs/components/greeter.md": verifiableComponent,
	})

	out, err := runPaver(t, "-C", root, "verify")

	require.NoError(t, err)
	assert.Contains(t, out, "1 command, 0 failed")
	assert.Contains(t, out, "0 errors, 0 warnings, 0 notices")
}

func TestVerifyFailingCommand(t *testing.T) {
	requirePOSIX(t)
	root := writeFixtureRepo(t, map[string]string{
		"docs/components/flaky.md": failingComponent,
	})

	out, err := runPaver(t, "-C", root, "verify")

	require.ErrorIs(t, err, domain.ErrChecksFailed)
	assert.Contains(t, out, "command-failed")
	assert.Contains(t, out, "status 7")
}

func TestVerifyFailureStaysErrorUnderGradual(t *testing.T) {
	requirePOSIX(t)
	root := writeFixtureRepo(t, map[string]string{
		".pave.toml":               "[rules]\ngradual = true\n",
		"docs/components/flaky.md": failingComponent,
	})

	out, err := runPaver(t, "-C", root, "verify")

	// The broken command is still reported at error severity, but gradual
	// mode keeps the exit in the success class.
	require.NoError(t, err)
	assert.Contains(t, out, "error: docs/components/flaky.md")
}

func TestVerifyOutputMismatchWarns(t *testing.T) {
	requirePOSIX(t)
	root := writeFixtureRepo(t, map[string]string{
		"docs/components/greeter.md": `# Greeter

## Purpose

Greets.

## Interface

CLI.

## Verification

` + "```bash" + `
$ echo goodbye
` + "```" + `

` + "```" + `
hello world
` + "```" + `

## Examples

greeter
`,
	})

	out, err := runPaver(t, "-C", root, "verify")

	require.NoError(t, err)
	assert.Contains(t, out, "verification-mismatch")
	assert.Contains(t, out, "0 errors, 1 warning, 0 notices")
}

func TestVerifyWritesRunReport(t *testing.T) {
	requirePOSIX(t)
	root := writeFixtureRepo(t, map[string]string{
		"docs/components/greeter.md": verifiableComponent,
	})
	reportPath := filepath.Join(t.TempDir(), "report.json")

	_, err := runPaver(t, "-C", root, "verify", "--report", reportPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var report domain.VerifyReport
	require.NoError(t, json.Unmarshal(raw, &report))
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, domain.CommandPassed, report.Outcomes[0].Status)
	assert.Equal(t, "echo hello world", report.Outcomes[0].Command)
}

func TestVerifyTimeoutFlag(t *testing.T) {
	requirePOSIX(t)
	root := writeFixtureRepo(t, map[string]string{
		"docs/components/slow.md": `# Slow

## Purpose

Sleeps.

## Interface

CLI.

## Verification

` + "```bash" + `
$ sleep 5
` + "```" + `

## Examples

none
`,
	})

	out, err := runPaver(t, "-C", root, "verify", "--timeout", "200ms")

	require.ErrorIs(t, err, domain.ErrChecksFailed)
	assert.Contains(t, out, "command-timeout")
}
