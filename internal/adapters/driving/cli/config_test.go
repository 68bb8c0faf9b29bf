package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSetAndGet(t *testing.T) {
	root := t.TempDir()

	out, err := runPaver(t, "-C", root, "config", "set", "rules.max_lines", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "rules.max_lines = 500")

	out, err = runPaver(t, "-C", root, "config", "get", "rules.max_lines")
	require.NoError(t, err)
	assert.Contains(t, out, "500")
}

func TestConfigGetUnknownKey(t *testing.T) {
	root := t.TempDir()

	_, err := runPaver(t, "-C", root, "config", "get", "rules.unknown")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestConfigSetParsesValueTypes(t *testing.T) {
	root := t.TempDir()

	_, err := runPaver(t, "-C", root, "config", "set", "rules.gradual", "true")
	require.NoError(t, err)
	_, err = runPaver(t, "-C", root, "config", "set", "docs.root", "documentation")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(root, ".pave.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "gradual = true")
	assert.Contains(t, string(raw), "root = 'documentation'")
}

func TestConfigList(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".pave.toml"),
		[]byte("[rules]\nmax_lines = 250\ngradual = true\n"), 0o644))

	out, err := runPaver(t, "-C", root, "config", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "rules.gradual = true")
	assert.Contains(t, out, "rules.max_lines = 250")
}

func TestConfigPath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".pave.toml"), []byte(""), 0o644))

	out, err := runPaver(t, "-C", root, "config", "path")

	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, ".pave.toml"))
}

func TestParseConfigValue(t *testing.T) {
	assert.Equal(t, true, parseConfigValue("true"))
	assert.Equal(t, false, parseConfigValue("false"))
	assert.Equal(t, int64(42), parseConfigValue("42"))
	assert.Equal(t, "docs", parseConfigValue("docs"))
}
