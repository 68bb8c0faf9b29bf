package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ConfigFileName)
}

func TestOpenStoreMissingFileStartsEmpty(t *testing.T) {
	s, err := OpenStore(storePath(t))

	require.NoError(t, err)
	assert.Empty(t, s.List())
}

func TestStoreSetAndGet(t *testing.T) {
	s, err := OpenStore(storePath(t))
	require.NoError(t, err)

	require.NoError(t, s.Set("rules.max_lines", int64(500)))
	require.NoError(t, s.Set("docs.root", "documentation"))

	val, ok := s.Get("rules.max_lines")
	require.True(t, ok)
	assert.Equal(t, int64(500), val)

	val, ok = s.Get("docs.root")
	require.True(t, ok)
	assert.Equal(t, "documentation", val)

	_, ok = s.Get("rules.unknown")
	assert.False(t, ok)
}

func TestStoreSetPersistsNestedTables(t *testing.T) {
	path := storePath(t)

	s, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("rules.type_specific.adrs", false))

	reloaded, err := OpenStore(path)
	require.NoError(t, err)

	val, ok := reloaded.Get("rules.type_specific.adrs")
	require.True(t, ok)
	assert.Equal(t, false, val)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[rules.type_specific]")
	assert.Contains(t, string(raw), "adrs = false")
}

func TestStoreListAndKeys(t *testing.T) {
	s, err := OpenStore(storePath(t))
	require.NoError(t, err)

	require.NoError(t, s.Set("rules.max_lines", int64(300)))
	require.NoError(t, s.Set("rules.gradual", true))
	require.NoError(t, s.Set("docs.root", "docs"))

	assert.Equal(t, []string{"docs.root", "rules.gradual", "rules.max_lines"}, s.Keys())
	assert.Len(t, s.List(), 3)
}

func TestStoreRoundTripsExistingFile(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte("[rules]\nmax_lines = 250\n"), 0o644))

	s, err := OpenStore(path)
	require.NoError(t, err)

	val, ok := s.Get("rules.max_lines")
	require.True(t, ok)
	assert.Equal(t, int64(250), val)

	require.NoError(t, s.Set("rules.gradual", true))

	reloaded, err := OpenStore(path)
	require.NoError(t, err)
	val, ok = reloaded.Get("rules.max_lines")
	require.True(t, ok)
	assert.Equal(t, int64(250), val)
}
