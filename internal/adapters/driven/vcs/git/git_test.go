package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/src/auth/login.go b/src/auth/login.go
index 1111111..2222222 100644
--- a/src/auth/login.go
+++ b/src/auth/login.go
@@ -1,3 +1,4 @@
 package auth
+
 func Login() {}
diff --git a/src/auth/legacy.go b/src/auth/legacy.go
deleted file mode 100644
index 3333333..0000000
--- a/src/auth/legacy.go
+++ /dev/null
@@ -1,2 +0,0 @@
-package auth
-func Legacy() {}
diff --git a/docs/components/auth.md b/docs/components/auth.md
index 4444444..5555555 100644
--- a/docs/components/auth.md
+++ b/docs/components/auth.md
@@ -1 +1,2 @@
 # Auth Service
+Updated.
`

func TestParseDiffPaths(t *testing.T) {
	paths, err := parseDiffPaths(sampleDiff)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/auth/login.go",
		"src/auth/legacy.go",
		"docs/components/auth.md",
	}, paths)
}

func TestParseDiffPathsEmpty(t *testing.T) {
	paths, err := parseDiffPaths("")

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestStripDiffPrefix(t *testing.T) {
	assert.Equal(t, "src/main.go", stripDiffPrefix("b/src/main.go"))
	assert.Equal(t, "src/main.go", stripDiffPrefix("a/src/main.go"))
	assert.Equal(t, "src/main.go", stripDiffPrefix("src/main.go"))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a.go", "b.go"}, splitLines("a.go\nb.go\n"))
	assert.Empty(t, splitLines("\n\n"))
}
