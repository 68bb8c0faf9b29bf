// Package git implements the version-control collaborator on top of the
// git CLI. Diffing stays git's job; this adapter only shells out and parses.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/core/ports/driven"
	"github.com/pavedocs/paver/internal/logger"
)

// Ensure Git implements the interface.
var _ driven.VersionControl = (*Git)(nil)

// Git serves repository state by shelling out to the git binary.
type Git struct {
	root string
}

// Open locates the repository containing dir. Returns
// domain.ErrNotRepository when dir is not inside a git work tree.
func Open(ctx context.Context, dir string) (*Git, error) {
	out, err := runGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotRepository, dir)
	}
	root := filepath.FromSlash(strings.TrimSpace(out))
	logger.Debug("git repository root: %s", root)
	return &Git{root: root}, nil
}

// Root returns the absolute repository root.
func (g *Git) Root() string {
	return g.root
}

// ChangedFiles returns the paths that differ between base and the working
// tree, including untracked files, relative to the repository root.
func (g *Git) ChangedFiles(ctx context.Context, base string) ([]string, error) {
	raw, err := runGit(ctx, g.root, "diff", base, "--")
	if err != nil {
		return nil, fmt.Errorf("git diff %s: %w", base, err)
	}
	changed, err := parseDiffPaths(raw)
	if err != nil {
		return nil, fmt.Errorf("parse git diff output: %w", err)
	}

	untracked, err := runGit(ctx, g.root, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("git ls-files --others: %w", err)
	}

	seen := make(map[string]bool, len(changed))
	var files []string
	for _, path := range append(changed, splitLines(untracked)...) {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// TrackedFiles returns every path under version control, relative to the
// repository root with forward slashes.
func (g *Git) TrackedFiles(ctx context.Context) ([]string, error) {
	out, err := runGit(ctx, g.root, "ls-files")
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}
	return splitLines(out), nil
}

// parseDiffPaths extracts the touched paths from unified diff output.
// Renames and deletions report the old path; everything else the new one.
func parseDiffPaths(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	fds, err := diff.NewMultiFileDiffReader(strings.NewReader(raw)).ReadAllFiles()
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, fd := range fds {
		name := fd.NewName
		if name == "/dev/null" {
			name = fd.OrigName
		}
		paths = append(paths, stripDiffPrefix(name))
	}
	return paths, nil
}

// stripDiffPrefix removes git's a/ and b/ diff prefixes.
func stripDiffPrefix(name string) string {
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:]
	}
	return name
}

// runGit executes one git command in dir and returns its standard output.
// Stderr is folded into the error for diagnosis.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return stdout.String(), nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
