// Package matcher is the single glob-matching implementation shared by the
// change detector and the coverage calculator, so the two can never disagree
// on what "covered" means. Patterns use doublestar semantics: `**` matches
// any number of path segments, `*` matches within one segment.
package matcher

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match reports whether a declared pattern matches a repository-relative
// path. Both are normalised to forward slashes. Two conveniences beyond raw
// glob syntax, matching how patterns are written in documents and excludes:
//
//   - a pattern ending in "/" claims everything under that directory
//   - a pattern with no glob metacharacters claims the exact path or, if it
//     names a directory, everything under it
//
// Invalid patterns match nothing; syntax problems are surfaced separately
// through Validate.
func Match(pattern, path string) bool {
	pattern = normalise(pattern)
	path = normalise(path)
	if pattern == "" || path == "" {
		return false
	}

	if strings.HasSuffix(pattern, "/") {
		pattern += "**"
	}

	ok, err := doublestar.Match(pattern, path)
	if err != nil {
		return false
	}
	if ok {
		return true
	}

	// Bare directory names claim their subtree.
	if !hasGlobMeta(pattern) {
		return strings.HasPrefix(path, pattern+"/")
	}
	return false
}

// MatchAny reports whether any of the patterns matches the path.
func MatchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if Match(p, path) {
			return true
		}
	}
	return false
}

// Validate reports whether the pattern is syntactically valid glob.
func Validate(pattern string) bool {
	return doublestar.ValidatePattern(normalise(strings.TrimSuffix(pattern, "/")))
}

func normalise(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	p = strings.TrimPrefix(p, "./")
	return p
}

func hasGlobMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
