// Package scanner narrows a repository file listing to the source paths in
// scope for coverage accounting.
package scanner

import "github.com/pavedocs/paver/internal/matcher"

// Options control scope filtering.
type Options struct {
	// Excludes removes matching paths; the resolved config supplies the
	// built-in and user mapping excludes here.
	Excludes []string

	// Include, when non-empty, restricts scope to matching paths.
	Include []string

	// RuntimeExcludes removes matching paths for this invocation only.
	RuntimeExcludes []string
}

// Filter returns the paths that survive exclude and include filtering,
// preserving input order.
func Filter(paths []string, opts Options) []string {
	var scope []string
	for _, path := range paths {
		if matcher.MatchAny(opts.Excludes, path) {
			continue
		}
		if matcher.MatchAny(opts.RuntimeExcludes, path) {
			continue
		}
		if len(opts.Include) > 0 && !matcher.MatchAny(opts.Include, path) {
			continue
		}
		scope = append(scope, path)
	}
	return scope
}
