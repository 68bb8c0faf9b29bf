package driven

import "context"

// VersionControl supplies repository state to the engine. The engine never
// implements diffing itself; it asks this collaborator and maps the results
// through document path patterns.
type VersionControl interface {
	// Root returns the absolute repository root.
	Root() string

	// ChangedFiles returns the paths that differ between base and the
	// current working tree, relative to the repository root, including
	// untracked files. Returns domain.ErrNotRepository outside a
	// repository.
	ChangedFiles(ctx context.Context, base string) ([]string, error)

	// TrackedFiles returns every path under version control, relative to
	// the repository root. The coverage calculator treats this as the
	// universe of source paths before exclude filtering.
	TrackedFiles(ctx context.Context) ([]string, error)
}
