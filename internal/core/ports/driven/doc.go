// Package driven defines the interfaces the engine depends on: the
// version-control collaborator that supplies diffs and file listings, and
// the subprocess runner that executes verification commands. Adapters under
// internal/adapters/driven implement them.
package driven
