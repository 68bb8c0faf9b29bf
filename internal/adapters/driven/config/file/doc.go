// Package file resolves and persists .pave.toml configuration. Resolution
// is a pure function of the file contents, the CLI overrides and the
// current timestamp; nothing reads the clock or environment afterwards.
package file
