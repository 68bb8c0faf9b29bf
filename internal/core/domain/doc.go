// Package domain contains the core business entities for paver: parsed
// documents, rules, diagnostics, change sets, coverage reports and the
// resolved configuration.
//
// Everything in this package is pure data. I/O (filesystem walking, git,
// subprocess execution) lives behind the driven ports and their adapters.
package domain
