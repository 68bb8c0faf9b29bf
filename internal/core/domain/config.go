package domain

import "time"

// DefaultMaxLines is the document line budget when max_lines is omitted.
const DefaultMaxLines = 300

// DefaultCommandTimeout is the per-command timeout when none is configured.
const DefaultCommandTimeout = 30 * time.Second

// DefaultDocsRoot is the documentation tree root when docs.root is omitted.
const DefaultDocsRoot = "docs"

// BuiltinExcludes are always unioned with user-configured mapping excludes.
func BuiltinExcludes() []string {
	return []string{"target/", "node_modules/", "dist/", "__pycache__/", ".git/"}
}

// RulesConfig holds per-rule toggles and thresholds from [rules].
type RulesConfig struct {
	// MaxLines is the per-document line budget.
	MaxLines int

	// RequireVerification requires a Verification section.
	RequireVerification bool

	// RequireExamples requires an Examples section.
	RequireExamples bool

	// RequireVerificationCommands requires the Verification section to
	// declare at least one executable command.
	RequireVerificationCommands bool

	// StrictOutputMatching makes an output mismatch an error instead of
	// a warning.
	StrictOutputMatching bool

	// SkipOutputMatching disables output comparison entirely; only exit
	// status is checked.
	SkipOutputMatching bool

	// ValidatePaths enables glob syntax validation of Paths patterns.
	ValidatePaths bool

	// WarnEmptyPaths warns when a Paths pattern matches no file.
	WarnEmptyPaths bool
}

// TypeSpecificConfig toggles type-specific section requirements per
// document type, from [rules.type_specific].
type TypeSpecificConfig struct {
	Components bool
	Runbooks   bool
	ADRs       bool
}

// Enabled returns whether type-specific rules run for documents of type t.
// Unclassified documents are always exempt.
func (c TypeSpecificConfig) Enabled(t DocType) bool {
	switch t {
	case DocTypeComponent:
		return c.Components
	case DocTypeRunbook:
		return c.Runbooks
	case DocTypeADR:
		return c.ADRs
	default:
		return false
	}
}

// Config is the fully resolved, immutable configuration for one invocation.
// It is constructed once by the resolver as a pure function of (file
// contents, CLI overrides, current timestamp) and passed explicitly to every
// component; nothing reads the clock or environment after resolution.
type Config struct {
	// RepoRoot is the absolute repository root.
	RepoRoot string

	// DocsRoot is the absolute documentation tree root.
	DocsRoot string

	// Rules holds the per-rule toggles and thresholds.
	Rules RulesConfig

	// TypeSpecific toggles type-specific requirements.
	TypeSpecific TypeSpecificConfig

	// MappingExcludes are the merged built-in and user exclude globs used
	// by the coverage calculator.
	MappingExcludes []string

	// Gradual is the effective gradual-mode state after expiry and CLI
	// overrides. When true, rule-violation errors are reported as
	// warnings and the exit code is forced to the success class.
	Gradual bool

	// GradualUntil is the configured expiry date, zero if none.
	GradualUntil time.Time

	// Strict records the --strict override. It wins over Gradual and
	// promotes stale-document reports to errors.
	Strict bool

	// CommandTimeout is the per-verification-command timeout.
	CommandTimeout time.Duration

	// KeepGoing continues verification past the first failing command.
	KeepGoing bool
}

// DefaultRulesConfig returns the documented defaults for [rules].
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		MaxLines:                    DefaultMaxLines,
		RequireVerification:         true,
		RequireExamples:             true,
		RequireVerificationCommands: true,
		StrictOutputMatching:        false,
		SkipOutputMatching:          false,
		ValidatePaths:               true,
		WarnEmptyPaths:              true,
	}
}

// DefaultConfig returns a Config with documented defaults for every field.
// RepoRoot and DocsRoot remain to be anchored by the resolver.
func DefaultConfig() Config {
	return Config{
		DocsRoot:        DefaultDocsRoot,
		Rules:           DefaultRulesConfig(),
		TypeSpecific:    TypeSpecificConfig{Components: true, Runbooks: true, ADRs: true},
		MappingExcludes: BuiltinExcludes(),
		CommandTimeout:  DefaultCommandTimeout,
	}
}
