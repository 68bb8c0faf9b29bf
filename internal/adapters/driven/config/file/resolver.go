package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/logger"
)

// ConfigFileName is the configuration file the resolver searches for.
const ConfigFileName = ".pave.toml"

// dateLayout is the gradual_until format.
const dateLayout = "2006-01-02"

// Overrides are the CLI flags that take precedence over file values.
// Gradual is a pointer because "not given" and an explicit false differ;
// the remaining flags only ever tighten behaviour, so their zero values
// mean "no override".
type Overrides struct {
	// Strict disables gradual mode and promotes stale-document reports
	// to errors. Wins over Gradual.
	Strict bool

	// Gradual forces gradual mode on or off for this invocation.
	Gradual *bool

	// CommandTimeout overrides the per-command timeout when positive.
	CommandTimeout time.Duration

	// KeepGoing continues verification past the first failing command.
	KeepGoing bool
}

// fileConfig mirrors the .pave.toml shape. Pointer fields distinguish an
// omitted key from an explicit zero value.
type fileConfig struct {
	Pave struct {
		Version *int `toml:"version"`
	} `toml:"pave"`
	Docs struct {
		Root *string `toml:"root"`
	} `toml:"docs"`
	Rules struct {
		MaxLines                    *int    `toml:"max_lines"`
		RequireVerification         *bool   `toml:"require_verification"`
		RequireExamples             *bool   `toml:"require_examples"`
		RequireVerificationCommands *bool   `toml:"require_verification_commands"`
		StrictOutputMatching        *bool   `toml:"strict_output_matching"`
		SkipOutputMatching          *bool   `toml:"skip_output_matching"`
		ValidatePaths               *bool   `toml:"validate_paths"`
		WarnEmptyPaths              *bool   `toml:"warn_empty_paths"`
		Gradual                     *bool   `toml:"gradual"`
		GradualUntil                *string `toml:"gradual_until"`
		CommandTimeoutSeconds       *int    `toml:"command_timeout_seconds"`
		TypeSpecific                struct {
			Components *bool `toml:"components"`
			Runbooks   *bool `toml:"runbooks"`
			ADRs       *bool `toml:"adrs"`
		} `toml:"type_specific"`
	} `toml:"rules"`
	Mapping struct {
		Exclude []string `toml:"exclude"`
	} `toml:"mapping"`
}

// Locate walks upward from startDir looking for the nearest .pave.toml.
// It returns the file path and true, or "" and false when no ancestor
// carries one.
func Locate(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Resolve builds the effective configuration for one invocation. Precedence
// is CLI overrides, then file values, then documented defaults. The
// directory containing the config file anchors relative paths; without a
// config file, startDir does. A configured gradual_until in the past clears
// gradual mode and surfaces a notice diagnostic.
//
// A present-but-malformed file, an unparseable gradual_until and a missing
// docs root are all domain.ErrConfig: misconfiguration aborts the run
// rather than silently checking the wrong tree.
func Resolve(startDir string, ov Overrides, now time.Time) (domain.Config, []domain.Diagnostic, error) {
	cfg := domain.DefaultConfig()

	root, err := filepath.Abs(startDir)
	if err != nil {
		return domain.Config{}, nil, fmt.Errorf("%w: resolve %s: %v", domain.ErrConfig, startDir, err)
	}

	var fc fileConfig
	if path, ok := Locate(startDir); ok {
		logger.Debug("using config file %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Config{}, nil, fmt.Errorf("%w: read %s: %v", domain.ErrConfig, path, err)
		}
		if err := toml.Unmarshal(data, &fc); err != nil {
			return domain.Config{}, nil, fmt.Errorf("%w: parse %s: %v", domain.ErrConfig, path, err)
		}
		root = filepath.Dir(path)
	} else {
		logger.Debug("no %s found above %s, using defaults", ConfigFileName, startDir)
	}
	cfg.RepoRoot = root

	applyFile(&cfg, fc)

	var diags []domain.Diagnostic
	if fc.Rules.GradualUntil != nil {
		until, err := time.Parse(dateLayout, *fc.Rules.GradualUntil)
		if err != nil {
			return domain.Config{}, nil, fmt.Errorf("%w: gradual_until %q is not a %s date",
				domain.ErrConfig, *fc.Rules.GradualUntil, dateLayout)
		}
		cfg.GradualUntil = until
		if cfg.Gradual && now.After(until.Add(24*time.Hour)) {
			cfg.Gradual = false
			diags = append(diags, domain.Diagnostic{
				Rule:     domain.RuleGradualExpired,
				Severity: domain.SeverityNotice,
				Message: fmt.Sprintf("gradual mode expired on %s; full enforcement is active",
					until.Format(dateLayout)),
			})
		}
	}

	applyOverrides(&cfg, ov)

	cfg.DocsRoot = filepath.Join(cfg.RepoRoot, filepath.FromSlash(cfg.DocsRoot))
	if info, err := os.Stat(cfg.DocsRoot); err != nil || !info.IsDir() {
		return domain.Config{}, nil, fmt.Errorf("%w: docs root %s does not exist", domain.ErrConfig, cfg.DocsRoot)
	}

	return cfg, diags, nil
}

// applyFile layers present file values over the defaults in cfg.
func applyFile(cfg *domain.Config, fc fileConfig) {
	if fc.Docs.Root != nil {
		cfg.DocsRoot = *fc.Docs.Root
	}
	if fc.Rules.MaxLines != nil {
		cfg.Rules.MaxLines = *fc.Rules.MaxLines
	}
	if fc.Rules.RequireVerification != nil {
		cfg.Rules.RequireVerification = *fc.Rules.RequireVerification
	}
	if fc.Rules.RequireExamples != nil {
		cfg.Rules.RequireExamples = *fc.Rules.RequireExamples
	}
	if fc.Rules.RequireVerificationCommands != nil {
		cfg.Rules.RequireVerificationCommands = *fc.Rules.RequireVerificationCommands
	}
	if fc.Rules.StrictOutputMatching != nil {
		cfg.Rules.StrictOutputMatching = *fc.Rules.StrictOutputMatching
	}
	if fc.Rules.SkipOutputMatching != nil {
		cfg.Rules.SkipOutputMatching = *fc.Rules.SkipOutputMatching
	}
	if fc.Rules.ValidatePaths != nil {
		cfg.Rules.ValidatePaths = *fc.Rules.ValidatePaths
	}
	if fc.Rules.WarnEmptyPaths != nil {
		cfg.Rules.WarnEmptyPaths = *fc.Rules.WarnEmptyPaths
	}
	if fc.Rules.Gradual != nil {
		cfg.Gradual = *fc.Rules.Gradual
	}
	if fc.Rules.CommandTimeoutSeconds != nil && *fc.Rules.CommandTimeoutSeconds > 0 {
		cfg.CommandTimeout = time.Duration(*fc.Rules.CommandTimeoutSeconds) * time.Second
	}
	if fc.Rules.TypeSpecific.Components != nil {
		cfg.TypeSpecific.Components = *fc.Rules.TypeSpecific.Components
	}
	if fc.Rules.TypeSpecific.Runbooks != nil {
		cfg.TypeSpecific.Runbooks = *fc.Rules.TypeSpecific.Runbooks
	}
	if fc.Rules.TypeSpecific.ADRs != nil {
		cfg.TypeSpecific.ADRs = *fc.Rules.TypeSpecific.ADRs
	}
	cfg.MappingExcludes = append(domain.BuiltinExcludes(), fc.Mapping.Exclude...)
}

// applyOverrides layers the CLI flags last. Strict wins over everything.
func applyOverrides(cfg *domain.Config, ov Overrides) {
	if ov.Gradual != nil {
		cfg.Gradual = *ov.Gradual
	}
	if ov.Strict {
		cfg.Strict = true
		cfg.Gradual = false
	}
	if ov.CommandTimeout > 0 {
		cfg.CommandTimeout = ov.CommandTimeout
	}
	if ov.KeepGoing {
		cfg.KeepGoing = true
	}
}
