// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/yaklabco/snipreview/internal/logging"
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry resolves rule keys. Defaults to review.DefaultRegistry.
	Registry *review.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (SNIPREVIEW_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.snipreview.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/snipreview/config.yaml)
//  6. System config (/etc/snipreview/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = review.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	sources := []struct {
		label   string
		path    string
		skipped bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, src := range sources {
		if src.skipped || src.path == "" {
			continue
		}

		fileCfg, err := loadConfigFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.label, err)
		}
		logger.Debug("loaded config", logging.FieldConfig, src.label, logging.FieldPath, src.path)

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, src.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Accept rule names like "no-eval" in config files.
	normalizeRuleKeys(cfg, registry, result)

	validation := validateAgainst(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	return cfg, nil
}

// normalizeRuleKeys rewrites rule names and aliases to canonical IDs.
// When a rule is configured under several keys, the entry keyed by the
// canonical ID wins; otherwise the alphabetically last key wins.
func normalizeRuleKeys(cfg *config.Config, registry *review.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 || registry == nil {
		return
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seenIDs := make(map[string]string) // canonical ID -> original key

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]

		canonicalID, _, found := registry.Resolve(key)
		if !found {
			// Validation warns about unknown keys.
			normalized[key] = ruleCfg
			continue
		}

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s",
					originalKey, key, canonicalID))
			if originalKey == canonicalID {
				continue
			}
		}

		seenIDs[canonicalID] = key
		normalized[canonicalID] = ruleCfg
	}

	cfg.Rules = normalized
}
