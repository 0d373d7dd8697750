package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/langdetect"
	"github.com/yaklabco/snipreview/pkg/review"
)

// ValidationError describes one bad configuration value.
type ValidationError struct {
	// Field is the dotted key of the value, e.g. "rules.JS005.severity".
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.FilePath, e.Field} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult collects fatal errors and advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// HasWarnings reports whether any warnings were found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages renders errors then warnings, one line each.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

var outputFormats = []config.OutputFormat{
	config.FormatText, config.FormatJSON, config.FormatSARIF, config.FormatSummary,
}

const (
	severityChoices   = "low, medium, high, critical"
	formatChoices     = "text, json, sarif, summary"
	ruleFormatChoices = "name, id, combined"
)

// Validate checks cfg against review.DefaultRegistry.
func Validate(cfg *config.Config) *ValidationResult {
	return validateAgainst(cfg, review.DefaultRegistry)
}

func validateAgainst(cfg *config.Config, registry *review.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.MinSeverity != "" && !cfg.MinSeverity.IsValid() {
		result.fail("min_severity", cfg.MinSeverity,
			"invalid severity %q; must be one of: %s", cfg.MinSeverity, severityChoices)
	}
	if cfg.Latency < 0 {
		result.fail("latency", cfg.Latency, "latency must not be negative")
	}
	if cfg.Format != "" && !slices.Contains(outputFormats, cfg.Format) {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: %s", cfg.Format, formatChoices)
	}
	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.fail("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: %s", cfg.RuleFormat, ruleFormatChoices)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Language != "" && !langdetect.HasRules(cfg.Language) {
		result.warn("language", cfg.Language,
			"no rules target language %q; only generic checks will run", cfg.Language)
	}

	for key, ruleCfg := range cfg.Rules {
		if registry != nil {
			if _, exists := registry.Get(key); !exists {
				result.warn("rules."+key, key, "unknown rule %q; it will be ignored", key)
			}
		}
		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.fail("rules."+key+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: %s", *ruleCfg.Severity, severityChoices)
		}
	}

	for i, pattern := range cfg.Ignore {
		// Match against "" only surfaces syntax errors.
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

// ValidateWithFile runs Validate and stamps filePath on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
