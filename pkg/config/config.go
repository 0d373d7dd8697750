// Package config defines core configuration types for snipreview.
// These types are pure data structures with no dependency on the loader that fills them.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Severity represents how serious a review issue is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the position of the severity in the total order low < medium < high < critical.
// Unknown severities rank 0 so they never survive a filter.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// IsValid returns true if the severity is one of the known values.
func (s Severity) IsValid() bool {
	return s.Rank() > 0
}

// AtLeast reports whether s ranks at or above floor.
func (s Severity) AtLeast(floor Severity) bool {
	return s.Rank() >= floor.Rank()
}

// ParseSeverity parses a severity name case-insensitively.
// An empty string yields SeverityLow, which filters nothing.
func ParseSeverity(value string) (Severity, error) {
	if value == "" {
		return SeverityLow, nil
	}
	sev := Severity(strings.ToLower(strings.TrimSpace(value)))
	if !sev.IsValid() {
		return "", fmt.Errorf("unknown severity %q; valid severities: low, medium, high, critical", value)
	}
	return sev, nil
}

// Severities returns all severities in ascending rank order.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Kind classifies an issue for presentation and summary purposes.
type Kind string

const (
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Category groups issues by the concern they affect.
type Category string

const (
	CategoryBestPractices Category = "best-practices"
	CategoryPerformance   Category = "performance"
	CategorySecurity      Category = "security"
	CategoryErrorHandling Category = "error-handling"
	CategoryDocumentation Category = "documentation"
	CategoryComplexity    Category = "complexity"
)

// SuggestionCategory groups improvement suggestions.
type SuggestionCategory string

const (
	SuggestionModernization SuggestionCategory = "modernization"
	SuggestionPythonic      SuggestionCategory = "pythonic"
	SuggestionBestPractices SuggestionCategory = "best-practices"
	SuggestionPerformance   SuggestionCategory = "performance"
)

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Severity *string        `mapstructure:"severity" yaml:"severity,omitempty"`
	Options  map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

// OutputFormat specifies the output format for review reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "no-eval"
	RuleFormatID       RuleFormat = "id"       // "JS005"
	RuleFormatCombined RuleFormat = "combined" // "JS005/no-eval"
)

// Config is the root configuration structure for snipreview.
type Config struct {
	// MinSeverity drops issues ranked below it. Empty means "low".
	MinSeverity Severity `mapstructure:"min_severity" yaml:"min_severity,omitempty"`

	// SecurityScan enables the probabilistic security-vulnerability finding.
	SecurityScan bool `mapstructure:"security_scan" yaml:"security_scan,omitempty"`

	// Latency is the modeled analysis delay applied to each review.
	Latency time.Duration `mapstructure:"latency" yaml:"latency,omitempty"`

	// Seed pins the random source so reports are reproducible. Nil means a fresh seed per run.
	Seed *uint64 `mapstructure:"seed" yaml:"seed,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `mapstructure:"rules" yaml:"rules,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Language forces the language of every reviewed snippet.
	Language string `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `mapstructure:"-" yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MinSeverity: SeverityLow,
		Rules:       make(map[string]RuleConfig),
		Format:      FormatText,
		RuleFormat:  RuleFormatName,
		Jobs:        0, // 0 means use GOMAXPROCS
	}
}

// EffectiveMinSeverity returns MinSeverity, defaulting to low.
func (c *Config) EffectiveMinSeverity() Severity {
	if c == nil || c.MinSeverity == "" {
		return SeverityLow
	}
	return c.MinSeverity
}
