package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/snipreview/pkg/analysis"
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes the offending source line under each issue.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// ShowSuggestions lists each snippet's improvement suggestions.
	ShowSuggestions bool

	// ShowScores draws score bars and metrics for each snippet.
	ShowScores bool

	// Compact uses minified output where applicable.
	Compact bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// RuleName maps a rule ID to its name; see RuleNames.
	RuleName func(ruleID string) string

	// SortBy orders the summary tables.
	SortBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string

	// ToolVersion is reported in SARIF output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:          os.Stdout,
		ErrorWriter:     os.Stderr,
		Format:          FormatText,
		Color:           "auto",
		ShowContext:     true,
		ShowSummary:     true,
		ShowSuggestions: true,
		ShowScores:      true,
		RuleFormat:      config.RuleFormatName,
		RuleName:        RuleNames(review.DefaultRegistry),
		SortBy:          analysis.SortByCount,
	}
}

// RuleNames returns a lookup of rule names in registry.
// Unknown IDs, such as the random filler findings, map to "".
func RuleNames(registry *review.Registry) func(string) string {
	return func(ruleID string) string {
		if registry == nil {
			return ""
		}
		rule, ok := registry.Get(ruleID)
		if !ok {
			return ""
		}
		return rule.Name()
	}
}

// ruleLabel renders a rule identifier in the configured format.
func (o *Options) ruleLabel(ruleID string) string {
	var name string
	if o.RuleName != nil {
		name = o.RuleName(ruleID)
	}
	return config.FormatRuleID(o.RuleFormat, ruleID, name)
}

// analysisOptions derives the analysis options used by table renderers.
func (o *Options) analysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.RuleFormat = o.RuleFormat
	opts.RuleName = o.RuleName
	opts.WorkingDir = o.WorkingDir
	if o.SortBy.IsValid() {
		opts.SortBy = o.SortBy
	}
	return opts
}
