package rules

import (
	"regexp"
	"strings"

	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
)

// ConsoleStatementsRule flags leftover console.log calls.
type ConsoleStatementsRule struct {
	review.BaseRule
}

// NewConsoleStatementsRule creates a new console-statements rule.
func NewConsoleStatementsRule() *ConsoleStatementsRule {
	return &ConsoleStatementsRule{
		BaseRule: review.NewBaseRule(
			"JS001",
			"console-statements",
			"console.log calls should not be left in published code",
			scriptLanguages,
			review.IssueTemplate{
				Kind:        config.KindWarning,
				Title:       "Console statements found",
				Description: "Remove console.log statements before shipping or replace them with a proper logger.",
				Severity:    config.SeverityMedium,
				Category:    config.CategoryBestPractices,
			},
		),
	}
}

// Apply reports the first line containing console.log.
func (r *ConsoleStatementsRule) Apply(ctx *review.RuleContext) (review.Issue, bool) {
	if !ctx.Contains("console.log") {
		return review.Issue{}, false
	}
	return r.NewIssue(ctx.FirstLineContaining("console.log")), true
}

// EffectCleanupRule flags React effects that never return a cleanup function.
type EffectCleanupRule struct {
	review.BaseRule
}

// NewEffectCleanupRule creates a new effect-cleanup rule.
func NewEffectCleanupRule() *EffectCleanupRule {
	return &EffectCleanupRule{
		BaseRule: review.NewBaseRule(
			"JS002",
			"effect-cleanup",
			"useEffect hooks should return a cleanup function",
			scriptLanguages,
			review.IssueTemplate{
				Kind:        config.KindWarning,
				Title:       "Potential memory leak",
				Description: "useEffect subscribes without returning a cleanup function. Return a function that releases listeners, timers and subscriptions.",
				Severity:    config.SeverityHigh,
				Category:    config.CategoryPerformance,
			},
		),
	}
}

// Apply fires when useEffect is present and "return" appears nowhere in the snippet.
func (r *EffectCleanupRule) Apply(ctx *review.RuleContext) (review.Issue, bool) {
	if !ctx.Contains("useEffect") || ctx.Contains("return") {
		return review.Issue{}, false
	}
	return r.NewIssue(ctx.FirstLineContaining("useEffect")), true
}

// endpointPattern matches placeholder and local API endpoints.
var endpointPattern = regexp.MustCompile(`api\.example\.com|http://localhost`)

// HardcodedEndpointRule flags endpoints that should come from configuration.
type HardcodedEndpointRule struct {
	review.BaseRule
}

// NewHardcodedEndpointRule creates a new hardcoded-endpoint rule.
func NewHardcodedEndpointRule() *HardcodedEndpointRule {
	return &HardcodedEndpointRule{
		BaseRule: review.NewBaseRule(
			"JS003",
			"hardcoded-endpoint",
			"API endpoints should not be hardcoded",
			scriptLanguages,
			review.IssueTemplate{
				Kind:        config.KindInfo,
				Title:       "Hardcoded endpoint",
				Description: "Move API endpoints into configuration or environment variables.",
				Severity:    config.SeverityLow,
				Category:    config.CategorySecurity,
			},
		),
	}
}

// Apply reports the first line mentioning a hardcoded endpoint.
//
// Options:
//   - endpoints: literal substrings to look for instead of the built-in pattern
func (r *HardcodedEndpointRule) Apply(ctx *review.RuleContext) (review.Issue, bool) {
	endpoints := ctx.OptionStringSlice("endpoints", nil)
	if len(endpoints) == 0 {
		if !endpointPattern.MatchString(ctx.Source) {
			return review.Issue{}, false
		}
		return r.NewIssue(ctx.FirstLineMatching(endpointPattern)), true
	}

	for idx, line := range ctx.Lines {
		for _, endpoint := range endpoints {
			if endpoint != "" && strings.Contains(line, endpoint) {
				return r.NewIssue(&idx), true
			}
		}
	}
	return review.Issue{}, false
}

// looseEqualityPattern finds a == not preceded by = or ! and not followed by =.
// A == at the very start or end of a line is not matched per line, but the
// whole-source check still fires when the next character is a newline, so
// such an issue carries no line.
var looseEqualityPattern = regexp.MustCompile(`[^=!]==[^=]`)

// LooseEqualityRule flags == comparisons.
type LooseEqualityRule struct {
	review.BaseRule
}

// NewLooseEqualityRule creates a new loose-equality rule.
func NewLooseEqualityRule() *LooseEqualityRule {
	return &LooseEqualityRule{
		BaseRule: review.NewBaseRule(
			"JS004",
			"loose-equality",
			"Comparisons should use === instead of ==",
			scriptLanguages,
			review.IssueTemplate{
				Kind:        config.KindWarning,
				Title:       "Loose equality",
				Description: "Use === and !== to avoid implicit type coercion.",
				Severity:    config.SeverityMedium,
				Category:    config.CategoryBestPractices,
			},
		),
	}
}

// Apply reports the first line with a loose equality comparison.
func (r *LooseEqualityRule) Apply(ctx *review.RuleContext) (review.Issue, bool) {
	if !looseEqualityPattern.MatchString(ctx.Source) {
		return review.Issue{}, false
	}
	return r.NewIssue(ctx.FirstLineMatching(looseEqualityPattern)), true
}

// NoEvalRule flags eval calls.
type NoEvalRule struct {
	review.BaseRule
}

// NewNoEvalRule creates a new no-eval rule.
func NewNoEvalRule() *NoEvalRule {
	return &NoEvalRule{
		BaseRule: review.NewBaseRule(
			"JS005",
			"no-eval",
			"eval() must not be used",
			scriptLanguages,
			review.IssueTemplate{
				Kind:        config.KindError,
				Title:       "Unsafe eval() usage",
				Description: "eval() executes arbitrary strings as code and enables injection attacks. Parse data with JSON.parse or restructure the logic.",
				Severity:    config.SeverityCritical,
				Category:    config.CategorySecurity,
			},
		),
	}
}

// Apply reports the first line containing eval(.
func (r *NoEvalRule) Apply(ctx *review.RuleContext) (review.Issue, bool) {
	if !ctx.Contains("eval(") {
		return review.Issue{}, false
	}
	return r.NewIssue(ctx.FirstLineContaining("eval(")), true
}
