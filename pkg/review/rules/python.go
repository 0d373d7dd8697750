package rules

import (
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
)

// substringRule fires when a fixed substring appears and points at its first line.
type substringRule struct {
	review.BaseRule
	needle string
}

func newSubstringRule(needle string, base review.BaseRule) *substringRule {
	return &substringRule{BaseRule: base, needle: needle}
}

// Apply reports the first line containing the rule's substring.
func (r *substringRule) Apply(ctx *review.RuleContext) (review.Issue, bool) {
	if !ctx.Contains(r.needle) {
		return review.Issue{}, false
	}
	return r.NewIssue(ctx.FirstLineContaining(r.needle)), true
}

// NewPrintStatementsRule creates the print-statements rule.
func NewPrintStatementsRule() review.Rule {
	return newSubstringRule("print(", review.NewBaseRule(
		"PY001",
		"print-statements",
		"print() calls should not be left in published code",
		pythonLanguages,
		review.IssueTemplate{
			Kind:        config.KindInfo,
			Title:       "Print statements found",
			Description: "Use the logging module instead of print() for diagnostic output.",
			Severity:    config.SeverityLow,
			Category:    config.CategoryBestPractices,
		},
	))
}

// NewBareExceptRule creates the bare-except rule.
func NewBareExceptRule() review.Rule {
	return newSubstringRule("except:", review.NewBaseRule(
		"PY002",
		"bare-except",
		"except clauses should name the exceptions they handle",
		pythonLanguages,
		review.IssueTemplate{
			Kind:        config.KindWarning,
			Title:       "Bare except clause",
			Description: "A bare except also catches SystemExit and KeyboardInterrupt. Catch specific exceptions instead.",
			Severity:    config.SeverityMedium,
			Category:    config.CategoryErrorHandling,
		},
	))
}

// NewNoneComparisonRule creates the none-comparison rule.
func NewNoneComparisonRule() review.Rule {
	return newSubstringRule("== None", review.NewBaseRule(
		"PY003",
		"none-comparison",
		"Comparisons to None should use is",
		pythonLanguages,
		review.IssueTemplate{
			Kind:        config.KindWarning,
			Title:       "Compare with is None",
			Description: "Use `is None` or `is not None` when comparing to None.",
			Severity:    config.SeverityLow,
			Category:    config.CategoryBestPractices,
		},
	))
}
