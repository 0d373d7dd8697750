package rules

import (
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
)

// MissingCommentsRule flags snippets without any // or /* comment.
// The check ignores the snippet language, so a Python snippet with only # comments still fires.
type MissingCommentsRule struct {
	review.BaseRule
}

// NewMissingCommentsRule creates a new missing-comments rule.
func NewMissingCommentsRule() *MissingCommentsRule {
	return &MissingCommentsRule{
		BaseRule: review.NewBaseRule(
			"GEN001",
			"missing-comments",
			"Snippets should contain explanatory comments",
			allLanguages,
			review.IssueTemplate{
				Kind:        config.KindInfo,
				Title:       "Missing comments",
				Description: "Add comments that explain intent so readers can follow the snippet.",
				Severity:    config.SeverityLow,
				Category:    config.CategoryDocumentation,
			},
		),
	}
}

// Apply fires when neither // nor /* occurs anywhere. The issue has no line.
func (r *MissingCommentsRule) Apply(ctx *review.RuleContext) (review.Issue, bool) {
	if ctx.Contains("//") || ctx.Contains("/*") {
		return review.Issue{}, false
	}
	return r.NewIssue(nil), true
}
