package review

import "github.com/yaklabco/snipreview/pkg/config"

// IssueTemplate describes the issue a rule emits when it fires.
type IssueTemplate struct {
	Kind        config.Kind
	Title       string
	Description string
	Severity    config.Severity
	Category    config.Category
}

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override Apply.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id        string
	name      string
	desc      string
	languages []string
	issue     IssueTemplate
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, languages []string, issue IssueTemplate) BaseRule {
	return BaseRule{
		id:        id,
		name:      name,
		desc:      desc,
		languages: languages,
		issue:     issue,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Languages returns the language tags the rule applies to.
func (r *BaseRule) Languages() []string {
	return r.languages
}

// DefaultEnabled returns whether the rule is enabled by default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the severity of the issue template.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return r.issue.Severity
}

// Template returns the issue template of the rule.
func (r *BaseRule) Template() IssueTemplate {
	return r.issue
}

// NewIssue builds the rule's issue pointing at line, which may be nil.
func (r *BaseRule) NewIssue(line *int) Issue {
	return Issue{
		RuleID:      r.id,
		Kind:        r.issue.Kind,
		Title:       r.issue.Title,
		Description: r.issue.Description,
		Severity:    r.issue.Severity,
		Category:    r.issue.Category,
		Line:        line,
	}
}

// Apply must be overridden by concrete rule implementations.
func (r *BaseRule) Apply(_ *RuleContext) (Issue, bool) {
	return Issue{}, false
}

// BaseAdvisor provides the identity half of the Advisor interface.
type BaseAdvisor struct {
	id        string
	languages []string
}

// NewBaseAdvisor creates a BaseAdvisor.
func NewBaseAdvisor(id string, languages []string) BaseAdvisor {
	return BaseAdvisor{id: id, languages: languages}
}

// ID returns the unique identifier for this advisor.
func (a *BaseAdvisor) ID() string {
	return a.id
}

// Languages returns the language tags the advisor applies to.
func (a *BaseAdvisor) Languages() []string {
	return a.languages
}
