package review

import "github.com/yaklabco/snipreview/pkg/config"

// Rule defines the interface that all review rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "JS005").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// Languages returns the language tags the rule applies to.
	// An empty slice means the rule applies to every language.
	Languages() []string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Apply evaluates the rule against the snippet.
	// It returns the issue and true when the rule fires, or false otherwise.
	// A rule contributes at most one issue per snippet.
	Apply(ctx *RuleContext) (Issue, bool)
}

// Advisor produces an improvement suggestion for a snippet.
// Advisors run independently of rules and of the issues they find.
type Advisor interface {
	// ID returns the unique identifier for this advisor (e.g., "SUG-JS-MODERN").
	ID() string

	// Languages returns the language tags the advisor applies to.
	// An empty slice means every language.
	Languages() []string

	// Advise returns a suggestion and true when the advisor has something to say.
	Advise(ctx *RuleContext) (Suggestion, bool)
}

// appliesTo reports whether a language set accepts the given language.
func appliesTo(languages []string, language string) bool {
	if len(languages) == 0 {
		return true
	}
	for _, lang := range languages {
		if lang == language {
			return true
		}
	}
	return false
}
