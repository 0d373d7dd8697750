package review

import (
	"context"
	"regexp"
	"strings"

	"github.com/yaklabco/snipreview/pkg/config"
)

// RuleContext provides everything a rule or advisor needs to inspect a snippet.
//
// RuleContext stores context.Context as a field rather than taking it as a method
// parameter. It is a short-lived parameter object created per rule invocation.
type RuleContext struct {
	// Ctx is the context of the review invocation.
	Ctx context.Context

	// Source is the full snippet text.
	Source string

	// Lines is Source split on "\n". An empty source has a single empty line.
	Lines []string

	// Language is the normalized language tag of the snippet.
	Language string

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig
}

// NewRuleContext creates a RuleContext for the given snippet.
func NewRuleContext(ctx context.Context, source, language string, ruleCfg *config.RuleConfig) *RuleContext {
	return &RuleContext{
		Ctx:        ctx,
		Source:     source,
		Lines:      strings.Split(source, "\n"),
		Language:   language,
		RuleConfig: ruleCfg,
	}
}

// withRuleConfig returns a shallow copy bound to a different rule configuration.
// The Lines slice is shared and must not be mutated by rules.
func (rc *RuleContext) withRuleConfig(ruleCfg *config.RuleConfig) *RuleContext {
	clone := *rc
	clone.RuleConfig = ruleCfg
	return &clone
}

// Contains reports whether the source contains substr anywhere.
func (rc *RuleContext) Contains(substr string) bool {
	return strings.Contains(rc.Source, substr)
}

// FirstLineContaining returns the zero-based index of the first line containing substr,
// or nil if no single line contains it.
func (rc *RuleContext) FirstLineContaining(substr string) *int {
	for idx, line := range rc.Lines {
		if strings.Contains(line, substr) {
			return &idx
		}
	}
	return nil
}

// FirstLineMatching returns the zero-based index of the first line matching re,
// or nil if no line matches.
func (rc *RuleContext) FirstLineMatching(re *regexp.Regexp) *int {
	for idx, line := range rc.Lines {
		if re.MatchString(line) {
			return &idx
		}
	}
	return nil
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	if b, ok := rc.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Handle []any from YAML parsing
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
