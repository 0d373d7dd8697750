package review

import (
	"maps"

	"github.com/yaklabco/snipreview/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for issues from this rule.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules, in registration order.
//
// Rule keys in cfg (Rules, EnableRules, DisableRules) may be IDs, names or aliases.
// Unknown keys are ignored here; the config validator warns about them.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var (
		ruleCfgs = make(map[string]config.RuleConfig)
		enabled  = make(map[string]bool)
		disabled = make(map[string]bool)
	)

	if cfg != nil {
		for key, rc := range cfg.Rules {
			if id, _, ok := registry.Resolve(key); ok {
				ruleCfgs[id] = mergeRuleConfig(ruleCfgs[id], rc, key == id)
			}
		}
		for _, key := range cfg.EnableRules {
			if id, _, ok := registry.Resolve(key); ok {
				enabled[id] = true
			}
		}
		for _, key := range cfg.DisableRules {
			if id, _, ok := registry.Resolve(key); ok {
				disabled[id] = true
			}
		}
	}

	var resolved []ResolvedRule
	for _, rule := range registry.Rules() {
		rr := ResolvedRule{
			Rule:     rule,
			Enabled:  rule.DefaultEnabled(),
			Severity: rule.DefaultSeverity(),
		}

		if rc, ok := ruleCfgs[rule.ID()]; ok {
			rr.Config = &rc
			if rc.Enabled != nil {
				rr.Enabled = *rc.Enabled
			}
			if rc.Severity != nil {
				if sev, err := config.ParseSeverity(*rc.Severity); err == nil {
					rr.Severity = sev
				}
			}
		}

		// Command-line selection wins over file configuration.
		if enabled[rule.ID()] {
			rr.Enabled = true
		}
		if disabled[rule.ID()] {
			rr.Enabled = false
		}

		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// mergeRuleConfig combines two entries that resolve to the same rule.
// Fields keyed by the canonical ID take precedence over those keyed by name or alias.
func mergeRuleConfig(existing, incoming config.RuleConfig, canonical bool) config.RuleConfig {
	base, over := existing, incoming
	if !canonical {
		base, over = incoming, existing
	}

	if over.Enabled != nil {
		base.Enabled = over.Enabled
	}
	if over.Severity != nil {
		base.Severity = over.Severity
	}
	if len(over.Options) > 0 {
		opts := make(map[string]any, len(base.Options)+len(over.Options))
		maps.Copy(opts, base.Options)
		maps.Copy(opts, over.Options)
		base.Options = opts
	}
	return base
}
