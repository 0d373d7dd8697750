package config

// FormatRuleID renders a rule for display. Without a name only the ID can be
// shown; an unset format behaves like RuleFormatName.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch {
	case ruleName == "", format == RuleFormatID:
		return ruleID
	case format == RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleName
	}
}

// IsValid reports whether f is name, id or combined.
func (f RuleFormat) IsValid() bool {
	return f == RuleFormatName || f == RuleFormatID || f == RuleFormatCombined
}
