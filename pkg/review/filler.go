package review

import "github.com/yaklabco/snipreview/pkg/config"

// Reserved rule IDs for issues the engine synthesizes itself.
const (
	ComplexityFillerID = "complexity-filler"
	SecurityScanID     = "security-scan"
)

const (
	maxComplexityIssues = 2
	securityScanChance  = 0.3
)

// complexityFiller appends between 0 and 2 "Complex code section" issues on random lines.
func complexityFiller(lineCount int, r Rand) []Issue {
	count := drawN(r, maxComplexityIssues+1)
	issues := make([]Issue, 0, count)
	for range count {
		line := drawN(r, lineCount)
		issues = append(issues, Issue{
			RuleID:      ComplexityFillerID,
			Kind:        config.KindInfo,
			Title:       "Complex code section",
			Description: "This section has high cyclomatic complexity. Consider breaking it down into smaller functions.",
			Severity:    config.SeverityMedium,
			Category:    config.CategoryComplexity,
			Line:        &line,
		})
	}
	return issues
}

// securityScan returns the probabilistic security finding, if it fires.
func securityScan(lineCount int, r Rand) (Issue, bool) {
	if r.Float64() >= securityScanChance {
		return Issue{}, false
	}
	line := drawN(r, lineCount)
	return Issue{
		RuleID:      SecurityScanID,
		Kind:        config.KindError,
		Title:       "Potential security vulnerability",
		Description: "Input validation may be insufficient. Validate and sanitize all user input before use.",
		Severity:    config.SeverityHigh,
		Category:    config.CategorySecurity,
		Line:        &line,
	}, true
}
