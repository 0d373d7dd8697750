package review

import "github.com/yaklabco/snipreview/pkg/config"

// FilterBySeverity returns the issues ranked at or above floor, preserving order.
// The input slice is not modified.
func FilterBySeverity(issues []Issue, floor config.Severity) []Issue {
	kept := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity.AtLeast(floor) {
			kept = append(kept, issue)
		}
	}
	return kept
}
