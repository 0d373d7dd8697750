package review

import (
	"fmt"

	"github.com/yaklabco/snipreview/pkg/config"
)

// Summarize synthesizes the one-line report summary from the filtered issues.
func Summarize(issues []Issue) string {
	total := len(issues)
	if total == 0 {
		return "No significant issues found. Great job!"
	}

	errs := countIssues(issues, func(i *Issue) bool { return i.Kind == config.KindError })
	if errs > 0 {
		return fmt.Sprintf("Found %d issues (%d critical). Please address critical issues before proceeding.", total, errs)
	}

	warnings := countIssues(issues, func(i *Issue) bool { return i.Kind == config.KindWarning })
	if warnings > 0 {
		return fmt.Sprintf("Found %d issues (%d warnings). Consider addressing these warnings to improve code quality.", total, warnings)
	}

	return fmt.Sprintf("Found %d suggestions to enhance your code.", total)
}
