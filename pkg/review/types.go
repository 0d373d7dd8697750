package review

import (
	"time"

	"github.com/yaklabco/snipreview/pkg/config"
)

// Options are the per-invocation review switches echoed back on the Report.
type Options struct {
	// SecurityScan enables the probabilistic security-vulnerability finding.
	SecurityScan bool `json:"securityScan"`

	// MinSeverity drops issues ranked below it. Empty means low.
	MinSeverity config.Severity `json:"minSeverity,omitempty"`
}

// Input is a single snippet submitted for review.
type Input struct {
	// Source is the code to analyze. It may be empty.
	Source string

	// Language is the snippet's language tag. Empty means javascript.
	Language string

	// Options configures this invocation.
	Options Options
}

// Issue is a single rule violation found in the reviewed source.
type Issue struct {
	// RuleID identifies the rule that produced the issue.
	RuleID string `json:"ruleId"`

	Kind        config.Kind     `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Severity    config.Severity `json:"severity"`
	Category    config.Category `json:"category"`

	// Line is the zero-based index of the line that triggered the issue,
	// or nil when the issue is not tied to a line.
	Line *int `json:"line"`
}

// HasLine reports whether the issue points at a specific line.
func (i *Issue) HasLine() bool {
	return i.Line != nil
}

// Suggestion is an improvement recommendation not tied to a specific violation.
type Suggestion struct {
	AdvisorID   string                    `json:"advisorId"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Category    config.SuggestionCategory `json:"category"`
	Example     string                    `json:"example,omitempty"`
}

// ScoreSet holds the four 0-100 quality indicators of a report.
type ScoreSet struct {
	Quality         int `json:"quality"`
	Security        int `json:"security"`
	Performance     int `json:"performance"`
	Maintainability int `json:"maintainability"`
}

// Metrics holds size and complexity figures for the reviewed source.
// The complexity values are placeholders for a real static-analysis pass
// and are drawn from the engine's Rand.
type Metrics struct {
	LineCount            int `json:"linesOfCode"`
	CodeSizeBytes        int `json:"codeSize"`
	CyclomaticComplexity int `json:"cyclomaticComplexity"`
	CognitiveComplexity  int `json:"cognitiveComplexity"`
}

// Report is the complete output of one review invocation.
// A Report is never modified after Review returns it.
type Report struct {
	ID          string       `json:"id"`
	Summary     string       `json:"summary"`
	Language    string       `json:"language"`
	Issues      []Issue      `json:"issues"`
	Suggestions []Suggestion `json:"suggestions"`
	Scores      ScoreSet     `json:"scores"`
	Metrics     Metrics      `json:"metrics"`
	Options     Options      `json:"options"`
	ProducedAt  time.Time    `json:"timestamp"`
}

// CountByKind returns the number of issues of the given kind.
func (r *Report) CountByKind(kind config.Kind) int {
	return countIssues(r.Issues, func(i *Issue) bool { return i.Kind == kind })
}

// CountByCategory returns the number of issues in the given category.
func (r *Report) CountByCategory(category config.Category) int {
	return countIssues(r.Issues, func(i *Issue) bool { return i.Category == category })
}

// HasIssues returns true if any issue survived filtering.
func (r *Report) HasIssues() bool {
	return len(r.Issues) > 0
}

func countIssues(issues []Issue, match func(*Issue) bool) int {
	n := 0
	for idx := range issues {
		if match(&issues[idx]) {
			n++
		}
	}
	return n
}
