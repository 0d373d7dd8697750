package analysis

import (
	"time"

	"github.com/yaklabco/snipreview/pkg/review"
)

// Report contains pre-computed views of review results.
// Computed once by Analyze(), used by the summary and SARIF renderers.
type Report struct {
	// Issues is the flat list for detailed output.
	Issues []IssueEntry `json:"issues,omitempty"`

	// ByFile groups issues by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups issues by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// ByLanguage groups snippets and issues by snippet language.
	ByLanguage []LanguageAnalysis `json:"byLanguage,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// IssueEntry is a single issue placed in its file.
type IssueEntry struct {
	FilePath    string `json:"filePath"`
	SnippetID   string `json:"snippetId"`
	Language    string `json:"language"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Kind        string `json:"type"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Line is the 1-based line in the file, 0 when the issue has no line
	// or the snippet position is unknown.
	Line int `json:"line,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	Snippets        int `json:"snippetsReviewed"`
	SnippetsErrored int `json:"snippetsErrored"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Critical        int `json:"critical"`
	High            int `json:"high"`
	Medium          int `json:"medium"`
	Low             int `json:"low"`

	// MeanScores averages each score over the reviewed snippets.
	MeanScores review.ScoreSet `json:"meanScores"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any error-kind issues.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Snippets int      `json:"snippets"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Title    string   `json:"title"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Files    []string `json:"files,omitempty"`
}

// LanguageAnalysis contains aggregated data for one snippet language.
type LanguageAnalysis struct {
	Language string `json:"language"`
	Snippets int    `json:"snippets"`
	Issues   int    `json:"issues"`

	// MeanQuality is the average quality score of the language's snippets.
	MeanQuality int `json:"meanQuality"`
}
