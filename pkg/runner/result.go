package runner

import (
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
	"github.com/yaklabco/snipreview/pkg/snippet"
)

// SnippetOutcome is the review of a single snippet.
type SnippetOutcome struct {
	Snippet snippet.Snippet

	// Report is nil if the review failed.
	Report *review.Report

	// Cached is true when Report was served from the runner's cache.
	Cached bool

	// Error is set if the snippet could not be reviewed.
	Error error
}

// FileOutcome holds the reviews of every snippet in one file.
type FileOutcome struct {
	// Path is the file that was processed ("-" for standard input).
	Path string

	// Snippets are in file order.
	Snippets []SnippetOutcome

	// Error is set if the file could not be read or split into snippets.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one issue.
	FilesWithIssues int

	// SnippetsReviewed is the number of snippets with a report.
	SnippetsReviewed int

	// SnippetsCached is how many of those reports came from the cache.
	SnippetsCached int

	// SnippetsErrored is the number of snippets whose review failed.
	SnippetsErrored int

	// IssuesTotal is the number of issues across all reports.
	IssuesTotal int

	// IssuesBySeverity maps severities to counts.
	IssuesBySeverity map[config.Severity]int

	// IssuesByKind maps kinds to counts.
	IssuesByKind map[config.Kind]int

	// MeanScores averages each score over all reviewed snippets.
	MeanScores review.ScoreSet

	scoreSum review.ScoreSet
}

// Result is the overall runner result.
type Result struct {
	// Files are in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasErrors reports whether any error-kind issue was found.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesByKind[config.KindError] > 0
}

// HasWarnings reports whether any warning-kind issue was found.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesByKind[config.KindWarning] > 0
}

// HasIssues reports whether any issue was found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesTotal > 0
}

// Reports returns every successful report in file and snippet order.
func (r *Result) Reports() []*review.Report {
	var reports []*review.Report
	for _, file := range r.Files {
		for _, so := range file.Snippets {
			if so.Report != nil {
				reports = append(reports, so.Report)
			}
		}
	}
	return reports
}

func newStats() Stats {
	return Stats{
		IssuesBySeverity: make(map[config.Severity]int),
		IssuesByKind:     make(map[config.Kind]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	r.Stats.FilesProcessed++

	fileIssues := 0
	for _, so := range outcome.Snippets {
		if so.Error != nil || so.Report == nil {
			r.Stats.SnippetsErrored++
			continue
		}

		r.Stats.SnippetsReviewed++
		if so.Cached {
			r.Stats.SnippetsCached++
		}

		for _, issue := range so.Report.Issues {
			r.Stats.IssuesBySeverity[issue.Severity]++
			r.Stats.IssuesByKind[issue.Kind]++
		}
		fileIssues += len(so.Report.Issues)

		r.Stats.scoreSum.Quality += so.Report.Scores.Quality
		r.Stats.scoreSum.Security += so.Report.Scores.Security
		r.Stats.scoreSum.Performance += so.Report.Scores.Performance
		r.Stats.scoreSum.Maintainability += so.Report.Scores.Maintainability
	}

	r.Stats.IssuesTotal += fileIssues
	if fileIssues > 0 {
		r.Stats.FilesWithIssues++
	}
}

// finish computes derived statistics once all outcomes are accumulated.
func (r *Result) finish() {
	n := r.Stats.SnippetsReviewed
	if n == 0 {
		return
	}
	r.Stats.MeanScores = review.ScoreSet{
		Quality:         r.Stats.scoreSum.Quality / n,
		Security:        r.Stats.scoreSum.Security / n,
		Performance:     r.Stats.scoreSum.Performance / n,
		Maintainability: r.Stats.scoreSum.Maintainability / n,
	}
}
