package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/snipreview/pkg/analysis"
	"github.com/yaklabco/snipreview/pkg/review"
	"github.com/yaklabco/snipreview/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult holds the reviews of one file.
type JSONFileResult struct {
	Path     string        `json:"path"`
	Snippets []JSONSnippet `json:"snippets"`
	Error    string        `json:"error,omitempty"`
}

// JSONSnippet is one reviewed snippet with its full report.
type JSONSnippet struct {
	ID        string         `json:"id"`
	Index     int            `json:"index"`
	Language  string         `json:"language"`
	StartLine int            `json:"startLine,omitempty"`
	Cached    bool           `json:"cached,omitempty"`
	Report    *review.Report `json:"report,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked     int             `json:"filesChecked"`
	FilesWithIssues  int             `json:"filesWithIssues"`
	FilesErrored     int             `json:"filesErrored"`
	SnippetsReviewed int             `json:"snippetsReviewed"`
	SnippetsCached   int             `json:"snippetsCached"`
	SnippetsErrored  int             `json:"snippetsErrored"`
	TotalIssues      int             `json:"totalIssues"`
	BySeverity       map[string]int  `json:"bySeverity"`
	ByKind           map[string]int  `json:"byKind"`
	MeanScores       review.ScoreSet `json:"meanScores"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: analysis.ReportVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
			ByKind:     make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     file.Path,
			Snippets: make([]JSONSnippet, 0, len(file.Snippets)),
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		for _, so := range file.Snippets {
			entry := JSONSnippet{
				ID:        so.Snippet.ID,
				Index:     so.Snippet.Index,
				Language:  so.Snippet.Language,
				StartLine: so.Snippet.StartLine,
				Cached:    so.Cached,
				Report:    so.Report,
			}
			if so.Error != nil {
				entry.Error = so.Error.Error()
			}
			fileResult.Snippets = append(fileResult.Snippets, entry)
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesChecked = stats.FilesProcessed
	output.Summary.FilesWithIssues = stats.FilesWithIssues
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.SnippetsReviewed = stats.SnippetsReviewed
	output.Summary.SnippetsCached = stats.SnippetsCached
	output.Summary.SnippetsErrored = stats.SnippetsErrored
	output.Summary.TotalIssues = stats.IssuesTotal
	output.Summary.MeanScores = stats.MeanScores
	for sev, n := range stats.IssuesBySeverity {
		output.Summary.BySeverity[string(sev)] = n
	}
	for kind, n := range stats.IssuesByKind {
		output.Summary.ByKind[string(kind)] = n
	}

	return output
}
