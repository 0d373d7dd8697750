package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/snipreview/internal/ui/pretty"
	"github.com/yaklabco/snipreview/pkg/runner"
)

// TextReporter formats results as styled terminal output, one block per snippet.
type TextReporter struct {
	opts     Options
	styles   *pretty.Styles
	bw       *bufio.Writer
	barWidth int
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:     opts,
		styles:   pretty.NewStyles(colorEnabled),
		bw:       bufio.NewWriterSize(opts.Writer, bufWriterSize),
		barWidth: pretty.BarWidthFor(pretty.TerminalWidth(opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No snippets to review."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		total += r.reportFile(&file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes every snippet review of one file and returns its issue count.
func (r *TextReporter) reportFile(file *runner.FileOutcome) int {
	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}
	if len(file.Snippets) == 0 {
		return 0
	}

	issues := 0
	for _, so := range file.Snippets {
		if so.Report != nil {
			issues += len(so.Report.Issues)
		}
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, issues))
	fmt.Fprintln(r.bw)

	for idx := range file.Snippets {
		r.reportSnippet(&file.Snippets[idx])
		fmt.Fprintln(r.bw)
	}

	return issues
}

func (r *TextReporter) reportSnippet(so *runner.SnippetOutcome) {
	if so.Error != nil || so.Report == nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(so.Snippet.ID),
			r.styles.Error.Render(fmt.Sprintf("error: %v", so.Error)),
		)
		return
	}

	report := so.Report
	fmt.Fprint(r.bw, r.styles.FormatSnippetHeader(&so.Snippet, report))

	for idx := range report.Issues {
		issue := &report.Issues[idx]
		fmt.Fprint(r.bw, r.styles.FormatIssue(issue, &so.Snippet, r.opts.ShowContext, r.opts.ruleLabel(issue.RuleID)))
	}

	if r.opts.ShowSuggestions && len(report.Suggestions) > 0 {
		fmt.Fprintln(r.bw, "  "+r.styles.Bold.Render("Suggestions"))
		for idx := range report.Suggestions {
			fmt.Fprint(r.bw, r.styles.FormatSuggestion(&report.Suggestions[idx]))
		}
	}

	if r.opts.ShowScores {
		fmt.Fprintln(r.bw, "  "+r.styles.Bold.Render("Scores"))
		fmt.Fprint(r.bw, r.styles.FormatScores(report.Scores, r.barWidth))
		fmt.Fprint(r.bw, r.styles.FormatMetrics(report.Metrics))
	}
}
