package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/runner"
)

const summaryDividerWidth = 40

// plural returns word with an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "7 issues (1 error, 4 warnings, 2 info) in 1 file, 3 snippets reviewed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.IssuesTotal == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s reviewed in %d %s)",
				stats.SnippetsReviewed, plural(stats.SnippetsReviewed, "snippet"),
				stats.FilesProcessed, plural(stats.FilesProcessed, "file"))) + "\n"
	}

	var kindParts []string
	if n := stats.IssuesByKind[config.KindError]; n > 0 {
		kindParts = append(kindParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error"))))
	}
	if n := stats.IssuesByKind[config.KindWarning]; n > 0 {
		kindParts = append(kindParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning"))))
	}
	if n := stats.IssuesByKind[config.KindInfo]; n > 0 {
		kindParts = append(kindParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	line := fmt.Sprintf("%d %s", stats.IssuesTotal, plural(stats.IssuesTotal, "issue"))
	if len(kindParts) > 0 {
		line += " (" + strings.Join(kindParts, ", ") + ")"
	}
	line += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file"))
	line += fmt.Sprintf(", %d %s reviewed", stats.SnippetsReviewed, plural(stats.SnippetsReviewed, "snippet"))

	if stats.SnippetsCached > 0 {
		line += s.Dim.Render(fmt.Sprintf(", %d cached", stats.SnippetsCached))
	}

	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label, value string) {
		fmt.Fprintf(&builder, "  %-20s %s\n", label+":", value)
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesErrored > 0 {
		row("Files unreadable", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Snippets reviewed", s.SummaryValue.Render(strconv.Itoa(stats.SnippetsReviewed)))
	if stats.SnippetsErrored > 0 {
		row("Snippets failed", s.Failure.Render(strconv.Itoa(stats.SnippetsErrored)))
	}

	builder.WriteString("\n")
	row("Total issues", s.SummaryValue.Render(strconv.Itoa(stats.IssuesTotal)))
	if n := stats.IssuesByKind[config.KindError]; n > 0 {
		row("  Errors", s.Error.Render(strconv.Itoa(n)))
	}
	if n := stats.IssuesByKind[config.KindWarning]; n > 0 {
		row("  Warnings", s.Warning.Render(strconv.Itoa(n)))
	}
	if n := stats.IssuesByKind[config.KindInfo]; n > 0 {
		row("  Info", s.Info.Render(strconv.Itoa(n)))
	}

	// Severity breakdown, highest first.
	sevs := config.Severities()
	for i := len(sevs) - 1; i >= 0; i-- {
		if n := stats.IssuesBySeverity[sevs[i]]; n > 0 {
			row("  "+capitalize(string(sevs[i])), s.FormatSeverity(sevs[i])+" "+strconv.Itoa(n))
		}
	}

	if stats.SnippetsReviewed > 0 {
		builder.WriteString("\n")
		row("Mean quality", strconv.Itoa(stats.MeanScores.Quality))
		row("Mean security", strconv.Itoa(stats.MeanScores.Security))
		row("Mean performance", strconv.Itoa(stats.MeanScores.Performance))
		row("Mean maintainability", strconv.Itoa(stats.MeanScores.Maintainability))
	}

	builder.WriteString("\n")

	switch {
	case stats.IssuesByKind[config.KindError] > 0:
		builder.WriteString(s.Failure.Render("Review found errors"))
	case stats.IssuesByKind[config.KindWarning] > 0:
		builder.WriteString(s.Warning.Render("Review completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Review passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
