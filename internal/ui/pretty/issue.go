package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
	"github.com/yaklabco/snipreview/pkg/snippet"
)

// Indents used by the per-snippet layout.
const (
	issueIndent   = "  "
	detailIndent  = "    "
	contextIndent = "        "
)

// FormatKind returns a styled issue kind.
func (s *Styles) FormatKind(kind config.Kind) string {
	switch kind {
	case config.KindError:
		return s.Error.Render("error")
	case config.KindWarning:
		return s.Warning.Render("warning")
	case config.KindInfo:
		return s.Info.Render("info")
	default:
		return string(kind)
	}
}

// FormatSeverity returns a styled severity.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityCritical:
		return s.Critical.Render(string(sev))
	case config.SeverityHigh:
		return s.High.Render(string(sev))
	case config.SeverityMedium:
		return s.Medium.Render(string(sev))
	case config.SeverityLow:
		return s.Low.Render(string(sev))
	default:
		return string(sev)
	}
}

// IssueLocation renders "path:line" for an issue, or just the path when
// the issue is not tied to a line. Snippets with an unknown position fall
// back to the 1-based line within the snippet.
func IssueLocation(issue *review.Issue, snip *snippet.Snippet) string {
	if !issue.HasLine() {
		return snip.Path
	}
	line := snip.FileLine(*issue.Line)
	if line == 0 {
		line = *issue.Line + 1
	}
	return snip.Path + ":" + strconv.Itoa(line)
}

// FormatIssue formats a single issue for terminal output.
// ruleLabel is the rule identifier already rendered for the configured RuleFormat.
func (s *Styles) FormatIssue(issue *review.Issue, snip *snippet.Snippet, showContext bool, ruleLabel string) string {
	var builder strings.Builder

	// Main line: location  kind  title  [severity, category]  (rule)
	fmt.Fprintf(&builder, "%s%s  %s  %s  [%s, %s]  %s\n",
		issueIndent,
		s.Location.Render(IssueLocation(issue, snip)),
		s.FormatKind(issue.Kind),
		s.Message.Render(issue.Title),
		s.FormatSeverity(issue.Severity),
		s.Category.Render(string(issue.Category)),
		s.RuleID.Render("("+ruleLabel+")"),
	)

	if issue.Description != "" {
		builder.WriteString(detailIndent + s.Dim.Render(issue.Description) + "\n")
	}

	if showContext && issue.HasLine() {
		if line, ok := sourceLine(snip.Source, *issue.Line); ok {
			builder.WriteString(s.FormatSourceContext(line))
		}
	}

	return builder.String()
}

// sourceLine returns the zero-based index-th line of source.
func sourceLine(source string, index int) (string, bool) {
	if index < 0 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if index >= len(lines) {
		return "", false
	}
	return lines[index], true
}

// FormatSourceContext formats the source line with a caret under its first
// non-blank character.
func (s *Styles) FormatSourceContext(line string) string {
	var builder strings.Builder

	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return builder.String()
	}
	column := len(line) - len(trimmed)
	builder.WriteString(contextIndent + line[:column] + s.Caret.Render("^") + "\n")

	return builder.String()
}

// FormatSuggestion formats an improvement suggestion with its example.
func (s *Styles) FormatSuggestion(sug *review.Suggestion) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%s%s %s  %s\n",
		issueIndent,
		s.Suggestion.Render("*"),
		s.Suggestion.Render(sug.Title),
		s.Category.Render("("+string(sug.Category)+")"),
	)
	if sug.Description != "" {
		builder.WriteString(detailIndent + sug.Description + "\n")
	}
	if sug.Example != "" {
		for line := range strings.SplitSeq(sug.Example, "\n") {
			builder.WriteString(contextIndent + s.Example.Render(line) + "\n")
		}
	}

	return builder.String()
}

// FormatSnippetHeader formats the heading printed above a snippet's review.
func (s *Styles) FormatSnippetHeader(snip *snippet.Snippet, report *review.Report) string {
	header := s.FilePath.Render(snip.ID)
	details := report.Language
	if snip.StartLine > 0 {
		details += fmt.Sprintf(", line %d", snip.StartLine)
	}
	header += s.Dim.Render(" (" + details + ")")
	return header + "\n" + issueIndent + s.Bold.Render(report.Summary) + "\n"
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
