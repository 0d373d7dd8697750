package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/snipreview/internal/ui/pretty"
	"github.com/yaklabco/snipreview/pkg/analysis"
	"github.com/yaklabco/snipreview/pkg/config"
)

// Table layout constants for summary output.
// All tables share one width for visual consistency.
const (
	tableWidth        = 90
	ruleColWidth      = 36
	fileColWidth      = 52
	langColWidth      = 16
	numColWidth       = 9
	maxRuleNameLength = 34
	maxFilePathLength = 50
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Snippets == 0 && report.Totals.SnippetsErrored == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No snippets reviewed"))
		return nil
	}

	r.renderLanguageTable(report.ByLanguage)

	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
	} else {
		fmt.Fprintln(r.out)
		r.renderRuleTable(report.ByRule)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) separator() {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) header(first string, firstWidth int, columns ...string) {
	cells := []string{r.styles.TableHeader.Render(padRight(first, firstWidth))}
	for _, col := range columns {
		cells = append(cells, r.styles.TableHeader.Render(padLeft(col, numColWidth)))
	}
	fmt.Fprintln(r.out, strings.Join(cells, " "))
}

func (r *SummaryRenderer) row(styledFirst string, values ...int) {
	cells := []string{styledFirst}
	for _, v := range values {
		cells = append(cells, padLeft(strconv.Itoa(v), numColWidth))
	}
	fmt.Fprintln(r.out, strings.Join(cells, " "))
}

// styleByKind colors a padded cell by the worst kind it counts.
func (r *SummaryRenderer) styleByKind(padded string, errors, warnings int) string {
	switch {
	case errors > 0:
		return r.styles.TableErrorRow.Render(padded)
	case warnings > 0:
		return r.styles.TableWarnRow.Render(padded)
	default:
		return padded
	}
}

func (r *SummaryRenderer) renderLanguageTable(langs []analysis.LanguageAnalysis) {
	if len(langs) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Languages"))
	r.separator()
	r.header("Language", langColWidth, "Snippets", "Issues", "Quality")
	r.separator()

	for _, lang := range langs {
		r.row(padRight(lang.Language, langColWidth), lang.Snippets, lang.Issues, lang.MeanQuality)
	}
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	r.separator()
	r.header("Rule", ruleColWidth, "Count", "Errors", "Warnings", "Info")
	r.separator()

	for _, rule := range rules {
		label := config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName)
		if rule.RuleName == "" && rule.Title != "" {
			label = rule.Title
		}
		if len(label) > maxRuleNameLength {
			label = label[:maxRuleNameLength] + "…"
		}

		r.row(r.styleByKind(padRight(label, ruleColWidth), rule.Errors, rule.Warnings),
			rule.Issues, rule.Errors, rule.Warnings, rule.Infos)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	r.separator()
	r.header("File", fileColWidth, "Snippets", "Count", "Errors")
	r.separator()

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		r.row(r.styleByKind(padRight(path, fileColWidth), file.Errors, file.Warnings),
			file.Snippets, file.Issues, file.Errors)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	issueWord := "issues"
	if totals.Issues == 1 {
		issueWord = "issue"
	}
	line := fmt.Sprintf("%d %s", totals.Issues, issueWord)

	var kindParts []string
	if totals.Errors > 0 {
		kindParts = append(kindParts, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		kindParts = append(kindParts, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if totals.Infos > 0 {
		kindParts = append(kindParts, r.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}
	if len(kindParts) > 0 {
		line += " (" + strings.Join(kindParts, ", ") + ")"
	}

	snippetWord := "snippets"
	if totals.Snippets == 1 {
		snippetWord = "snippet"
	}
	line += fmt.Sprintf(" in %d %s", totals.Snippets, snippetWord)

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)

	if totals.Snippets > 0 {
		m := totals.MeanScores
		fmt.Fprintln(r.out, r.styles.Bold.Render("Mean scores: ")+
			fmt.Sprintf("quality %d, security %d, performance %d, maintainability %d",
				m.Quality, m.Security, m.Performance, m.Maintainability))
	}
}
