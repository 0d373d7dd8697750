package reporter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/snipreview/pkg/analysis"
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
)

func sampleReport() *analysis.Report {
	return &analysis.Report{
		ByLanguage: []analysis.LanguageAnalysis{
			{Language: "javascript", Snippets: 3, Issues: 5, MeanQuality: 78},
			{Language: "python", Snippets: 1, Issues: 1, MeanQuality: 95},
		},
		ByRule: []analysis.RuleAnalysis{
			{RuleID: "JS001", RuleName: "no-console", Issues: 3, Warnings: 3},
			{RuleID: "JS005", RuleName: "no-eval", Issues: 2, Errors: 2},
			{RuleID: "complexity-filler", Title: "Complex code section", Issues: 1, Infos: 1},
		},
		ByFile: []analysis.FileAnalysis{
			{Path: "posts/hooks.md", Snippets: 3, Issues: 5, Errors: 2, Warnings: 3},
			{Path: "posts/python.md", Snippets: 1, Issues: 1, Infos: 1},
		},
		Totals: analysis.Totals{
			Files: 2, FilesWithIssues: 2, Snippets: 4,
			Issues: 6, Errors: 2, Warnings: 3, Infos: 1,
			MeanScores: review.ScoreSet{Quality: 82, Security: 70, Performance: 91, Maintainability: 86},
		},
	}
}

func TestSummaryRenderer_NothingReviewed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})

	err := renderer.Render(context.Background(), &analysis.Report{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No snippets reviewed")
}

func TestSummaryRenderer_NoIssues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})

	report := &analysis.Report{
		ByLanguage: []analysis.LanguageAnalysis{{Language: "python", Snippets: 2, MeanQuality: 100}},
		Totals:     analysis.Totals{Files: 1, Snippets: 2, MeanScores: review.ScoreSet{Quality: 100}},
	}

	require.NoError(t, renderer.Render(context.Background(), report))

	output := buf.String()
	assert.Contains(t, output, "Languages")
	assert.Contains(t, output, "No issues found")
	assert.NotContains(t, output, "Rules Summary")
	assert.Contains(t, output, "0 issues in 2 snippets")
}

func TestSummaryRenderer_ShowsTables(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never", RuleFormat: config.RuleFormatName})

	require.NoError(t, renderer.Render(context.Background(), sampleReport()))

	output := buf.String()
	assert.Contains(t, output, "Languages")
	assert.Contains(t, output, "javascript")
	assert.Contains(t, output, "Rules Summary")
	assert.Contains(t, output, "no-console")
	assert.Contains(t, output, "Complex code section", "unnamed findings show their title")
	assert.Contains(t, output, "Files Summary")
	assert.Contains(t, output, "posts/hooks.md")

	// Rules table precedes the files table.
	assert.Less(t, strings.Index(output, "Rules Summary"), strings.Index(output, "Files Summary"))
}

func TestSummaryRenderer_RuleFormatCombined(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never", RuleFormat: config.RuleFormatCombined})

	require.NoError(t, renderer.Render(context.Background(), sampleReport()))
	assert.Contains(t, buf.String(), "JS005/no-eval")
}

func TestSummaryRenderer_ShowsTotals(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})

	require.NoError(t, renderer.Render(context.Background(), sampleReport()))

	output := buf.String()
	assert.Contains(t, output, "Total: 6 issues (2 errors, 3 warnings, 1 info) in 4 snippets")
	assert.Contains(t, output, "Mean scores: quality 82, security 70, performance 91, maintainability 86")
}

func TestSummaryRenderer_TruncatesLongPaths(t *testing.T) {
	t.Parallel()

	report := sampleReport()
	report.ByFile[0].Path = strings.Repeat("nested/", 12) + "article.md"

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})
	require.NoError(t, renderer.Render(context.Background(), report))

	assert.Contains(t, buf.String(), "…")
	assert.Contains(t, buf.String(), "article.md")
}

func TestPadHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "   ab", padLeft("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
	assert.Equal(t, "abcdef", padLeft("abcdef", 3))
}
