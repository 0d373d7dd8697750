package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
	"github.com/yaklabco/snipreview/pkg/runner"
	"github.com/yaklabco/snipreview/pkg/snippet"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts a path to one relative to workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	relPath, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	langMap   map[string]*LanguageAnalysis
	langScore map[string]int
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		langMap:   make(map[string]*LanguageAnalysis),
		langScore: make(map[string]int),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

func (fa *FileAnalysis) countKind(kind config.Kind) {
	fa.Issues++
	switch kind {
	case config.KindError:
		fa.Errors++
	case config.KindWarning:
		fa.Warnings++
	case config.KindInfo:
		fa.Infos++
	}
}

func (ra *RuleAnalysis) countKind(kind config.Kind) {
	ra.Issues++
	switch kind {
	case config.KindError:
		ra.Errors++
	case config.KindWarning:
		ra.Warnings++
	case config.KindInfo:
		ra.Infos++
	}
}

func (t *Totals) count(issue *review.Issue) {
	t.Issues++
	switch issue.Kind {
	case config.KindError:
		t.Errors++
	case config.KindWarning:
		t.Warnings++
	case config.KindInfo:
		t.Infos++
	}
	switch issue.Severity {
	case config.SeverityCritical:
		t.Critical++
	case config.SeverityHigh:
		t.High++
	case config.SeverityMedium:
		t.Medium++
	case config.SeverityLow:
		t.Low++
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) rule(issue *review.Issue, opts Options) *RuleAnalysis {
	if _, ok := ctx.ruleMap[issue.RuleID]; !ok {
		ctx.ruleMap[issue.RuleID] = &RuleAnalysis{
			RuleID:   issue.RuleID,
			RuleName: opts.ruleName(issue.RuleID),
			Title:    issue.Title,
		}
		ctx.ruleFiles[issue.RuleID] = make(map[string]bool)
	}
	return ctx.ruleMap[issue.RuleID]
}

func (ctx *analysisContext) language(lang string) *LanguageAnalysis {
	if _, ok := ctx.langMap[lang]; !ok {
		ctx.langMap[lang] = &LanguageAnalysis{Language: lang}
	}
	return ctx.langMap[lang]
}

func newIssueEntry(path string, snip *snippet.Snippet, issue *review.Issue, opts Options) IssueEntry {
	entry := IssueEntry{
		FilePath:    path,
		SnippetID:   snip.ID,
		Language:    snip.Language,
		RuleID:      issue.RuleID,
		RuleName:    opts.ruleName(issue.RuleID),
		Kind:        string(issue.Kind),
		Severity:    string(issue.Severity),
		Category:    string(issue.Category),
		Title:       issue.Title,
		Description: issue.Description,
	}
	if issue.HasLine() {
		entry.Line = snip.FileLine(*issue.Line)
	}
	return entry
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the reviewed snippets to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Totals.FilesErrored++
			continue
		}

		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		fa := ctx.file(displayPath)
		fileIssues := 0

		for idx := range file.Snippets {
			so := &file.Snippets[idx]
			if so.Error != nil || so.Report == nil {
				report.Totals.SnippetsErrored++
				continue
			}

			report.Totals.Snippets++
			fa.Snippets++

			la := ctx.language(so.Report.Language)
			la.Snippets++
			la.Issues += len(so.Report.Issues)
			ctx.langScore[so.Report.Language] += so.Report.Scores.Quality

			for i := range so.Report.Issues {
				issue := &so.Report.Issues[i]
				fileIssues++
				report.Totals.count(issue)

				fa.countKind(issue.Kind)
				ctx.fileRules[displayPath][issue.RuleID] = true

				ra := ctx.rule(issue, opts)
				ra.countKind(issue.Kind)
				ctx.ruleFiles[issue.RuleID][displayPath] = true

				if opts.IncludeIssues {
					report.Issues = append(report.Issues, newIssueEntry(displayPath, &so.Snippet, issue, opts))
				}
			}
		}

		if fileIssues > 0 {
			report.Totals.FilesWithIssues++
		}
	}

	report.Totals.MeanScores = result.Stats.MeanScores

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}
	if opts.IncludeByLanguage {
		report.ByLanguage = ctx.buildByLanguage()
	}

	return report
}

// buildByRule constructs the ByRule slice from accumulated data.
func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortBy(result, opts, func(ra RuleAnalysis) (string, int, int, int) {
		return ra.RuleID, ra.Issues, ra.Errors, ra.Warnings
	})
	return result
}

// buildByFile constructs the ByFile slice from accumulated data.
// Files without issues are left out.
func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 {
			continue
		}
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortBy(result, opts, func(fa FileAnalysis) (string, int, int, int) {
		return fa.Path, fa.Issues, fa.Errors, fa.Warnings
	})
	return result
}

// buildByLanguage orders languages by snippet count, then name.
func (ctx *analysisContext) buildByLanguage() []LanguageAnalysis {
	result := make([]LanguageAnalysis, 0, len(ctx.langMap))
	for lang, la := range ctx.langMap {
		if la.Snippets > 0 {
			la.MeanQuality = ctx.langScore[lang] / la.Snippets
		}
		result = append(result, *la)
	}
	slices.SortFunc(result, func(left, right LanguageAnalysis) int {
		if c := cmp.Compare(right.Snippets, left.Snippets); c != 0 {
			return c
		}
		return cmp.Compare(left.Language, right.Language)
	})
	return result
}

// sortBy orders aggregates; key returns the name, issue, error and warning counts.
// Ties fall back to the name so output is stable across runs.
func sortBy[T any](items []T, opts Options, key func(T) (string, int, int, int)) {
	slices.SortFunc(items, func(left, right T) int {
		lName, lIssues, lErrors, lWarnings := key(left)
		rName, rIssues, rErrors, rWarnings := key(right)

		var result int
		switch opts.SortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(lName, rName)
		case SortBySeverity:
			result = cmp.Compare(rErrors, lErrors)
			if result == 0 {
				result = cmp.Compare(rWarnings, lWarnings)
			}
			if result == 0 {
				result = cmp.Compare(rIssues, lIssues)
			}
		default: // SortByCount
			result = cmp.Compare(lIssues, rIssues)
			if opts.SortDesc {
				result = -result
			}
		}
		if result == 0 {
			result = cmp.Compare(lName, rName)
		}
		return result
	})
}
