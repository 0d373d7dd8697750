package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
	"github.com/yaklabco/snipreview/pkg/review/rules"
	"github.com/yaklabco/snipreview/pkg/runner"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const reactArticle = "# Effects\n\n```js\nuseEffect(() => {\n  console.log(eval(x))\n})\n```\n\n" +
	"```python\n# reads config\nf = open('c')\n```\n"

func newRunner(t *testing.T, cfg *config.Config, opts ...review.EngineOption) *runner.Runner {
	t.Helper()

	registry := review.NewRegistry()
	rules.RegisterAll(registry)

	base := []review.EngineOption{
		review.WithRand(review.ZeroRand()),
		review.WithClock(func() time.Time { return time.Unix(0, 0).UTC() }),
	}
	return runner.New(review.NewEngine(registry, cfg, append(base, opts...)...))
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t, nil).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_ArticlesAndSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"posts/effects.md": reactArticle,
		"src/clean.js":     "// adds\nexport const add = (a, b) => a + b;\n",
		"src/debug.ts":     "// debug\nconsole.log(a == b)\n",
	})

	cfg := config.NewConfig()
	result, err := newRunner(t, cfg).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       2,
		Config:     cfg,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	article := result.Files[0]
	require.NoError(t, article.Error)
	require.Len(t, article.Snippets, 2)

	js := article.Snippets[0]
	assert.Equal(t, "javascript", js.Snippet.Language)
	assert.Equal(t, []string{"JS001", "JS002", "JS005", "GEN001"}, ruleIDs(js.Report))

	py := article.Snippets[1]
	assert.Equal(t, "python", py.Snippet.Language)
	assert.Equal(t, []string{"GEN001"}, ruleIDs(py.Report))

	assert.Empty(t, result.Files[1].Snippets[0].Report.Issues)
	assert.Equal(t, "typescript", result.Files[2].Snippets[0].Report.Language)
	assert.Equal(t, []string{"JS001", "JS004"}, ruleIDs(result.Files[2].Snippets[0].Report))

	stats := result.Stats
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 3, stats.FilesProcessed)
	assert.Equal(t, 2, stats.FilesWithIssues)
	assert.Equal(t, 4, stats.SnippetsReviewed)
	assert.Equal(t, 7, stats.IssuesTotal)
	assert.Equal(t, 1, stats.IssuesByKind[config.KindError])
	assert.Equal(t, 4, stats.IssuesByKind[config.KindWarning])
	assert.Equal(t, 2, stats.IssuesByKind[config.KindInfo])
	assert.Equal(t, 1, stats.IssuesBySeverity[config.SeverityCritical])
	assert.True(t, result.HasErrors())
	assert.True(t, result.HasWarnings())
	assert.Len(t, result.Reports(), 4)
}

func TestRunner_Run_MinSeverityFromConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "console.log(eval(x))"})

	cfg := config.NewConfig()
	cfg.MinSeverity = config.SeverityCritical

	result, err := newRunner(t, cfg).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	report := result.Files[0].Snippets[0].Report
	assert.Equal(t, []string{"JS005"}, ruleIDs(report))
	assert.Equal(t, config.SeverityCritical, report.Options.MinSeverity)
}

func TestRunner_Run_ForcedLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "print(x)"})

	cfg := config.NewConfig()
	cfg.Language = "py"

	result, err := newRunner(t, cfg).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, []string{"PY001", "GEN001"}, ruleIDs(result.Files[0].Snippets[0].Report))
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["posts/"+name+".md"] = reactArticle
	}
	writeTree(t, dir, files)

	seed := uint64(1234)
	cfg := config.NewConfig()
	cfg.Seed = &seed
	cfg.SecurityScan = true

	run := func(jobs int) *runner.Result {
		r := newRunner(t, cfg, review.WithIDGenerator(func() string { return "id" }))
		result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: jobs, Config: cfg})
		require.NoError(t, err)
		return result
	}

	serial, parallel := run(1), run(8)

	opt := cmp.Comparer(func(a, b runner.Stats) bool {
		return cmp.Equal(a.IssuesBySeverity, b.IssuesBySeverity) && a.MeanScores == b.MeanScores
	})
	if diff := cmp.Diff(serial.Reports(), parallel.Reports()); diff != "" {
		t.Errorf("seeded reports depend on scheduling (-serial +parallel):\n%s", diff)
	}
	if diff := cmp.Diff(serial.Stats, parallel.Stats, opt); diff != "" {
		t.Errorf("stats differ (-serial +parallel):\n%s", diff)
	}
}

func TestRunner_Run_Cache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": reactArticle})

	r := newRunner(t, nil)
	opts := runner.Options{WorkingDir: dir}

	first, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Stats.SnippetsCached)

	second, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Stats.SnippetsCached)
	assert.Same(t, first.Reports()[0], second.Reports()[0])

	writeTree(t, dir, map[string]string{"a.md": reactArticle + "\n```js\nlet y = 2\n```\n"})

	third, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, third.Stats.SnippetsCached)
	assert.Equal(t, 3, third.Stats.SnippetsReviewed)
}

func TestRunner_Run_DuplicateSnippetsReviewedOnce(t *testing.T) {
	t.Parallel()

	block := "```js\nconsole.log(1)\n```\n"
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.md": "# Twice\n\n" + block + "\nAgain:\n\n" + block,
		"b.md": "# Once\n\n" + block,
	})

	seed := uint64(9)
	cfg := config.NewConfig()
	cfg.Seed = &seed

	result, err := newRunner(t, cfg).Run(context.Background(), runner.Options{
		Paths:      []string{"a.md", "b.md", "a.md"},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesProcessed)
	assert.Equal(t, 3, result.Stats.SnippetsReviewed)
	assert.Equal(t, 2, result.Stats.SnippetsCached)

	reports := result.Reports()
	require.Len(t, reports, 3)
	assert.Same(t, reports[0], reports[1])
	assert.Same(t, reports[0], reports[2])
}

func TestRunner_Run_IdenticalBlocksInOneArticle(t *testing.T) {
	t.Parallel()

	block := "```python\nprint(1)\n```\n"
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"post.md": block + "\n" + block})

	result, err := newRunner(t, nil).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.SnippetsReviewed)
	assert.Equal(t, 1, result.Stats.SnippetsCached)

	snippets := result.Files[0].Snippets
	assert.NotEqual(t, snippets[0].Cached, snippets[1].Cached, "exactly one copy is reviewed")
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "x", "b.js": "y"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	r := newRunner(t, nil, review.WithDelay(time.Hour))
	result, err := r.Run(ctx, runner.Options{WorkingDir: dir})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Stats.SnippetsReviewed)
}

func TestRunner_RunContent(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t, nil).RunContent(context.Background(), "-", []byte("eval(x)"), runner.Options{})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	assert.Equal(t, "-", result.Files[0].Path)
	assert.Equal(t, "-#0", result.Files[0].Snippets[0].Snippet.ID)
	assert.True(t, result.HasErrors())
}

func TestRunner_RunContent_EmptyArticle(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t, nil).RunContent(context.Background(), "a.md", nil, runner.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Empty(t, result.Files[0].Snippets)
}

func TestSnippetSeed(t *testing.T) {
	t.Parallel()

	a := review.CacheKey("javascript", "console.log(1)")
	b := review.CacheKey("javascript", "console.log(2)")

	assert.Equal(t, runner.SnippetSeed(1, a), runner.SnippetSeed(1, a))
	assert.NotEqual(t, runner.SnippetSeed(1, a), runner.SnippetSeed(1, b))
	assert.NotEqual(t, runner.SnippetSeed(1, a), runner.SnippetSeed(2, a))
}

func TestEngineFor(t *testing.T) {
	t.Parallel()

	registry := review.NewRegistry()
	rules.RegisterAll(registry)

	seed := uint64(99)
	cfg := config.NewConfig()
	cfg.Seed = &seed

	in := review.Input{Source: "x"}
	a, err := runner.EngineFor(registry, cfg).Review(context.Background(), in)
	require.NoError(t, err)
	b, err := runner.EngineFor(registry, cfg).Review(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, a.Scores, b.Scores)
	assert.Equal(t, a.Metrics, b.Metrics)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
	assert.False(t, result.HasIssues())
}

func ruleIDs(report *review.Report) []string {
	if report == nil {
		return nil
	}
	ids := make([]string, 0, len(report.Issues))
	for _, issue := range report.Issues {
		ids = append(ids, issue.RuleID)
	}
	return ids
}
