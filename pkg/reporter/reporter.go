// Package reporter renders review results as text, JSON, SARIF or summary tables.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/snipreview/pkg/analysis"
	"github.com/yaklabco/snipreview/pkg/runner"
)

// Compile-time interface checks.
var (
	_ Reporter = (*reporterFacade)(nil)
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
	_ Reporter = (*SARIFReporter)(nil)
)

// Reporter formats and writes review results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer draws an aggregated analysis.Report rather than per-issue output.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// reporterFacade analyzes a runner.Result before handing it to a Renderer.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	analysisOpts := opts.analysisOptions()
	// Table renderers never print individual issues.
	analysisOpts.IncludeIssues = false
	return &reporterFacade{
		renderer:     renderer,
		analysisOpts: analysisOpts,
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}
