package review

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/snipreview/internal/logging"
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/langdetect"
)

// DefaultLanguage is assumed when an Input carries no language tag.
const DefaultLanguage = langdetect.LangJavaScript

// Outcome is the single value delivered by ReviewAsync.
type Outcome struct {
	Report *Report
	Err    error
}

// Engine runs the detection, scoring and summarizing pipeline over snippets.
//
// An Engine is safe for concurrent use. The only state shared between concurrent
// reviews is the random source, which must itself be safe for concurrent use.
type Engine struct {
	registry *Registry
	cfg      *config.Config
	rand     Rand
	now      func() time.Time
	delay    time.Duration
	logger   *log.Logger
	newID    func() string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRand sets the random source used for fillers, penalties and metrics.
func WithRand(r Rand) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// WithClock sets the clock used to stamp reports.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithDelay sets the modeled analysis latency applied before each review completes.
func WithDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.delay = max(d, 0)
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithIDGenerator overrides how report IDs are produced.
func WithIDGenerator(newID func() string) EngineOption {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

// NewEngine creates an Engine over the rules and advisors of registry.
// A nil cfg means every rule runs with its defaults.
func NewEngine(registry *Registry, cfg *config.Config, opts ...EngineOption) *Engine {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	engine := &Engine{
		registry: registry,
		cfg:      cfg,
		rand:     SystemRand(),
		now:      time.Now,
		delay:    cfg.Latency,
		logger:   logging.Default(),
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Fork returns a copy of the engine drawing from r instead of its own random source.
func (e *Engine) Fork(r Rand) *Engine {
	clone := *e
	if r != nil {
		clone.rand = r
	}
	return &clone
}

// Registry returns the registry the engine runs.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Review analyzes in and returns its report once the modeled delay has elapsed.
//
// The delay is abortable through ctx. An aborted delay yields an error matching
// ErrAnalysisUnavailable as well as the context's error.
func (e *Engine) Review(ctx context.Context, in Input) (*Report, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	return e.analyze(ctx, in), nil
}

// ReviewAsync starts Review on a goroutine and returns a channel that receives
// exactly one Outcome. The channel is buffered, so the goroutine exits even if
// the caller never reads it.
func (e *Engine) ReviewAsync(ctx context.Context, in Input) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		report, err := e.Review(ctx, in)
		out <- Outcome{Report: report, Err: err}
	}()
	return out
}

func (e *Engine) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrAnalysisUnavailable, err)
	}
	if e.delay <= 0 {
		return nil
	}

	e.logger.Debug("modeling analysis latency", logging.FieldDelay, e.delay)

	timer := time.NewTimer(e.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrAnalysisUnavailable, ctx.Err())
	case <-timer.C:
		return nil
	}
}

// analyze is the synchronous pipeline. Random draws happen in a fixed order so
// that a seeded Rand reproduces the same report.
func (e *Engine) analyze(ctx context.Context, in Input) *Report {
	language := langdetect.Normalize(in.Language)
	if language == "" {
		language = DefaultLanguage
	}

	floor, err := config.ParseSeverity(string(in.Options.MinSeverity))
	if err != nil {
		e.logger.Debug("unknown min severity, using low", logging.FieldSeverity, in.Options.MinSeverity)
		floor = config.SeverityLow
	}

	ruleCtx := NewRuleContext(ctx, in.Source, language, nil)
	lineCount := len(ruleCtx.Lines)

	issues := e.detect(ruleCtx)
	issues = append(issues, complexityFiller(lineCount, e.rand)...)
	if in.Options.SecurityScan {
		if issue, ok := securityScan(lineCount, e.rand); ok {
			issues = append(issues, issue)
		}
	}

	filtered := FilterBySeverity(issues, floor)
	e.logger.Debug("detection complete",
		logging.FieldLanguage, language,
		logging.FieldIssues, len(issues),
		logging.FieldKept, len(filtered),
	)

	return &Report{
		ID:          e.newID(),
		Summary:     Summarize(filtered),
		Language:    language,
		Issues:      filtered,
		Suggestions: e.advise(ruleCtx),
		Scores:      Score(filtered, e.rand),
		Metrics:     measure(in.Source, e.rand),
		Options:     Options{SecurityScan: in.Options.SecurityScan, MinSeverity: floor},
		ProducedAt:  e.now(),
	}
}

// detect runs every enabled rule whose language set contains the snippet language.
func (e *Engine) detect(ruleCtx *RuleContext) []Issue {
	var issues []Issue

	for _, rr := range ResolveRules(e.registry, e.cfg) {
		if !appliesTo(rr.Rule.Languages(), ruleCtx.Language) {
			e.logger.Debug("rule skipped", logging.FieldRule, rr.Rule.ID(), logging.FieldLanguage, ruleCtx.Language)
			continue
		}

		issue, ok := rr.Rule.Apply(ruleCtx.withRuleConfig(rr.Config))
		if !ok {
			continue
		}
		issue.RuleID = rr.Rule.ID()
		issue.Severity = rr.Severity
		issues = append(issues, issue)
	}

	return issues
}

// advise collects suggestions from every advisor that applies to the snippet.
func (e *Engine) advise(ruleCtx *RuleContext) []Suggestion {
	suggestions := []Suggestion{}

	for _, advisor := range e.registry.Advisors() {
		if !appliesTo(advisor.Languages(), ruleCtx.Language) {
			continue
		}
		if suggestion, ok := advisor.Advise(ruleCtx); ok {
			suggestion.AdvisorID = advisor.ID()
			suggestions = append(suggestions, suggestion)
		}
	}

	return suggestions
}
