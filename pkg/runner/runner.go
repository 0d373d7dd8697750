package runner

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/yaklabco/snipreview/internal/logging"
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/fsutil"
	"github.com/yaklabco/snipreview/pkg/review"
	"github.com/yaklabco/snipreview/pkg/snippet"
)

// Runner reviews files concurrently with a shared review.Engine.
type Runner struct {
	// Engine reviews individual snippets.
	Engine *review.Engine

	// Cache, when set, serves repeat reviews of identical snippets, within a
	// run and across runs of the same Runner.
	Cache *review.Cache

	// flights collapses concurrent reviews of the same cache key into one.
	flights singleflight.Group
}

// New creates a Runner around engine with a default-sized report cache.
func New(engine *review.Engine) *Runner {
	return &Runner{
		Engine: engine,
		Cache:  review.NewCache(review.DefaultCacheSize),
	}
}

// Run discovers files under opts.Paths and reviews them concurrently.
// File outcomes come back in discovery order.
//
// On cancellation the partial result is returned together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := min(opts.jobs(), len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	result.finish()

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// RunContent reviews content that did not come from discovery, such as standard input.
func (r *Runner) RunContent(ctx context.Context, path string, content []byte, opts Options) (*Result, error) {
	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = 1

	outcome := r.reviewContent(ctx, path, content, opts)
	result.accumulate(outcome)
	result.finish()

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.reviewFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) reviewFile(ctx context.Context, path string, opts Options) FileOutcome {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}
	return r.reviewContent(ctx, path, content, opts)
}

// reviewContent splits content into snippets and reviews them concurrently,
// at most opts.Jobs at a time.
func (r *Runner) reviewContent(ctx context.Context, path string, content []byte, opts Options) FileOutcome {
	cfg := opts.config()
	ctx = logging.With(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)
	start := time.Now()

	snippets, err := snippet.FromContent(ctx, path, content, cfg.Language)
	if err != nil {
		return FileOutcome{Path: path, Error: fmt.Errorf("extract snippets: %w", err)}
	}

	outcome := FileOutcome{
		Path:     path,
		Snippets: make([]SnippetOutcome, len(snippets)),
	}

	reviewOpts := review.Options{
		SecurityScan: cfg.SecurityScan,
		MinSeverity:  cfg.EffectiveMinSeverity(),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.jobs())

	for idx, snip := range snippets {
		group.Go(func() error {
			so := r.reviewSnippet(groupCtx, snip, reviewOpts, cfg.Seed)
			outcome.Snippets[idx] = so
			return so.Error
		})
	}

	if err := group.Wait(); err != nil {
		logger.Debug("snippet review aborted", logging.FieldError, err)
	}

	logger.Debug("reviewed file",
		logging.FieldSnippetsReviewed, len(snippets),
		logging.FieldDuration, time.Since(start),
	)

	return outcome
}

func (r *Runner) reviewSnippet(ctx context.Context, snip snippet.Snippet, opts review.Options, seed *uint64) SnippetOutcome {
	key := cacheKey(snip, opts)

	if r.Cache == nil {
		report, err := r.review(ctx, snip, key, opts, seed)
		if err != nil {
			return SnippetOutcome{Snippet: snip, Error: fmt.Errorf("review %s: %w", snip.ID, err)}
		}
		return SnippetOutcome{Snippet: snip, Report: report}
	}

	// Only the goroutine that runs the flight function reviews; every other
	// caller with the same key is served a cached report.
	reviewed := false
	value, err, _ := r.flights.Do(key, func() (any, error) {
		if report, ok := r.Cache.Get(key); ok {
			return report, nil
		}
		reviewed = true
		report, err := r.review(ctx, snip, key, opts, seed)
		if err != nil {
			return nil, err
		}
		r.Cache.Put(key, report)
		return report, nil
	})
	if err != nil {
		return SnippetOutcome{Snippet: snip, Error: fmt.Errorf("review %s: %w", snip.ID, err)}
	}

	report, _ := value.(*review.Report)
	if !reviewed {
		logging.FromContext(ctx).Debug("cache hit", logging.FieldSnippet, snip.ID, logging.FieldCached, true)
	}
	return SnippetOutcome{Snippet: snip, Report: report, Cached: !reviewed}
}

func (r *Runner) review(
	ctx context.Context, snip snippet.Snippet, key string, opts review.Options, seed *uint64,
) (*review.Report, error) {
	engine := r.Engine
	if seed != nil {
		engine = engine.Fork(review.NewRand(SnippetSeed(*seed, key)))
	}

	return engine.Review(ctx, review.Input{
		Source:   snip.Source,
		Language: snip.Language,
		Options:  opts,
	})
}

// SnippetSeed derives the random seed of one snippet from the run seed and the
// snippet's cache key. Identical snippets draw identical numbers, so seeded
// output depends neither on scheduling order nor on which copy was reviewed.
func SnippetSeed(seed uint64, key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return seed ^ h.Sum64()
}

func cacheKey(snip snippet.Snippet, opts review.Options) string {
	return review.CacheKey(snip.Language, snip.Source) +
		"|" + string(opts.MinSeverity) +
		"|" + strconv.FormatBool(opts.SecurityScan)
}

// EngineFor builds an engine over registry configured from cfg.
// A nil seed means fresh randomness per run.
func EngineFor(registry *review.Registry, cfg *config.Config, opts ...review.EngineOption) *review.Engine {
	if cfg.Seed != nil {
		opts = append([]review.EngineOption{review.WithRand(review.NewRand(*cfg.Seed))}, opts...)
	}
	return review.NewEngine(registry, cfg, opts...)
}
