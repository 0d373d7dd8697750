package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/snipreview/internal/configloader"
	"github.com/yaklabco/snipreview/internal/logging"
	"github.com/yaklabco/snipreview/pkg/analysis"
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/fsutil"
	"github.com/yaklabco/snipreview/pkg/reporter"
	"github.com/yaklabco/snipreview/pkg/review"
	"github.com/yaklabco/snipreview/pkg/runner"
)

// stdinPath names standard input in reports.
const stdinPath = "<stdin>"

type reviewFlags struct {
	format        string
	minSeverity   string
	language      string
	ignore        []string
	enable        []string
	disable       []string
	ruleFormat    string
	sortBy        string
	output        string
	seed          uint64
	latency       time.Duration
	jobs          int
	securityScan  bool
	stdin         bool
	strict        bool
	noContext     bool
	noSuggestions bool
	noScores      bool
	compact       bool
}

func newReviewCommand(info BuildInfo) *cobra.Command {
	flags := &reviewFlags{}

	cmd := &cobra.Command{
		Use:   "review [paths...]",
		Short: "Review code snippets in articles and source files",
		Long:  reviewLongDescription,
		Args:  cobra.ArbitraryArgs,
		Annotations: map[string]string{
			annotationExitCodes:   reviewExitCodes,
			annotationEnvironment: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, args, flags, info)
		},
	}

	addReviewFlags(cmd, flags)

	return cmd
}

const reviewLongDescription = `Review the code snippets of CodeSource articles.

Markdown articles contribute one snippet per fenced code block. JavaScript,
TypeScript and Python files are reviewed whole. Each snippet receives a
report with issues, suggestions, quality scores and complexity metrics.

By default, reviews every supported file under the current directory.

Examples:
  snipreview review                         # Review current directory
  snipreview review posts/                  # Review an articles directory
  snipreview posts/hooks.md                 # "review" is the default command
  snipreview review --min-severity high     # Only high and critical issues
  snipreview review --seed 42               # Reproducible scores
  cat snippet.py | snipreview review --stdin --lang python
  snipreview review --format sarif --output review.sarif`

const reviewExitCodes = `0   no error-kind issues
1   error-kind issues found
2   warnings found with --strict
64  invalid usage
65  configuration error
70  internal error`

func addReviewFlags(cmd *cobra.Command, flags *reviewFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text",
		withEnv("output format: "+strings.Join(reporter.FormatNames(), ", "), "format"))
	cmd.Flags().StringVar(&flags.minSeverity, "min-severity", "low",
		withEnv("drop issues below this severity: low, medium, high, critical", "min_severity"))
	cmd.Flags().BoolVar(&flags.securityScan, "security-scan", false,
		withEnv("include the probabilistic security finding", "security_scan"))
	cmd.Flags().StringVar(&flags.language, "lang", "", withEnv("force the language of every snippet", "language"))
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "review standard input as a single file")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, withEnv("random seed for reproducible reports", "seed"))
	cmd.Flags().DurationVar(&flags.latency, "latency", 0,
		withEnv("modeled analysis delay per snippet (e.g. 1.5s)", "latency"))
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, withEnv("number of parallel workers (0 = auto)", "jobs"))
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, withEnv("glob patterns to ignore", "ignore"))
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero on warnings")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSuggestions, "no-suggestions", false, "hide improvement suggestions")
	cmd.Flags().BoolVar(&flags.noScores, "no-scores", false, "hide score bars and metrics")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minified JSON and SARIF output")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "count", "summary table order: count, alpha, severity")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
}

// withEnv appends the environment variable backing a config field to a flag usage.
func withEnv(usage, field string) string {
	if name := configloader.GetEnvVarName(field); name != "" {
		return usage + " [$" + name + "]"
	}
	return usage
}

// cliConfig converts explicitly set flags into the highest-precedence config layer.
func (f *reviewFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	changed := cmd.Flags().Changed
	cfg := &config.Config{
		Ignore:       f.ignore,
		EnableRules:  f.enable,
		DisableRules: f.disable,
	}

	if changed("min-severity") {
		severity, err := config.ParseSeverity(f.minSeverity)
		if err != nil {
			return nil, fmt.Errorf("%w: --min-severity: %w", ErrInvalidUsage, err)
		}
		cfg.MinSeverity = severity
	}
	if changed("format") {
		format, err := reporter.ParseFormat(f.format)
		if err != nil {
			return nil, fmt.Errorf("%w: --format: %w", ErrInvalidUsage, err)
		}
		cfg.Format = config.OutputFormat(format)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(f.ruleFormat)
		if !cfg.RuleFormat.IsValid() {
			return nil, fmt.Errorf("%w: --rule-format: unknown rule format %q", ErrInvalidUsage, f.ruleFormat)
		}
	}
	if changed("latency") {
		if f.latency < 0 {
			return nil, fmt.Errorf("%w: --latency must not be negative", ErrInvalidUsage)
		}
		cfg.Latency = f.latency
	}
	if changed("jobs") {
		if f.jobs < 0 {
			return nil, fmt.Errorf("%w: --jobs must be >= 0", ErrInvalidUsage)
		}
		cfg.Jobs = f.jobs
	}
	if changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}

	cfg.SecurityScan = f.securityScan
	cfg.Language = f.language

	return cfg, nil
}

func runReview(cmd *cobra.Command, args []string, flags *reviewFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if flags.stdin && len(args) > 0 {
		return fmt.Errorf("%w: --stdin cannot be combined with paths", ErrInvalidUsage)
	}

	sortBy := analysis.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return fmt.Errorf("%w: --sort: unknown order %q", ErrInvalidUsage, flags.sortBy)
	}

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldSeverity, cfg.EffectiveMinSeverity(),
		logging.FieldDelay, cfg.Latency,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldSeed, cfg.Seed != nil,
	)

	engine := runner.EngineFor(review.DefaultRegistry, cfg, review.WithLogger(logger))
	reviewRunner := runner.New(engine)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	start := time.Now()

	var result *runner.Result
	if flags.stdin {
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("read standard input: %w", readErr)
		}
		result, err = reviewRunner.RunContent(ctx, stdinPath, content, runOpts)
	} else {
		result, err = reviewRunner.Run(ctx, runOpts)
	}
	if err != nil {
		return fmt.Errorf("review run failed: %w", err)
	}

	logger.Debug("review finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldSnippetsReviewed, result.Stats.SnippetsReviewed,
		logging.FieldIssuesTotal, result.Stats.IssuesTotal,
		logging.FieldDuration, time.Since(start),
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	if flags.output != "" {
		out = &buf
		if colorMode != "always" {
			colorMode = "never"
		}
	}

	format := reporter.Format(cfg.Format)
	rep, err := reporter.New(reporter.Options{
		Writer:          out,
		ErrorWriter:     cmd.ErrOrStderr(),
		Format:          format,
		Color:           colorMode,
		ShowContext:     !flags.noContext,
		ShowSummary:     true,
		ShowSuggestions: !flags.noSuggestions,
		ShowScores:      !flags.noScores,
		Compact:         flags.compact,
		RuleFormat:      cfg.RuleFormat,
		RuleName:        reporter.RuleNames(review.DefaultRegistry),
		SortBy:          sortBy,
		WorkingDir:      workDir,
		ToolVersion:     info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if flags.output != "" {
		written, err := fsutil.WriteAtomicIfChanged(ctx, flags.output, buf.Bytes(), fsutil.DefaultFileMode)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Debug("wrote report", logging.FieldOutput, flags.output, logging.FieldChanged, written)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitIssuesFound:
		return ErrIssuesFound
	case ExitWarningsFound:
		return ErrWarningsFound
	default:
		return nil
	}
}
