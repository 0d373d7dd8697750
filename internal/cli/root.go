// Package cli provides the Cobra command structure for snipreview.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/snipreview/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root snipreview command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "snipreview",
		Short: "Heuristic code review for CodeSource article snippets",
		Long: `snipreview reviews the code snippets published on CodeSource.

It pulls fenced code blocks out of Markdown articles (or takes JavaScript,
TypeScript and Python files whole) and produces a review report per snippet:
detected issues, improvement suggestions, quality scores and complexity
metrics. Scores are randomized; use --seed for reproducible output.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newReviewCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, rootCmd.OutOrStdout())
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// WithDefaultCommand prepends "review" to args unless they already name a subcommand,
// so "snipreview posts/" behaves like "snipreview review posts/".
func WithDefaultCommand(root *cobra.Command, args []string) []string {
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "--version":
			return args
		}
	}

	root.InitDefaultHelpCmd()
	root.InitDefaultCompletionCmd()

	if cmd, _, err := root.Find(args); err == nil && cmd != root {
		return args
	}

	return append([]string{"review"}, args...)
}
