package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/snipreview/internal/logging"
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/fsutil"
	"github.com/yaklabco/snipreview/pkg/review"
)

// defaultConfigFile is the project config file init writes.
const defaultConfigFile = ".snipreview.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new snipreview configuration file",
		Long: `Create a .snipreview.yml configuration file in the current directory.
The file can be customized to enable or disable rules, change severities,
and set the review options.

Examples:
  snipreview init                      Create minimal .snipreview.yml
  snipreview init --full               Document every rule in the file
  snipreview init --force              Overwrite, keeping a .bak copy
  snipreview init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate a template documenting every rule")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, statErr := os.Stat(absPath)
	switch {
	case statErr == nil && !flags.force:
		return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, flags.output)
	case statErr == nil:
		backupPath, err := fsutil.CreateBackup(ctx, absPath)
		if err != nil {
			return fmt.Errorf("back up existing config: %w", err)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output, "backup", backupPath)
	case !errors.Is(statErr, os.ErrNotExist):
		return fmt.Errorf("stat %s: %w", flags.output, statErr)
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Full:  flags.full,
		Rules: templateRules(review.DefaultRegistry),
	})

	written, err := fsutil.WriteAtomicIfChanged(ctx, absPath, content, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if !written {
		logger.Info("configuration file already up to date", logging.FieldPath, flags.output)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	if flags.full {
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("run 'snipreview rules' to see all available rules")

	return nil
}

func templateRules(registry *review.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Languages:   rule.Languages(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
		})
	}
	return infos
}
