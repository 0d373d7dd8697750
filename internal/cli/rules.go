package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/snipreview/internal/logging"
	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Languages   []string `json:"languages"`
	Enabled     bool     `json:"enabled"`
}

// advisorInfo represents an advisor in JSON output.
type advisorInfo struct {
	ID        string   `json:"id"`
	Languages []string `json:"languages"`
}

type rulesListing struct {
	Rules    []ruleInfo    `json:"rules"`
	Advisors []advisorInfo `json:"advisors"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available review rules and advisors",
		Long: `List the built-in review rules with their IDs, default severity and
target languages, followed by the advisors that attach improvement suggestions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listing := listRules(review.DefaultRegistry)

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), listing)
			case "text", "":
				outputRulesText(cmd.OutOrStdout(), listing, config.RuleFormat(flags.ruleFormat))
				return nil
			default:
				return fmt.Errorf("%w: --format: unknown format %q; valid formats: text, json",
					ErrInvalidUsage, flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func listRules(registry *review.Registry) rulesListing {
	listing := rulesListing{
		Rules:    make([]ruleInfo, 0),
		Advisors: make([]advisorInfo, 0),
	}

	for _, rule := range registry.Rules() {
		listing.Rules = append(listing.Rules, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Languages:   languagesOrAny(rule.Languages()),
			Enabled:     rule.DefaultEnabled(),
		})
	}
	for _, advisor := range registry.Advisors() {
		listing.Advisors = append(listing.Advisors, advisorInfo{
			ID:        advisor.ID(),
			Languages: languagesOrAny(advisor.Languages()),
		})
	}

	return listing
}

func languagesOrAny(languages []string) []string {
	if len(languages) == 0 {
		return []string{"any"}
	}
	return languages
}

func outputRulesText(w io.Writer, listing rulesListing, ruleFormat config.RuleFormat) {
	logger := logging.NewInteractive(w)

	if len(listing.Rules) == 0 {
		logger.Info("no rules registered")
		return
	}

	logger.Info("available rules")
	for _, rule := range listing.Rules {
		logger.Info(config.FormatRuleID(ruleFormat, rule.ID, rule.Name),
			logging.FieldSeverity, rule.Severity,
			logging.FieldLanguages, strings.Join(rule.Languages, ","),
			logging.FieldDescription, rule.Description,
		)
	}

	logger.Info("available advisors")
	for _, advisor := range listing.Advisors {
		logger.Info(advisor.ID, logging.FieldLanguages, strings.Join(advisor.Languages, ","))
	}
}

// outputRulesJSON writes the rules and advisors as one JSON document.
func outputRulesJSON(w io.Writer, listing rulesListing) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listing); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
