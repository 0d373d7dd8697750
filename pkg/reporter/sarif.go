package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
	"github.com/yaklabco/snipreview/pkg/runner"
	"github.com/yaklabco/snipreview/pkg/snippet"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	toolName           = "snipreview"
	toolInformationURI = "https://github.com/yaklabco/snipreview"
	devVersion         = "dev"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a review rule.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	FullDescription  SARIFMultiformatText `json:"fullDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single issue.
type SARIFResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    SARIFMessage    `json:"message"`
	Locations  []SARIFLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Lines are 1-based.
type SARIFRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = devVersion
	}

	output := &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{
				Driver: SARIFDriver{
					Name:           toolName,
					Version:        version,
					InformationURI: toolInformationURI,
					Rules:          make([]SARIFRule, 0),
				},
			},
			Results: make([]SARIFResult, 0),
		}},
	}

	if result == nil {
		return output
	}

	run := &output.Runs[0]
	rulesSeen := make(map[string]bool)

	for _, file := range result.Files {
		for idx := range file.Snippets {
			so := &file.Snippets[idx]
			if so.Report == nil {
				continue
			}

			for i := range so.Report.Issues {
				issue := &so.Report.Issues[i]

				if !rulesSeen[issue.RuleID] {
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, r.sarifRule(issue))
					rulesSeen[issue.RuleID] = true
				}

				run.Results = append(run.Results, SARIFResult{
					RuleID:  issue.RuleID,
					Level:   kindToSARIFLevel(issue.Kind),
					Message: SARIFMessage{Text: issue.Title + ": " + issue.Description},
					Locations: []SARIFLocation{{
						PhysicalLocation: SARIFPhysicalLocation{
							ArtifactLocation: SARIFArtifactLocation{URI: file.Path},
							Region:           sarifRegion(issue, &so.Snippet),
						},
					}},
					Properties: map[string]any{
						"severity":  string(issue.Severity),
						"category":  string(issue.Category),
						"snippetId": so.Snippet.ID,
						"language":  so.Report.Language,
					},
				})
			}
		}
	}

	return output
}

func (r *SARIFReporter) sarifRule(issue *review.Issue) SARIFRule {
	var name string
	if r.opts.RuleName != nil {
		name = r.opts.RuleName(issue.RuleID)
	}
	return SARIFRule{
		ID:               issue.RuleID,
		Name:             name,
		ShortDescription: SARIFMultiformatText{Text: issue.Title},
		FullDescription:  SARIFMultiformatText{Text: issue.Description},
		DefaultConfig:    &SARIFRuleConfig{Level: kindToSARIFLevel(issue.Kind)},
		Properties: map[string]any{
			"category": string(issue.Category),
		},
	}
}

// sarifRegion places an issue in its file. Issues without a line point at
// the first line of their snippet.
func sarifRegion(issue *review.Issue, snip *snippet.Snippet) SARIFRegion {
	start := max(snip.StartLine, 1)
	if !issue.HasLine() {
		return SARIFRegion{StartLine: start}
	}
	line := snip.FileLine(*issue.Line)
	if line == 0 {
		line = *issue.Line + 1
	}
	return SARIFRegion{StartLine: line, EndLine: line}
}

// kindToSARIFLevel converts an issue kind to a SARIF level.
func kindToSARIFLevel(kind config.Kind) string {
	switch kind {
	case config.KindError:
		return "error"
	case config.KindWarning:
		return "warning"
	case config.KindInfo:
		return "note"
	default:
		return "warning"
	}
}
