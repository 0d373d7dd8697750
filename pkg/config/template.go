package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every rule with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Rules describes the rules to document in a full template.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Languages   []string
	Enabled     bool
	Severity    Severity
}

const templateHeader = `# snipreview configuration
# See: https://github.com/yaklabco/snipreview
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(templateHeader)
	buf.WriteString(`
# Drop issues below this severity: low, medium, high, or critical
min_severity: low

# Add the probabilistic security scan finding
# security_scan: false

# Modeled analysis latency per snippet (Go duration)
# latency: 0s

# Pin the random source for reproducible scores and metrics
# seed: 42

# File patterns to ignore (glob patterns)
# ignore:
#   - "node_modules/**"
#   - "dist/**"
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration
# rules:
#   JS001:
#     enabled: false
#   PY003:
#     severity: medium
`)
		return buf.Bytes()
	}

	buf.WriteString("\n# Rule-specific configuration\nrules:\n")

	rules := make([]RuleInfo, len(opts.Rules))
	copy(rules, opts.Rules)
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if len(rule.Languages) > 0 {
			fmt.Fprintf(&buf, "  # Languages: %s\n", strings.Join(rule.Languages, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}
