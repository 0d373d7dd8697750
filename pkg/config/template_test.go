package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/snipreview/pkg/config"
)

func TestGenerateTemplateMinimal(t *testing.T) {
	out := config.GenerateTemplate(config.TemplateOptions{})

	text := string(out)
	assert.Contains(t, text, "# snipreview configuration")
	assert.Contains(t, text, "min_severity: low")
	assert.NotContains(t, text, "\nrules:\n")

	cfg, err := config.FromYAML(out)
	require.NoError(t, err)
	assert.Equal(t, config.SeverityLow, cfg.MinSeverity)
}

func TestGenerateTemplateFull(t *testing.T) {
	out := config.GenerateTemplate(config.TemplateOptions{
		Full: true,
		Rules: []config.RuleInfo{
			{ID: "PY001", Name: "print-statements", Description: "Print calls", Languages: []string{"python"}, Enabled: true, Severity: config.SeverityLow},
			{ID: "JS005", Name: "no-eval", Description: "eval() usage", Languages: []string{"javascript"}, Enabled: true, Severity: config.SeverityCritical},
		},
	})

	text := string(out)
	assert.Less(t, strings.Index(text, "JS005:"), strings.Index(text, "PY001:"), "rules sorted by ID")
	assert.Contains(t, text, "# Languages: python")

	cfg, err := config.FromYAML(out)
	require.NoError(t, err)
	require.Contains(t, cfg.Rules, "JS005")
	assert.Equal(t, "critical", *cfg.Rules["JS005"].Severity)
	assert.True(t, *cfg.Rules["PY001"].Enabled)
}
