package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/snipreview/pkg/config"
)

func TestSeverityRank(t *testing.T) {
	tests := []struct {
		severity config.Severity
		want     int
	}{
		{config.SeverityLow, 1},
		{config.SeverityMedium, 2},
		{config.SeverityHigh, 3},
		{config.SeverityCritical, 4},
		{config.Severity("bogus"), 0},
		{config.Severity(""), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.severity.Rank())
		})
	}
}

func TestSeverityAtLeast(t *testing.T) {
	assert.True(t, config.SeverityCritical.AtLeast(config.SeverityHigh))
	assert.True(t, config.SeverityHigh.AtLeast(config.SeverityHigh))
	assert.False(t, config.SeverityMedium.AtLeast(config.SeverityHigh))
	assert.True(t, config.SeverityLow.AtLeast(config.SeverityLow))
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input   string
		want    config.Severity
		wantErr bool
	}{
		{"", config.SeverityLow, false},
		{"low", config.SeverityLow, false},
		{"MEDIUM", config.SeverityMedium, false},
		{" high ", config.SeverityHigh, false},
		{"critical", config.SeverityCritical, false},
		{"warning", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := config.ParseSeverity(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeveritiesAscending(t *testing.T) {
	sevs := config.Severities()
	require.Len(t, sevs, 4)
	for i := 1; i < len(sevs); i++ {
		assert.Less(t, sevs[i-1].Rank(), sevs[i].Rank())
	}
}

func TestEffectiveMinSeverity(t *testing.T) {
	var nilCfg *config.Config
	assert.Equal(t, config.SeverityLow, nilCfg.EffectiveMinSeverity())
	assert.Equal(t, config.SeverityLow, (&config.Config{}).EffectiveMinSeverity())
	assert.Equal(t, config.SeverityHigh, (&config.Config{MinSeverity: config.SeverityHigh}).EffectiveMinSeverity())
}

func TestFormatRuleID(t *testing.T) {
	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "JS005", "no-eval", "no-eval"},
		{"id format", config.RuleFormatID, "JS005", "no-eval", "JS005"},
		{"combined format", config.RuleFormatCombined, "JS005", "no-eval", "JS005/no-eval"},
		{"name format empty name", config.RuleFormatName, "JS005", "", "JS005"},
		{"default to name", config.RuleFormat(""), "JS005", "no-eval", "no-eval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName))
		})
	}
}
