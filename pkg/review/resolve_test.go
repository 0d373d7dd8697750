package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/snipreview/pkg/config"
)

func resolvedIDs(resolved []ResolvedRule) []string {
	ids := make([]string, 0, len(resolved))
	for _, rr := range resolved {
		ids = append(ids, rr.Rule.ID())
	}
	return ids
}

func newResolveRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(newMockRule("R1", "first"))
	reg.Register(newMockRule("R2", "second"))
	reg.Register(newMockRule("R3", "third"))
	reg.RegisterAlias("legacy-third", "R3")
	return reg
}

func TestResolveRules_Defaults(t *testing.T) {
	t.Parallel()

	resolved := ResolveRules(newResolveRegistry(), nil)

	assert.Equal(t, []string{"R1", "R2", "R3"}, resolvedIDs(resolved))
	for _, rr := range resolved {
		assert.Equal(t, config.SeverityMedium, rr.Severity)
		assert.Nil(t, rr.Config)
	}
}

func TestResolveRules_DisableByAnyKey(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.DisableRules = []string{"R1", "second", "legacy-third", "unknown"}

	assert.Empty(t, ResolveRules(newResolveRegistry(), cfg))
}

func TestResolveRules_FlagsOverrideFile(t *testing.T) {
	t.Parallel()

	off := false
	on := true

	cfg := config.NewConfig()
	cfg.Rules["R1"] = config.RuleConfig{Enabled: &off}
	cfg.Rules["R2"] = config.RuleConfig{Enabled: &on}
	cfg.EnableRules = []string{"first"}
	cfg.DisableRules = []string{"R2"}

	assert.Equal(t, []string{"R1", "R3"}, resolvedIDs(ResolveRules(newResolveRegistry(), cfg)))
}

func TestResolveRules_SeverityOverride(t *testing.T) {
	t.Parallel()

	high := "HIGH"
	bogus := "severe"

	cfg := config.NewConfig()
	cfg.Rules["R1"] = config.RuleConfig{Severity: &high}
	cfg.Rules["R2"] = config.RuleConfig{Severity: &bogus}

	resolved := ResolveRules(newResolveRegistry(), cfg)
	require.Len(t, resolved, 3)

	assert.Equal(t, config.SeverityHigh, resolved[0].Severity)
	assert.Equal(t, config.SeverityMedium, resolved[1].Severity, "invalid severity keeps the default")
}

func TestResolveRules_CanonicalKeyWins(t *testing.T) {
	t.Parallel()

	low := "low"
	critical := "critical"

	cfg := config.NewConfig()
	cfg.Rules["legacy-third"] = config.RuleConfig{
		Severity: &low,
		Options:  map[string]any{"a": 1, "b": 1},
	}
	cfg.Rules["R3"] = config.RuleConfig{
		Severity: &critical,
		Options:  map[string]any{"b": 2},
	}

	resolved := ResolveRules(newResolveRegistry(), cfg)
	require.Len(t, resolved, 3)

	r3 := resolved[2]
	assert.Equal(t, config.SeverityCritical, r3.Severity)
	require.NotNil(t, r3.Config)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, r3.Config.Options)
}
