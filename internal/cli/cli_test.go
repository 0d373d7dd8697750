package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/snipreview/internal/cli"
	_ "github.com/yaklabco/snipreview/pkg/review/rules" // Register rules
)

func testBuildInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "snipreview", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())

	for _, name := range []string{"review", "rules", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, subCmd.Name())
		}
	}
}

func TestReviewCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	reviewCmd, _, err := cmd.Find([]string{"review"})
	require.NoError(t, err)

	expectedFlags := []string{
		"format", "min-severity", "security-scan", "lang", "stdin", "seed", "latency",
		"jobs", "ignore", "enable", "disable", "strict", "no-context", "output",
		"rule-format", "sort",
	}
	for _, flagName := range expectedFlags {
		assert.NotNil(t, reviewCmd.Flags().Lookup(flagName), "expected flag %q on review", flagName)
	}

	assert.Equal(t, "name", reviewCmd.Flags().Lookup("rule-format").DefValue)
	assert.Contains(t, reviewCmd.Flags().Lookup("format").Usage, "sarif")
}

func TestReviewCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	reviewCmd, _, err := cmd.Find([]string{"review"})
	require.NoError(t, err)

	assert.NoError(t, reviewCmd.Args(reviewCmd, []string{"posts/hooks.md", "snippets/", "app.py"}))
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	for _, flagName := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flagName), "expected global flag %q", flagName)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestWithDefaultCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no args", nil, []string{"review"}},
		{"path only", []string{"posts/"}, []string{"review", "posts/"}},
		{"flags and path", []string{"--format", "json", "posts/"}, []string{"review", "--format", "json", "posts/"}},
		{"explicit review", []string{"review", "posts/"}, []string{"review", "posts/"}},
		{"other subcommand", []string{"rules", "--format", "json"}, []string{"rules", "--format", "json"}},
		{"help command", []string{"help"}, []string{"help"}},
		{"help flag", []string{"--help"}, []string{"--help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testBuildInfo())
			assert.Equal(t, tt.want, cli.WithDefaultCommand(cmd, tt.args))
		})
	}
}

func TestHelpShowsExitCodes(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"review", "--help", "--color", "never"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "--min-severity")
	assert.Contains(t, output, "Exit Codes:")
	assert.Contains(t, output, "64  invalid usage")
}

func TestHelpShowsEnvironment(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"review", "--help", "--color", "never"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "Environment:")
	assert.Contains(t, output, "SNIPREVIEW_MIN_SEVERITY")
	assert.Contains(t, output, "[$SNIPREVIEW_SEED]", "flags name the variable that backs them")
	assert.Less(t, strings.Index(output, "Environment:"), strings.Index(output, "Exit Codes:"))
}

func TestHelpEnvironmentOnlyOnReview(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"rules", "--help", "--color", "never"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.NotContains(t, out.String(), "Environment:")
}
