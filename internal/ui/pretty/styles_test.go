package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/snipreview/internal/ui/pretty"
)

func TestNewStyles_NoColorIsPlain(t *testing.T) {
	styles := pretty.NewStyles(false)

	for name, render := range map[string]func(...string) string{
		"error":    styles.Error.Render,
		"critical": styles.Critical.Render,
		"bold":     styles.Bold.Render,
		"success":  styles.Success.Render,
		"header":   styles.TableHeader.Render,
		"bar":      styles.ScoreGood.Render,
	} {
		assert.Equal(t, "JS005", render("JS005"), name)
	}
}

func TestNewStyles_ColorKeepsText(t *testing.T) {
	styles := pretty.NewStyles(true)

	// lipgloss may drop escape codes off a TTY; the text itself must survive.
	assert.Contains(t, styles.Critical.Render("critical"), "critical")
	assert.Contains(t, styles.Suggestion.Render("use useEffect cleanup"), "use useEffect cleanup")
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		mode   string
		writer *bytes.Buffer
		want   bool
	}{
		{mode: "always", writer: &buf, want: true},
		{mode: "never", writer: &buf, want: false},
		{mode: "auto", writer: &buf, want: false},
		{mode: "", writer: &buf, want: false},
		{mode: "sometimes", writer: &buf, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer), "mode %q", tt.mode)
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always overrides NO_COLOR")
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, pretty.DefaultWidth, pretty.TerminalWidth(&buf))
}
