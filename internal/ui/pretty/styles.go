// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is the output width assumed when the writer is not a terminal.
const DefaultWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Kind styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Severity styles
	Critical lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
	Low      lipgloss.Style

	// Issue components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Category   lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	Example    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Score styles
	ScoreGood lipgloss.Style
	ScoreFair lipgloss.Style
	ScorePoor lipgloss.Style
	BarEmpty  lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles builds the report palette. With color disabled every style is
// the zero lipgloss.Style and renders text unchanged.
func NewStyles(colorEnabled bool) *Styles {
	p := palette{enabled: colorEnabled}

	return &Styles{
		Error:   p.fg("9").Bold(colorEnabled),
		Warning: p.fg("11").Bold(colorEnabled),
		Info:    p.fg("12").Bold(colorEnabled),

		Critical: p.fg("15").Background(p.color("1")).Bold(colorEnabled),
		High:     p.fg("9"),
		Medium:   p.fg("214"),
		Low:      p.fg("8"),

		FilePath:   p.bold(),
		Location:   p.fg("8"),
		RuleID:     p.fg("8"),
		Category:   p.fg("13"),
		Message:    lipgloss.NewStyle(),
		Suggestion: p.fg("10").Italic(colorEnabled),
		Example:    p.fg("6"),
		SourceLine: p.fg("7"),
		Caret:      p.fg("9"),

		ScoreGood: p.fg("10"),
		ScoreFair: p.fg("11"),
		ScorePoor: p.fg("9"),
		BarEmpty:  p.fg("8"),

		SummaryTitle: p.bold(),
		SummaryValue: lipgloss.NewStyle(),
		Success:      p.fg("10").Bold(colorEnabled),
		Failure:      p.fg("9").Bold(colorEnabled),

		TableHeader:    p.fg("7").Bold(colorEnabled),
		TableErrorRow:  p.fg("9"),
		TableWarnRow:   p.fg("11"),
		TableSeparator: p.fg("8"),

		Dim:  p.fg("8"),
		Bold: p.bold(),
	}
}

// palette hands out ANSI 256 styles, or plain ones when color is off.
type palette struct {
	enabled bool
}

func (p palette) color(code string) lipgloss.TerminalColor {
	if !p.enabled {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(code)
}

func (p palette) fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.color(code))
}

func (p palette) bold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(p.enabled)
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column count of the terminal behind writer,
// or DefaultWidth when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}
