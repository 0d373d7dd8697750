package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/snipreview/pkg/review"
)

// Score thresholds for bar coloring.
const (
	scoreGoodFloor = 80
	scoreFairFloor = 60
	maxScore       = 100
)

// Bar geometry.
const (
	MinBarWidth     = 10
	MaxBarWidth     = 40
	scoreLabelWidth = 16
	barFilled       = "█"
	barEmpty        = "░"
)

// BarWidthFor picks a score bar width that fits a terminal of the given width.
func BarWidthFor(termWidth int) int {
	// label, value and indent take roughly 30 columns
	return min(max(termWidth-30, MinBarWidth), MaxBarWidth)
}

// scoreStyle picks the color band for a score.
func (s *Styles) scoreStyle(value int) func(...string) string {
	switch {
	case value >= scoreGoodFloor:
		return s.ScoreGood.Render
	case value >= scoreFairFloor:
		return s.ScoreFair.Render
	default:
		return s.ScorePoor.Render
	}
}

// FormatScoreBar renders one labeled 0-100 score as a bar of width cells.
func (s *Styles) FormatScoreBar(label string, value, width int) string {
	value = min(max(value, 0), maxScore)
	if width < MinBarWidth {
		width = MinBarWidth
	}
	filled := value * width / maxScore

	render := s.scoreStyle(value)
	bar := render(strings.Repeat(barFilled, filled)) + s.BarEmpty.Render(strings.Repeat(barEmpty, width-filled))

	return fmt.Sprintf("%s%-*s %s %s\n", issueIndent, scoreLabelWidth, label, bar, render(fmt.Sprintf("%3d", value)))
}

// FormatScores renders the four score bars of a report.
func (s *Styles) FormatScores(scores review.ScoreSet, width int) string {
	var builder strings.Builder
	builder.WriteString(s.FormatScoreBar("Quality", scores.Quality, width))
	builder.WriteString(s.FormatScoreBar("Security", scores.Security, width))
	builder.WriteString(s.FormatScoreBar("Performance", scores.Performance, width))
	builder.WriteString(s.FormatScoreBar("Maintainability", scores.Maintainability, width))
	return builder.String()
}

// FormatMetrics renders the size and complexity figures on one line.
func (s *Styles) FormatMetrics(m review.Metrics) string {
	return issueIndent + s.Dim.Render(fmt.Sprintf(
		"%d lines, %d bytes, cyclomatic %d, cognitive %d",
		m.LineCount, m.CodeSizeBytes, m.CyclomaticComplexity, m.CognitiveComplexity,
	)) + "\n"
}
