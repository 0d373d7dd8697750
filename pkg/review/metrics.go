package review

import "strings"

const (
	maxCyclomatic = 10
	maxCognitive  = 15
)

// LineCount returns the number of "\n"-delimited lines in source.
// An empty source is one empty line.
func LineCount(source string) int {
	return strings.Count(source, "\n") + 1
}

// measure computes the metrics for source, drawing the complexity placeholders from r.
func measure(source string, r Rand) Metrics {
	return Metrics{
		LineCount:            LineCount(source),
		CodeSizeBytes:        len(source),
		CyclomaticComplexity: 1 + drawN(r, maxCyclomatic),
		CognitiveComplexity:  1 + drawN(r, maxCognitive),
	}
}
