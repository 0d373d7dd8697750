package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format names an output encoding for review results.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatSummary Format = "summary"
)

// formats lists every supported Format in help order.
var formats = []Format{FormatText, FormatJSON, FormatSARIF, FormatSummary}

// ParseFormat maps a flag or config value onto a Format. Matching ignores
// case and surrounding space; the empty string selects text.
func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(value)))
	if format == "" {
		return FormatText, nil
	}
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: %s", value, strings.Join(FormatNames(), ", "))
	}
	return format, nil
}

// FormatNames returns the supported format names.
func FormatNames() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	return slices.Contains(formats, f)
}
