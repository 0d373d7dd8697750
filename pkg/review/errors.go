package review

import "errors"

// ErrAnalysisUnavailable is returned when the review could not be carried out,
// for example because the modeled analysis delay was aborted.
// Malformed input never produces it.
var ErrAnalysisUnavailable = errors.New("analysis unavailable")
