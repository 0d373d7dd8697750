// Package review provides the heuristic code-review engine: rules, advisors,
// the registry that holds them, and the Engine that turns a snippet into a Report.
//
// A review runs in fixed phases. Enabled rules whose language set matches the
// snippet each contribute at most one Issue. The engine then appends randomized
// complexity filler issues and, when requested, a probabilistic security finding.
// Issues below the minimum severity are dropped, and scores, the summary line and
// metrics are computed from what remains. Advisors contribute suggestions
// independently of the issues found.
//
// All randomness flows through the Rand interface and the clock is injected, so a
// seeded or zero Rand together with a fixed clock yields reproducible reports.
package review
