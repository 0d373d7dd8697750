package review

import "github.com/yaklabco/snipreview/pkg/config"

// Score weights and random penalty bounds (inclusive).
const (
	qualityPerIssue       = 5
	securityPerIssue      = 20
	performancePerIssue   = 15
	qualityMaxPenalty     = 20
	securityMaxPenalty    = 15
	performanceMaxPenalty = 25
	scoreMax              = 100
)

// Score computes the ScoreSet for an already filtered issue list.
// Penalties are drawn in the order quality, security, performance.
func Score(issues []Issue, r Rand) ScoreSet {
	filtered := Report{Issues: issues}
	security := filtered.CountByCategory(config.CategorySecurity)
	performance := filtered.CountByCategory(config.CategoryPerformance)

	scores := ScoreSet{
		Quality:     clamp(scoreMax-qualityPerIssue*len(issues)-drawN(r, qualityMaxPenalty+1), 0, scoreMax),
		Security:    clamp(scoreMax-securityPerIssue*security-drawN(r, securityMaxPenalty+1), 0, scoreMax),
		Performance: clamp(scoreMax-performancePerIssue*performance-drawN(r, performanceMaxPenalty+1), 0, scoreMax),
	}
	scores.Maintainability = (scores.Quality + scores.Performance) / 2

	return scores
}

func clamp(x, lo, hi int) int {
	return max(lo, min(hi, x))
}
