// README: Heuristic group-suitability filter (rating thresholds + keyword exclusion).
package recommend

import (
	"strings"

	"enkai/internal/config"
)

// Filter removes candidates unsuited to group dining without touching the AI.
// Pure function: output is a subset of the input preserving relative order,
// capped at MaxCandidates. Policy, in order:
//  1. rating/count thresholds — missing values fail the check
//  2. exclusion keywords over name, venue types, and review summary
//  3. cap at MaxCandidates
func Filter(candidates []Candidate, cfg config.RecommendConfig) []Candidate {
	out := make([]Candidate, 0, cfg.MaxCandidates)
	for _, c := range candidates {
		if c.Rating < cfg.MinRating || c.UserRatingCount < cfg.MinRatingCount {
			continue
		}
		if matchesExclusion(c, cfg.ExclusionKeywords) {
			continue
		}
		out = append(out, c)
		if cfg.MaxCandidates > 0 && len(out) >= cfg.MaxCandidates {
			break
		}
	}
	return out
}

func matchesExclusion(c Candidate, keywords []string) bool {
	haystack := strings.ToLower(c.Name + " " + strings.Join(c.Types, " ") + " " + c.ReviewsSummary)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
