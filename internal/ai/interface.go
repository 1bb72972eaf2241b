package ai

import (
	"context"
)

// Provider defines the contract for the two LLM reasoning steps of the
// recommendation pipeline. Implementations are stateless text-in/JSON-out
// services; the pipeline never trusts their referential integrity and
// re-validates every returned identifier and name.
type Provider interface {
	// SelectSuitable narrows candidates to the ids most likely to host group
	// dining (large-party seating, private rooms, banquet courses, ease of
	// reservation). An empty result is a legitimate "no suitable venue"
	// outcome, not an error.
	SelectSuitable(ctx context.Context, criteria DiningContext, candidates []CandidateBrief) ([]string, error)

	// SelectAndAnalyze ranks the shortlisted candidates against the criteria,
	// picks the best ones, and produces a rationale plus a review-sentiment
	// analysis per pick, ordered best-first.
	SelectAndAnalyze(ctx context.Context, criteria DiningContext, candidates []CandidateDetail) ([]Pick, error)
}
