package ai

import (
	"fmt"
	"strings"
)

const maxShortlistSize = 5

// buildCriteriaBlock renders the shared criteria section of both prompts.
func buildCriteriaBlock(c DiningContext) string {
	privateRoom := "not required"
	if c.PrivateRoomRequested {
		privateRoom = "required"
	}
	return fmt.Sprintf(`Dining criteria:
- Date: %s
- Time: %s
- Budget: %s
- Cuisine: %s
- Location: %s
- Purpose: %s
- Private room: %s`,
		c.Date, c.Time, c.Budget, c.Cuisine, c.Location, c.PurposeOfUse, privateRoom)
}

// buildShortlistPrompt constructs the group-suitability filter prompt.
func buildShortlistPrompt(criteria DiningContext, candidates []CandidateBrief) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Role: You are a restaurant concierge specialising in group dining (宴会・会食).

%s

Below are restaurant candidates with excerpts from their customer reviews.
Choose AT MOST %d placeIds of the restaurants most likely to host group dining well.
Positive indicators: seating for large parties, private rooms (個室), banquet
courses (宴会コース・飲み放題), and ease of reservation for groups.

RULES:
- Return ONLY placeIds that appear in the candidate list below. Never invent ids.
- If none of the candidates suit group dining, return an empty list.

Candidates:
`, buildCriteriaBlock(criteria), maxShortlistSize)

	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. placeId: %s\n   name: %s\n   reviews: %s\n", i+1, c.ID, c.Name, c.ReviewSummary)
	}
	return b.String()
}

// buildAnalyzePrompt constructs the select-and-analyze prompt.
func buildAnalyzePrompt(criteria DiningContext, candidates []CandidateDetail, topN int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Role: You are a restaurant concierge specialising in group dining (宴会・会食).

%s

Below are the full records of pre-screened restaurants. Rank them against the
criteria and pick the TOP %d, best first. For each pick produce:
- recommendationRationale: why this restaurant fits the criteria, in Japanese.
- analysis of the reviews: overallSentiment, commentary on food / service /
  ambiance, and a groupDiningExperience summary, all in Japanese.

RULES:
- restaurantName MUST exactly match the name of one candidate below.
- Base the analysis strictly on the provided reviews; do not invent facts.
- Order picks best-first.

Candidates:
`, buildCriteriaBlock(criteria), topN)

	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. name: %s\n   address: %s\n   rating: %.1f (%d reviews)\n   priceLevel: %s\n   reviews: %s\n",
			i+1, c.Name, c.Address, c.Rating, c.UserRatingCount, c.PriceLevel, c.ReviewSummary)
	}
	return b.String()
}
