// README: Result assembly (pure join of AI output with retrieved metadata).
package recommend

import (
	"github.com/rs/zerolog"

	"enkai/internal/ai"
	"enkai/internal/places"
	"enkai/internal/types"
)

// maxRecommendations caps the assembled output; the AI stage is asked for the
// same number, so this is a defensive bound, not a truncation of good data.
const maxRecommendations = 3

// Assemble joins the AI picks back to the retrieved detail records by
// restaurant name and attaches the presentation fields. This is the only
// stage that touches photo and map links, keeping prompts and heuristics
// independent of rendering concerns. A pick whose restaurantName matches no
// candidate is logged and excluded; the list is returned shorter rather than
// backfilled, since no ranked rationale exists for a substitute.
func Assemble(picks []ai.Pick, candidates []Candidate, details map[types.ID]*places.Detail, criteria Criteria, logger zerolog.Logger) []Recommendation {
	byName := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byName[c.Name] = c
	}

	out := make([]Recommendation, 0, maxRecommendations)
	for _, p := range picks {
		if len(out) >= maxRecommendations {
			break
		}
		c, ok := byName[p.Suggestion.RestaurantName]
		if !ok {
			logger.Warn().Str("restaurant_name", p.Suggestion.RestaurantName).
				Msg("AI pick does not match any candidate name, excluding")
			continue
		}

		rec := Recommendation{
			Suggestion: Suggestion{
				RestaurantName:          p.Suggestion.RestaurantName,
				RecommendationRationale: p.Suggestion.RecommendationRationale,
			},
			Analysis: Analysis{
				OverallSentiment:      p.Analysis.OverallSentiment,
				KeyAspects:            p.Analysis.KeyAspects,
				GroupDiningExperience: p.Analysis.GroupDiningExperience,
			},
			Criteria:   criteria,
			Address:    c.Address,
			Rating:     c.Rating,
			PriceLevel: c.PriceLevel,
			PlaceID:    c.ID,
		}
		if d, ok := details[c.ID]; ok {
			rec.PhotoURL = d.PhotoURL
			rec.GoogleMapsURI = d.GoogleMapsURI
			rec.Website = d.Website
		}
		out = append(out, rec)
	}
	return out
}
