// README: Recommendation pipeline domain model.
package recommend

import (
	"enkai/internal/ai"
	"enkai/internal/places"
	"enkai/internal/types"
)

// PurposeOfUse categorises the occasion the group is dining for.
type PurposeOfUse string

const (
	PurposeBanquet     PurposeOfUse = "banquet"      // 宴会・飲み会
	PurposeBusinessDin PurposeOfUse = "business"     // 接待・会食
	PurposeCelebration PurposeOfUse = "celebration"  // お祝い
	PurposeCasual      PurposeOfUse = "casual"       // 気軽な集まり
	PurposeFarewell    PurposeOfUse = "farewell"     // 歓送迎会
)

// Criteria is the canonical dining request. Immutable once constructed;
// created once per user request and never persisted by the pipeline.
type Criteria struct {
	Date                 string       `json:"date" binding:"required"`
	Time                 string       `json:"time" binding:"required"`
	Budget               string       `json:"budget" binding:"required"`
	Cuisine              string       `json:"cuisine" binding:"required"`
	Location             string       `json:"location" binding:"required"`
	PurposeOfUse         PurposeOfUse `json:"purposeOfUse" binding:"required"`
	PrivateRoomRequested bool         `json:"privateRoomRequested"`
}

// Candidate is a place record after retrieval. ID is the stable join key
// across all later stages; narrowing stages must preserve it unchanged.
type Candidate struct {
	ID              types.ID
	Name            string
	Address         string
	Rating          float32
	UserRatingCount int
	Types           []string
	PriceLevel      places.PriceLevel
	ReviewsSummary  string
}

// Suggestion is the AI's pick with its rationale.
type Suggestion struct {
	RestaurantName          string `json:"restaurantName"`
	RecommendationRationale string `json:"recommendationRationale"`
}

// Analysis is the AI's review-sentiment breakdown for one restaurant.
type Analysis struct {
	OverallSentiment      string        `json:"overallSentiment"`
	KeyAspects            ai.KeyAspects `json:"keyAspects"`
	GroupDiningExperience string        `json:"groupDiningExperience"`
}

// Recommendation is the terminal, presentation-ready entity returned to the
// caller. PlaceID always equals an id from the AI shortlist.
type Recommendation struct {
	Suggestion    Suggestion        `json:"suggestion"`
	Analysis      Analysis          `json:"analysis"`
	Criteria      Criteria          `json:"criteria"`
	PhotoURL      string            `json:"photoUrl,omitempty"`
	Address       string            `json:"address,omitempty"`
	Rating        float32           `json:"rating,omitempty"`
	PriceLevel    places.PriceLevel `json:"priceLevel,omitempty"`
	GoogleMapsURI string            `json:"googleMapsUri,omitempty"`
	Website       string            `json:"website,omitempty"`
	PlaceID       types.ID          `json:"placeId"`
}

// diningContext converts criteria into the prompt-facing form.
func diningContext(c Criteria) ai.DiningContext {
	return ai.DiningContext{
		Date:                 c.Date,
		Time:                 c.Time,
		Budget:               c.Budget,
		Cuisine:              c.Cuisine,
		Location:             c.Location,
		PurposeOfUse:         string(c.PurposeOfUse),
		PrivateRoomRequested: c.PrivateRoomRequested,
	}
}

func candidateBrief(c Candidate) ai.CandidateBrief {
	return ai.CandidateBrief{
		ID:            string(c.ID),
		Name:          c.Name,
		ReviewSummary: c.ReviewsSummary,
	}
}

func candidateDetail(c Candidate) ai.CandidateDetail {
	return ai.CandidateDetail{
		ID:              string(c.ID),
		Name:            c.Name,
		Address:         c.Address,
		Rating:          c.Rating,
		UserRatingCount: c.UserRatingCount,
		PriceLevel:      string(c.PriceLevel),
		ReviewSummary:   c.ReviewsSummary,
	}
}
