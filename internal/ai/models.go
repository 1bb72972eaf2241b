package ai

// DiningContext carries the user's dining criteria into the prompts.
// It mirrors the pipeline's criteria without importing it, keeping this
// package free of module dependencies.
type DiningContext struct {
	Date                 string
	Time                 string
	Budget               string
	Cuisine              string
	Location             string
	PurposeOfUse         string
	PrivateRoomRequested bool
}

// CandidateBrief is the compact per-candidate input for the suitability
// filter: identifier, name, and a bounded review summary only.
type CandidateBrief struct {
	ID            string
	Name          string
	ReviewSummary string
}

// CandidateDetail is the full per-candidate input for the select-and-analyze
// stage.
type CandidateDetail struct {
	ID              string
	Name            string
	Address         string
	Rating          float32
	UserRatingCount int
	PriceLevel      string
	ReviewSummary   string
}

// Suggestion is the model's pick plus its natural-language rationale.
type Suggestion struct {
	RestaurantName          string `json:"restaurantName"`
	RecommendationRationale string `json:"recommendationRationale"`
}

// KeyAspects holds the per-aspect review commentary.
type KeyAspects struct {
	Food     string `json:"food"`
	Service  string `json:"service"`
	Ambiance string `json:"ambiance"`
}

// Analysis is the structured review-sentiment output for one restaurant.
type Analysis struct {
	OverallSentiment      string     `json:"overallSentiment"`
	KeyAspects            KeyAspects `json:"keyAspects"`
	GroupDiningExperience string     `json:"groupDiningExperience"`
}

// Pick is one ranked entry of the select-and-analyze output.
type Pick struct {
	Suggestion Suggestion `json:"suggestion"`
	Analysis   Analysis   `json:"analysis"`
}

// shortlistResult is the schema the suitability filter must return.
type shortlistResult struct {
	PlaceIDs []string `json:"placeIds"`
}

// analyzeResult is the schema the select-and-analyze stage must return.
type analyzeResult struct {
	Picks []Pick `json:"picks"`
}
