// README: Google Places implementation of the Client contract.
package places

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"googlemaps.github.io/maps"

	"enkai/internal/types"
)

const (
	photoEndpoint = "https://maps.googleapis.com/maps/api/place/photo"
	photoMaxWidth = 800

	// reviewSummaryMaxRunes bounds the text forwarded to the LLM prompts.
	reviewSummaryMaxRunes = 600
	reviewSummaryCount    = 3
)

// GoogleClient implements Client against the Google Maps Places API.
type GoogleClient struct {
	client   *maps.Client
	apiKey   string
	language string
	region   string
}

// NewGoogleClient creates a GoogleClient with the given API key.
func NewGoogleClient(apiKey, language, region string) (*GoogleClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleClient{client: client, apiKey: apiKey, language: language, region: region}, nil
}

// Search issues a free-text search. A ZERO_RESULTS status yields an empty
// slice with no error; other non-OK statuses are classified into the typed
// outcomes of this package.
func (g *GoogleClient) Search(ctx context.Context, req SearchRequest) ([]Summary, error) {
	r := &maps.TextSearchRequest{
		Query:    req.Query,
		Language: g.language,
		Region:   g.region,
	}
	if req.Language != "" {
		r.Language = req.Language
	}

	resp, err := g.client.TextSearch(ctx, r)
	if err != nil {
		return nil, classifyStatusError(err)
	}

	limit := req.MaxResults
	if limit <= 0 || limit > len(resp.Results) {
		limit = len(resp.Results)
	}

	out := make([]Summary, 0, limit)
	for _, result := range resp.Results[:limit] {
		out = append(out, Summary{
			ID:               types.ID(result.PlaceID),
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			UserRatingsTotal: result.UserRatingsTotal,
			Types:            result.Types,
			PriceLevel:       priceLevelFromInt(result.PriceLevel),
		})
	}
	return out, nil
}

// Details fetches the per-place record: reviews, photo, links, price level.
func (g *GoogleClient) Details(ctx context.Context, id types.ID) (*Detail, error) {
	r := &maps.PlaceDetailsRequest{
		PlaceID:  string(id),
		Language: g.language,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskPlaceID,
			maps.PlaceDetailsFieldMaskName,
			maps.PlaceDetailsFieldMaskFormattedAddress,
			maps.PlaceDetailsFieldMaskRatings,
			maps.PlaceDetailsFieldMaskUserRatingsTotal,
			maps.PlaceDetailsFieldMaskPriceLevel,
			maps.PlaceDetailsFieldMaskReviews,
			maps.PlaceDetailsFieldMaskPhotos,
			maps.PlaceDetailsFieldMaskURL,
			maps.PlaceDetailsFieldMaskWebsite,
			maps.PlaceDetailsFieldMaskTypes,
		},
	}

	resp, err := g.client.PlaceDetails(ctx, r)
	if err != nil {
		return nil, classifyStatusError(err)
	}

	d := &Detail{
		Summary: Summary{
			ID:               types.ID(resp.PlaceID),
			Name:             resp.Name,
			Address:          resp.FormattedAddress,
			Rating:           resp.Rating,
			UserRatingsTotal: resp.UserRatingsTotal,
			Types:            resp.Types,
			PriceLevel:       priceLevelFromInt(resp.PriceLevel),
		},
		ReviewSummary: summarizeReviews(resp.Reviews),
		Website:       resp.Website,
		GoogleMapsURI: resp.URL,
	}
	if d.ID == "" {
		d.ID = id
	}
	if len(resp.Photos) > 0 {
		d.PhotoURL = g.photoURL(resp.Photos[0].PhotoReference)
	}
	return d, nil
}

// photoURL builds a fetchable URL from a photo reference.
func (g *GoogleClient) photoURL(ref string) string {
	if ref == "" {
		return ""
	}
	q := url.Values{}
	q.Set("maxwidth", fmt.Sprintf("%d", photoMaxWidth))
	q.Set("photoreference", ref)
	q.Set("key", g.apiKey)
	return photoEndpoint + "?" + q.Encode()
}

// summarizeReviews reduces reviews to a short bounded text blob so downstream
// prompts stay compact.
func summarizeReviews(reviews []maps.PlaceReview) string {
	var parts []string
	for _, rv := range reviews {
		text := strings.TrimSpace(rv.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
		if len(parts) >= reviewSummaryCount {
			break
		}
	}
	joined := strings.Join(parts, " / ")
	runes := []rune(joined)
	if len(runes) > reviewSummaryMaxRunes {
		joined = string(runes[:reviewSummaryMaxRunes])
	}
	return joined
}

// classifyStatusError maps provider status strings embedded in the maps
// library's errors onto this package's typed outcomes.
func classifyStatusError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "OVER_QUERY_LIMIT"):
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	case strings.Contains(msg, "REQUEST_DENIED"):
		return fmt.Errorf("%w: %s", ErrForbidden, msg)
	case strings.Contains(msg, "INVALID_REQUEST"):
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	case strings.Contains(msg, "NOT_FOUND"):
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	default:
		return fmt.Errorf("places api error: %w", err)
	}
}

// priceLevelFromInt converts the legacy integer price band. Zero is treated
// as unspecified: the API reports 0 both for free venues and for venues with
// no price data, and restaurants are never free.
func priceLevelFromInt(level int) PriceLevel {
	switch level {
	case 1:
		return PriceLevelInexpensive
	case 2:
		return PriceLevelModerate
	case 3:
		return PriceLevelExpensive
	case 4:
		return PriceLevelVeryExpensive
	default:
		return PriceLevelUnspecified
	}
}
