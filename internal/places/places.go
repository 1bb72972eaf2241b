// README: Place-search provider boundary (types, client contract, typed outcomes).
package places

import (
	"context"
	"errors"

	"enkai/internal/types"
)

// PriceLevel is the provider's price band for a venue.
type PriceLevel string

const (
	PriceLevelUnspecified   PriceLevel = ""
	PriceLevelFree          PriceLevel = "PRICE_LEVEL_FREE"
	PriceLevelInexpensive   PriceLevel = "PRICE_LEVEL_INEXPENSIVE"
	PriceLevelModerate      PriceLevel = "PRICE_LEVEL_MODERATE"
	PriceLevelExpensive     PriceLevel = "PRICE_LEVEL_EXPENSIVE"
	PriceLevelVeryExpensive PriceLevel = "PRICE_LEVEL_VERY_EXPENSIVE"
)

// Summary is a place record as returned by a text search.
type Summary struct {
	ID               types.ID
	Name             string
	Address          string
	Rating           float32
	UserRatingsTotal int
	Types            []string
	PriceLevel       PriceLevel
}

// Detail extends Summary with the fields only a per-place lookup returns.
type Detail struct {
	Summary
	ReviewSummary string
	PhotoURL      string
	Website       string
	GoogleMapsURI string
}

// SearchRequest describes a free-text place search.
type SearchRequest struct {
	Query      string
	Language   string
	Region     string
	MaxResults int
}

// Typed provider outcomes. A zero-results search is not an error: Search
// returns an empty slice. Everything else maps onto one of these sentinels
// so callers can decide retry and user messaging per class.
var (
	ErrRateLimited = errors.New("places: query limit exceeded")
	ErrForbidden   = errors.New("places: request denied")
	ErrBadRequest  = errors.New("places: invalid request")
	ErrNotFound    = errors.New("places: place not found")
)

// Client is the search/detail provider consumed by the recommendation
// pipeline. Implementations must be safe for concurrent use.
type Client interface {
	Search(ctx context.Context, req SearchRequest) ([]Summary, error)
	Details(ctx context.Context, id types.ID) (*Detail, error)
}
