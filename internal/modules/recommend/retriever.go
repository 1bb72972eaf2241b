// README: Candidate retrieval (search + parallel detail fan-out).
package recommend

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"enkai/internal/places"
	"enkai/internal/types"
)

// Retriever queries the place-search provider and normalizes results into
// candidate records. Detail lookups fan out concurrently; a single failed
// lookup drops that candidate instead of aborting the batch.
type Retriever struct {
	places     places.Client
	cache      *Store
	maxResults int
	logger     zerolog.Logger
}

func NewRetriever(client places.Client, cache *Store, maxResults int, logger zerolog.Logger) *Retriever {
	return &Retriever{
		places:     client,
		cache:      cache,
		maxResults: maxResults,
		logger:     logger.With().Str("service", "retriever").Logger(),
	}
}

// Retrieve returns the candidates for location+cuisine together with their
// full detail records keyed by id. An empty result with a nil error means the
// provider found nothing.
func (r *Retriever) Retrieve(ctx context.Context, location, cuisine string) ([]Candidate, map[types.ID]*places.Detail, error) {
	if r.cache != nil {
		candidates, details, ok, err := r.cache.GetSearch(ctx, location, cuisine)
		if err != nil {
			// Cache failures degrade to a live search, never abort the run.
			r.logger.Warn().Err(err).Str("kind", string(KindCacheError)).Msg("retrieval cache read failed")
		} else if ok {
			return candidates, details, nil
		}
	}

	query := strings.TrimSpace(cuisine + " " + location)
	summaries, err := r.places.Search(ctx, places.SearchRequest{
		Query:      query,
		MaxResults: r.maxResults,
	})
	if err != nil {
		return nil, nil, classifyProviderError(err)
	}
	if len(summaries) == 0 {
		return nil, nil, nil
	}

	details := r.fetchDetails(ctx, summaries)
	if len(details) == 0 {
		return nil, nil, NewError(KindDataFetchError, errors.New("all detail lookups failed"))
	}

	candidates := make([]Candidate, 0, len(summaries))
	for _, s := range summaries {
		d, ok := details[s.ID]
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:              s.ID,
			Name:            s.Name,
			Address:         firstNonEmpty(d.Address, s.Address),
			Rating:          maxFloat32(d.Rating, s.Rating),
			UserRatingCount: maxInt(d.UserRatingsTotal, s.UserRatingsTotal),
			Types:           s.Types,
			PriceLevel:      firstPriceLevel(d.PriceLevel, s.PriceLevel),
			ReviewsSummary:  d.ReviewSummary,
		})
	}

	if r.cache != nil {
		if err := r.cache.SetSearch(ctx, location, cuisine, candidates, details); err != nil {
			r.logger.Warn().Err(err).Str("kind", string(KindCacheError)).Msg("retrieval cache write failed")
		}
	}
	return candidates, details, nil
}

// fetchDetails issues the per-place lookups concurrently and collects the
// successes. Failures are logged and the affected candidate is dropped.
func (r *Retriever) fetchDetails(ctx context.Context, summaries []places.Summary) map[types.ID]*places.Detail {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		details = make(map[types.ID]*places.Detail, len(summaries))
	)

	for _, s := range summaries {
		wg.Add(1)
		go func(s places.Summary) {
			defer wg.Done()
			d, err := r.places.Details(ctx, s.ID)
			if err != nil {
				r.logger.Warn().Err(err).Str("place_id", string(s.ID)).Str("name", s.Name).
					Str("kind", string(KindDataFetchError)).Msg("detail lookup failed, dropping candidate")
				return
			}
			mu.Lock()
			details[s.ID] = d
			mu.Unlock()
		}(s)
	}
	wg.Wait()
	return details
}

// classifyProviderError maps the places package's typed outcomes onto the
// pipeline taxonomy.
func classifyProviderError(err error) *Error {
	switch {
	case errors.Is(err, places.ErrRateLimited):
		return NewError(KindAPILimitExceeded, err)
	case errors.Is(err, places.ErrForbidden):
		return NewError(KindAPIUnavailable, err)
	case errors.Is(err, places.ErrBadRequest):
		return NewError(KindInvalidAPIResponse, err)
	case errors.Is(err, places.ErrNotFound):
		return NewError(KindInvalidLocation, err)
	default:
		return NewError(KindSearchFailed, err)
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstPriceLevel(a, b places.PriceLevel) places.PriceLevel {
	if a != places.PriceLevelUnspecified {
		return a
	}
	return b
}

func maxFloat32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
