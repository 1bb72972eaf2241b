// README: Pipeline driver — retrieval, filtering, AI stages, assembly.
package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"enkai/internal/ai"
	"enkai/internal/config"
	"enkai/internal/types"
)

const aiRetryBaseDelay = 300 * time.Millisecond

// Service runs the recommendation pipeline. Every run is parameterized solely
// by its input criteria: no state is shared across concurrent requests, so
// runs are independently cancellable and safely re-entrant.
type Service struct {
	retriever  *Retriever
	ai         ai.Provider
	cfg        config.RecommendConfig
	aiTimeout  time.Duration
	maxRetries int
	logger     zerolog.Logger
}

func NewService(retriever *Retriever, provider ai.Provider, cfg config.RecommendConfig, aiCfg config.AIConfig, logger zerolog.Logger) *Service {
	timeout := aiCfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := aiCfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}
	return &Service{
		retriever:  retriever,
		ai:         provider,
		cfg:        cfg,
		aiTimeout:  timeout,
		maxRetries: retries,
		logger:     logger.With().Str("service", "recommend").Logger(),
	}
}

// GetRestaurantSuggestion is the pipeline entry point. It returns the ranked
// recommendations, an empty slice for the legitimate "nothing found" outcomes,
// or a classified *Error. It never returns partial results alongside an error.
func (s *Service) GetRestaurantSuggestion(ctx context.Context, criteria Criteria) ([]Recommendation, error) {
	if strings.TrimSpace(criteria.Location) == "" || strings.TrimSpace(criteria.Cuisine) == "" {
		return nil, NewError(KindValidationError, errors.New("location and cuisine are required"))
	}

	candidates, details, err := s.retriever.Retrieve(ctx, criteria.Location, criteria.Cuisine)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		s.logger.Info().Str("location", criteria.Location).Str("cuisine", criteria.Cuisine).
			Msg("search returned no places")
		return []Recommendation{}, nil
	}

	filtered := Filter(candidates, s.cfg)
	if len(filtered) == 0 {
		return nil, NewError(KindNoQualifiedRestaurants, errors.New("heuristic filter emptied the candidate set"))
	}

	shortlist, err := s.selectSuitable(ctx, criteria, filtered)
	if err != nil {
		return nil, err
	}
	if len(shortlist) == 0 {
		s.logger.Info().Int("filtered", len(filtered)).Msg("AI filter found no group-suitable venue")
		return []Recommendation{}, nil
	}

	picks, err := s.selectAndAnalyze(ctx, criteria, shortlist)
	if err != nil {
		return nil, err
	}
	if len(picks) == 0 {
		s.logger.Info().Int("shortlist", len(shortlist)).Msg("AI analysis produced no picks")
		return []Recommendation{}, nil
	}

	return Assemble(picks, shortlist, details, criteria, s.logger), nil
}

// selectSuitable runs the group-suitability AI filter and enforces
// referential integrity on its output: ids not present in the input set are
// discarded, never trusted.
func (s *Service) selectSuitable(ctx context.Context, criteria Criteria, filtered []Candidate) ([]Candidate, error) {
	briefs := make([]ai.CandidateBrief, len(filtered))
	for i, c := range filtered {
		briefs[i] = candidateBrief(c)
	}

	var ids []string
	err := s.callAI(ctx, "select_suitable", func(ctx context.Context) error {
		var err error
		ids, err = s.ai.SelectSuitable(ctx, diningContext(criteria), briefs)
		return err
	})
	if err != nil {
		return nil, err
	}

	inputIDs := make(map[types.ID]bool, len(filtered))
	for _, c := range filtered {
		inputIDs[c.ID] = true
	}
	selected := make(map[types.ID]bool, len(ids))
	for _, id := range ids {
		if !inputIDs[types.ID(id)] {
			s.logger.Warn().Str("place_id", id).Msg("AI filter returned an unknown id, discarding")
			continue
		}
		selected[types.ID(id)] = true
	}

	// Preserve the filter's relative order and cap at the shortlist size.
	shortlist := make([]Candidate, 0, s.cfg.MaxCandidates)
	for _, c := range filtered {
		if selected[c.ID] {
			shortlist = append(shortlist, c)
		}
	}
	if s.cfg.MaxCandidates > 0 && len(shortlist) > s.cfg.MaxCandidates {
		shortlist = shortlist[:s.cfg.MaxCandidates]
	}
	return shortlist, nil
}

// selectAndAnalyze runs the ranking/analysis AI stage on the shortlist's full
// detail records.
func (s *Service) selectAndAnalyze(ctx context.Context, criteria Criteria, shortlist []Candidate) ([]ai.Pick, error) {
	detailsIn := make([]ai.CandidateDetail, len(shortlist))
	for i, c := range shortlist {
		detailsIn[i] = candidateDetail(c)
	}

	var picks []ai.Pick
	err := s.callAI(ctx, "select_and_analyze", func(ctx context.Context) error {
		var err error
		picks, err = s.ai.SelectAndAnalyze(ctx, diningContext(criteria), detailsIn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return picks, nil
}

// callAI executes one blocking LLM call with a per-attempt timeout and a
// bounded retry budget using exponential backoff. Cancellation of the parent
// context stops further attempts immediately.
func (s *Service) callAI(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var lastErr error
	delay := aiRetryBaseDelay
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
		err := fn(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < s.maxRetries {
			s.logger.Warn().Err(err).Str("op", op).Int("attempt", attempt).Msg("ai call failed, retrying")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return NewError(KindAITimeout, ctx.Err())
			}
			delay *= 2
		}
	}

	if errors.Is(lastErr, context.DeadlineExceeded) || ctx.Err() != nil {
		return NewError(KindAITimeout, lastErr)
	}
	return NewError(KindAIAnalysisFailed, lastErr)
}
