// README: Pipeline tests with deterministic provider and LLM stubs.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"enkai/internal/ai"
	"enkai/internal/config"
	"enkai/internal/places"
	"enkai/internal/types"
)

// stubPlaces is a deterministic places.Client.
type stubPlaces struct {
	summaries []places.Summary
	details   map[types.ID]*places.Detail
	searchErr error
	detailErr map[types.ID]error
}

func (s *stubPlaces) Search(_ context.Context, req places.SearchRequest) ([]places.Summary, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	out := s.summaries
	if req.MaxResults > 0 && req.MaxResults < len(out) {
		out = out[:req.MaxResults]
	}
	return out, nil
}

func (s *stubPlaces) Details(_ context.Context, id types.ID) (*places.Detail, error) {
	if err, ok := s.detailErr[id]; ok {
		return nil, err
	}
	d, ok := s.details[id]
	if !ok {
		return nil, places.ErrNotFound
	}
	return d, nil
}

// stubAI is a deterministic ai.Provider recording its call counts.
type stubAI struct {
	mu             sync.Mutex
	shortlist      []string
	shortlistErr   error
	picks          []ai.Pick
	analyzeErr     error
	shortlistCalls int
	analyzeCalls   int
}

func (s *stubAI) SelectSuitable(context.Context, ai.DiningContext, []ai.CandidateBrief) ([]string, error) {
	s.mu.Lock()
	s.shortlistCalls++
	s.mu.Unlock()
	return s.shortlist, s.shortlistErr
}

func (s *stubAI) SelectAndAnalyze(context.Context, ai.DiningContext, []ai.CandidateDetail) ([]ai.Pick, error) {
	s.mu.Lock()
	s.analyzeCalls++
	s.mu.Unlock()
	return s.picks, s.analyzeErr
}

func testCriteria() Criteria {
	return Criteria{
		Date:                 "2026-09-05",
		Time:                 "19:00",
		Budget:               "5,000円～8,000円",
		Cuisine:              "焼肉",
		Location:             "渋谷",
		PurposeOfUse:         PurposeBanquet,
		PrivateRoomRequested: true,
	}
}

// world builds n places named 店1..店n with the given ratings, all with
// matching detail records.
func world(ratings []float32) *stubPlaces {
	s := &stubPlaces{details: map[types.ID]*places.Detail{}}
	for i, rating := range ratings {
		id := types.ID(fmt.Sprintf("p%d", i+1))
		sum := places.Summary{
			ID:               id,
			Name:             fmt.Sprintf("店%d", i+1),
			Address:          fmt.Sprintf("渋谷%d-1", i+1),
			Rating:           rating,
			UserRatingsTotal: 100,
			Types:            []string{"restaurant"},
		}
		s.summaries = append(s.summaries, sum)
		s.details[id] = &places.Detail{
			Summary:       sum,
			ReviewSummary: "個室あり。宴会コースが充実していて大人数でも快適。",
			PhotoURL:      "https://example.com/photo/" + string(id),
			GoogleMapsURI: "https://maps.example.com/" + string(id),
		}
	}
	return s
}

func pick(name string) ai.Pick {
	return ai.Pick{
		Suggestion: ai.Suggestion{RestaurantName: name, RecommendationRationale: "宴会向けの個室とコースが条件に合います。"},
		Analysis: ai.Analysis{
			OverallSentiment:      "positive",
			KeyAspects:            ai.KeyAspects{Food: "高評価", Service: "丁寧", Ambiance: "落ち着いた雰囲気"},
			GroupDiningExperience: "大人数の宴会に好評。",
		},
	}
}

func newTestService(client places.Client, provider ai.Provider, cfg config.RecommendConfig) *Service {
	logger := zerolog.Nop()
	retriever := NewRetriever(client, nil, 20, logger)
	aiCfg := config.AIConfig{Timeout: 2 * time.Second, MaxRetries: 2}
	return NewService(retriever, provider, cfg, aiCfg, logger)
}

func defaultConfig() config.RecommendConfig {
	return config.RecommendConfig{
		MinRating:         3.7,
		MinRatingCount:    30,
		MaxCandidates:     5,
		MaxSearchResults:  20,
		ExclusionKeywords: []string{"ラーメン", "bar"},
	}
}

// Scenario A: 10 places, 6 pass the heuristic filter, AI shortlists 4,
// analysis returns 3 → exactly 3 recommendations with non-empty rationales.
func TestPipelineHappyPath(t *testing.T) {
	// 4 of 10 fall below the rating threshold.
	client := world([]float32{4.2, 3.1, 4.5, 3.0, 4.0, 4.8, 2.9, 4.1, 3.2, 4.3})
	cfg := defaultConfig()
	cfg.MaxCandidates = 6

	provider := &stubAI{
		shortlist: []string{"p1", "p3", "p5", "p6"},
		picks:     []ai.Pick{pick("店6"), pick("店3"), pick("店1")},
	}
	svc := newTestService(client, provider, cfg)

	recs, err := svc.GetRestaurantSuggestion(context.Background(), testCriteria())
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	wantOrder := []string{"店6", "店3", "店1"}
	for i, r := range recs {
		if r.Suggestion.RestaurantName != wantOrder[i] {
			t.Errorf("rank %d: got %s, want %s", i, r.Suggestion.RestaurantName, wantOrder[i])
		}
		if r.Suggestion.RecommendationRationale == "" {
			t.Errorf("rank %d: empty rationale", i)
		}
		if r.PlaceID == "" || r.PhotoURL == "" || r.GoogleMapsURI == "" {
			t.Errorf("rank %d: presentation fields not attached: %+v", i, r)
		}
		if r.Criteria != testCriteria() {
			t.Errorf("rank %d: criteria not attached", i)
		}
	}
}

// Scenario B: zero search results → empty data, no error.
func TestPipelineEmptySearch(t *testing.T) {
	client := &stubPlaces{}
	provider := &stubAI{}
	svc := newTestService(client, provider, defaultConfig())

	recs, err := svc.GetRestaurantSuggestion(context.Background(), testCriteria())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("expected empty slice, got %v", recs)
	}
	if provider.shortlistCalls != 0 {
		t.Errorf("AI must not be called on empty search")
	}
}

// Scenario C: every candidate fails the rating threshold → typed
// NO_QUALIFIED_RESTAURANTS error.
func TestPipelineNoQualifiedRestaurants(t *testing.T) {
	client := world([]float32{2.0, 3.0, 3.5})
	provider := &stubAI{}
	svc := newTestService(client, provider, defaultConfig())

	recs, err := svc.GetRestaurantSuggestion(context.Background(), testCriteria())
	if recs != nil {
		t.Fatalf("expected no data, got %v", recs)
	}
	if KindOf(err) != KindNoQualifiedRestaurants {
		t.Fatalf("expected NO_QUALIFIED_RESTAURANTS, got %v", err)
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.UserMessage() == "" {
		t.Fatalf("expected user message on %v", err)
	}
}

// Scenario D: LLM fails through the whole retry budget → AI_TIMEOUT, no
// partial results.
func TestPipelineAITimeout(t *testing.T) {
	client := world([]float32{4.2, 4.5})
	provider := &stubAI{shortlistErr: context.DeadlineExceeded}
	svc := newTestService(client, provider, defaultConfig())

	recs, err := svc.GetRestaurantSuggestion(context.Background(), testCriteria())
	if recs != nil {
		t.Fatalf("expected no partial results, got %v", recs)
	}
	if KindOf(err) != KindAITimeout {
		t.Fatalf("expected AI_TIMEOUT, got %v", err)
	}
	if provider.shortlistCalls != 2 {
		t.Errorf("expected 2 attempts, got %d", provider.shortlistCalls)
	}
}

func TestPipelineAIFailureClassified(t *testing.T) {
	client := world([]float32{4.2, 4.5})
	provider := &stubAI{
		shortlist:  []string{"p1"},
		analyzeErr: errors.New("model unavailable"),
	}
	svc := newTestService(client, provider, defaultConfig())

	_, err := svc.GetRestaurantSuggestion(context.Background(), testCriteria())
	if KindOf(err) != KindAIAnalysisFailed {
		t.Fatalf("expected AI_ANALYSIS_FAILED, got %v", err)
	}
}

// Referential integrity: ids the model invented never reach the analyze stage.
func TestPipelineShortlistIntegrity(t *testing.T) {
	client := world([]float32{4.2, 4.5, 4.0})
	provider := &stubAI{
		shortlist: []string{"p2", "evil-id", "p1", ""},
		picks:     []ai.Pick{pick("店1"), pick("店2")},
	}
	svc := newTestService(client, provider, defaultConfig())

	recs, err := svc.GetRestaurantSuggestion(context.Background(), testCriteria())
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	valid := map[types.ID]bool{"p1": true, "p2": true}
	for _, r := range recs {
		if !valid[r.PlaceID] {
			t.Errorf("recommendation carries id outside the shortlist: %s", r.PlaceID)
		}
	}
}

// An empty AI shortlist is a legitimate outcome, not an error.
func TestPipelineEmptyShortlist(t *testing.T) {
	client := world([]float32{4.2, 4.5})
	provider := &stubAI{shortlist: nil}
	svc := newTestService(client, provider, defaultConfig())

	recs, err := svc.GetRestaurantSuggestion(context.Background(), testCriteria())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty result, got %v", recs)
	}
	if provider.analyzeCalls != 0 {
		t.Errorf("analyze stage must not run on an empty shortlist")
	}
}

// A single failed detail lookup drops that candidate, not the batch.
func TestPipelinePartialDetailFailure(t *testing.T) {
	client := world([]float32{4.2, 4.5, 4.1})
	client.detailErr = map[types.ID]error{"p2": errors.New("detail fetch failed")}

	provider := &stubAI{
		shortlist: []string{"p1", "p3"},
		picks:     []ai.Pick{pick("店1")},
	}
	svc := newTestService(client, provider, defaultConfig())

	recs, err := svc.GetRestaurantSuggestion(context.Background(), testCriteria())
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if len(recs) != 1 || recs[0].PlaceID != "p1" {
		t.Fatalf("expected the surviving candidate, got %v", recs)
	}
}

// All detail lookups failing blocks the run with DATA_FETCH_ERROR.
func TestPipelineAllDetailsFail(t *testing.T) {
	client := world([]float32{4.2, 4.5})
	client.detailErr = map[types.ID]error{
		"p1": errors.New("boom"),
		"p2": errors.New("boom"),
	}
	svc := newTestService(client, &stubAI{}, defaultConfig())

	_, err := svc.GetRestaurantSuggestion(context.Background(), testCriteria())
	if KindOf(err) != KindDataFetchError {
		t.Fatalf("expected DATA_FETCH_ERROR, got %v", err)
	}
}

func TestPipelineSearchErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"rate limited", fmt.Errorf("wrap: %w", places.ErrRateLimited), KindAPILimitExceeded},
		{"denied", fmt.Errorf("wrap: %w", places.ErrForbidden), KindAPIUnavailable},
		{"invalid request", fmt.Errorf("wrap: %w", places.ErrBadRequest), KindInvalidAPIResponse},
		{"not found", fmt.Errorf("wrap: %w", places.ErrNotFound), KindInvalidLocation},
		{"network", errors.New("connection reset"), KindSearchFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &stubPlaces{searchErr: tc.err}
			svc := newTestService(client, &stubAI{}, defaultConfig())
			_, err := svc.GetRestaurantSuggestion(context.Background(), testCriteria())
			if KindOf(err) != tc.want {
				t.Errorf("got %v, want kind %s", err, tc.want)
			}
		})
	}
}

func TestPipelineValidation(t *testing.T) {
	criteria := testCriteria()
	criteria.Cuisine = "  "
	svc := newTestService(&stubPlaces{}, &stubAI{}, defaultConfig())
	_, err := svc.GetRestaurantSuggestion(context.Background(), criteria)
	if KindOf(err) != KindValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

// Identical criteria and identical stubbed responses produce identical output.
func TestPipelineIdempotence(t *testing.T) {
	build := func() *Service {
		client := world([]float32{4.2, 4.5, 4.0})
		provider := &stubAI{
			shortlist: []string{"p1", "p2", "p3"},
			picks:     []ai.Pick{pick("店2"), pick("店1"), pick("店3")},
		}
		return newTestService(client, provider, defaultConfig())
	}

	first, err := build().GetRestaurantSuggestion(context.Background(), testCriteria())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := build().GetRestaurantSuggestion(context.Background(), testCriteria())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("pipeline is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
