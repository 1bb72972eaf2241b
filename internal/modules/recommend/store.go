// README: Retrieval cache backed by Redis.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"enkai/internal/places"
	"enkai/internal/types"
)

const searchKeyPrefix = "recommend:search:%s:%s"

// cachedRetrieval is the serialized result of one retrieval run: the
// candidates and the detail records keyed by place id.
type cachedRetrieval struct {
	Candidates []Candidate                 `json:"candidates"`
	Details    map[types.ID]*places.Detail `json:"details"`
}

// Store caches retrieval results so repeated searches for the same
// location+cuisine within the TTL skip the provider round-trips.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

// GetSearch returns the cached retrieval for location+cuisine, or ok=false on
// a miss.
func (s *Store) GetSearch(ctx context.Context, location, cuisine string) ([]Candidate, map[types.ID]*places.Detail, bool, error) {
	val, err := s.redis.Get(ctx, searchKey(location, cuisine)).Result()
	if err == redis.Nil {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, err
	}
	var cached cachedRetrieval
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, nil, false, err
	}
	return cached.Candidates, cached.Details, true, nil
}

// SetSearch stores a retrieval result with the configured TTL.
func (s *Store) SetSearch(ctx context.Context, location, cuisine string, candidates []Candidate, details map[types.ID]*places.Detail) error {
	data, err := json.Marshal(cachedRetrieval{Candidates: candidates, Details: details})
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, searchKey(location, cuisine), data, s.ttl).Err()
}

func searchKey(location, cuisine string) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return fmt.Sprintf(searchKeyPrefix, norm(location), norm(cuisine))
}
