// README: Choice store — durable log in PostgreSQL, popularity counters in Redis.
package choice

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"enkai/internal/types"
)

const (
	popularityKey = "choice:popularity"
	nameHashKey   = "choice:names"
)

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

// Insert appends the choice to the durable log.
func (s *Store) Insert(ctx context.Context, c *Choice) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO restaurant_choices (place_id, name, chosen_at)
		VALUES ($1, $2, $3)`,
		string(c.PlaceID), c.Name, c.ChosenAt,
	)
	return err
}

// IncrementPopularity bumps the place's counter atomically and remembers its
// display name for the ranking.
func (s *Store) IncrementPopularity(ctx context.Context, placeID types.ID, name string) error {
	pipe := s.redis.Pipeline()
	pipe.ZIncrBy(ctx, popularityKey, 1, string(placeID))
	pipe.HSet(ctx, nameHashKey, string(placeID), name)
	_, err := pipe.Exec(ctx)
	return err
}

// TopPopular returns the n most chosen places, most popular first.
func (s *Store) TopPopular(ctx context.Context, n int) ([]PopularPlace, error) {
	entries, err := s.redis.ZRevRangeWithScores(ctx, popularityKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i], _ = e.Member.(string)
	}
	names, err := s.redis.HMGet(ctx, nameHashKey, ids...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]PopularPlace, 0, len(entries))
	for i, e := range entries {
		name := ""
		if i < len(names) {
			name, _ = names[i].(string)
		}
		out = append(out, PopularPlace{
			PlaceID: types.ID(ids[i]),
			Name:    name,
			Count:   int64(e.Score),
		})
	}
	return out, nil
}
