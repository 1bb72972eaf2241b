// README: Choice service — records picks and serves the popularity ranking.
package choice

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"enkai/internal/types"
)

type Service struct {
	store  *Store
	logger zerolog.Logger
}

func NewService(store *Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("service", "choice").Logger(),
	}
}

type RecordCommand struct {
	PlaceID types.ID
	Name    string
}

// Record logs the user's pick durably and bumps the popularity counter.
// The counter increment is best-effort: a Redis failure is logged but never
// fails the request once the durable log write succeeded.
func (s *Service) Record(ctx context.Context, cmd RecordCommand) error {
	if strings.TrimSpace(string(cmd.PlaceID)) == "" || strings.TrimSpace(cmd.Name) == "" {
		return ErrBadRequest
	}

	c := &Choice{
		PlaceID:  cmd.PlaceID,
		Name:     cmd.Name,
		ChosenAt: time.Now(),
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return err
	}
	if err := s.store.IncrementPopularity(ctx, cmd.PlaceID, cmd.Name); err != nil {
		s.logger.Warn().Err(err).Str("place_id", string(cmd.PlaceID)).
			Msg("popularity increment failed")
	}
	return nil
}

// TopPopular returns the n most chosen restaurants.
func (s *Service) TopPopular(ctx context.Context, n int) ([]PopularPlace, error) {
	if n <= 0 {
		n = 10
	}
	return s.store.TopPopular(ctx, n)
}
