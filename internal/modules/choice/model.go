// README: User choice records and popularity ranking types.
package choice

import (
	"errors"
	"time"

	"enkai/internal/types"
)

var ErrBadRequest = errors.New("bad request")

// Choice records that a user picked one of the recommended restaurants.
type Choice struct {
	ID       int64
	PlaceID  types.ID
	Name     string
	ChosenAt time.Time
}

// PopularPlace is one entry of the popularity ranking.
type PopularPlace struct {
	PlaceID types.ID `json:"placeId"`
	Name    string   `json:"name"`
	Count   int64    `json:"count"`
}
