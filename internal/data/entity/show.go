package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Show is a scheduled screening of a movie in a theater. AvailableSeats is
// owned by the show inventory and always equals Capacity minus the number of
// booked seats for this show.
type Show struct {
	Base
	MovieID        uuid.UUID       `db:"movie_id"`
	TheaterID      uuid.UUID       `db:"theater_id"`
	StartsAt       time.Time       `db:"starts_at"`
	Capacity       int             `db:"capacity"`
	AvailableSeats int             `db:"available_seats"`
	BasePrice      decimal.Decimal `db:"base_price"`
}
