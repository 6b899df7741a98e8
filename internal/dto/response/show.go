package response

import (
	"time"

	"movie-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ShowResponse struct {
	ID             string          `json:"id"`
	MovieID        string          `json:"movie_id"`
	TheaterID      string          `json:"theater_id"`
	StartsAt       time.Time       `json:"starts_at"`
	Capacity       int             `json:"capacity"`
	AvailableSeats int             `json:"available_seats"`
	BasePrice      decimal.Decimal `json:"base_price"`
}

type SeatResponse struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Booked bool   `json:"booked"`
}

type ShowSeatsResponse struct {
	ShowID string         `json:"show_id"`
	Seats  []SeatResponse `json:"seats"`
}

func ShowToResponse(show *entity.Show) ShowResponse {
	return ShowResponse{
		ID:             show.ID.String(),
		MovieID:        show.MovieID.String(),
		TheaterID:      show.TheaterID.String(),
		StartsAt:       show.StartsAt,
		Capacity:       show.Capacity,
		AvailableSeats: show.AvailableSeats,
		BasePrice:      show.BasePrice,
	}
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:     seat.ID.String(),
		Label:  seat.Label,
		Booked: seat.Booked,
	}
}
