package response

import (
	"time"

	"movie-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID         string               `json:"id"`
	OrderID    string               `json:"order_id"`
	UserID     string               `json:"user_id"`
	ShowID     string               `json:"show_id"`
	SeatLabels []string             `json:"seats"`
	TotalSeats int                  `json:"total_seats"`
	TotalPrice decimal.Decimal      `json:"total_price"`
	Status     entity.BookingStatus `json:"status"`
	PaymentRef string               `json:"payment_ref,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	ShowDetails ShowDetails `json:"show_details"`
}

type ShowDetails struct {
	MovieTitle  string          `json:"movie_title"`
	TheaterName string          `json:"theater_name"`
	StartsAt    time.Time       `json:"starts_at"`
	BasePrice   decimal.Decimal `json:"base_price"`
}
