package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a committed seat reservation. The only status transition is
// active -> cancelled; bookings are never physically deleted while their
// seats remain booked under them.
type Booking struct {
	Base
	OrderID    string          `db:"order_id"`
	UserID     uuid.UUID       `db:"user_id"`
	ShowID     uuid.UUID       `db:"show_id"`
	TotalPrice decimal.Decimal `db:"total_price"`
	Status     BookingStatus   `db:"status"`
	PaymentRef string          `db:"payment_ref"`

	// Loaded alongside the booking row, one per reserved seat.
	SeatIDs []uuid.UUID
}
