// Package queue defines the booking events published to the message broker
// and the AMQP publisher that delivers them.
package queue

// BookingConfirmedEvent is published after a booking commits. It carries
// enough for downstream consumers (notifications, analytics) to act without
// querying the primary database.
type BookingConfirmedEvent struct {
	BookingID  string   `json:"booking_id"`
	OrderID    string   `json:"order_id"`
	UserID     string   `json:"user_id"`
	ShowID     string   `json:"show_id"`
	SeatLabels []string `json:"seats"`
	TotalPrice string   `json:"total_price"`
	CreatedAt  string   `json:"created_at"`
}

// BookingCancelledEvent is published after a cancellation commits.
type BookingCancelledEvent struct {
	BookingID   string   `json:"booking_id"`
	OrderID     string   `json:"order_id"`
	ShowID      string   `json:"show_id"`
	SeatLabels  []string `json:"seats"`
	CancelledAt string   `json:"cancelled_at"`
}
