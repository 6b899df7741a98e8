package request

type BookingUser struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

type CreateBookingRequest struct {
	User    BookingUser `json:"user" validate:"required"`
	ShowID  string      `json:"show_id" validate:"required,uuid4"`
	SeatIDs []string    `json:"seat_ids" validate:"required,min=1,dive,uuid4"`

	// TotalPrice is optional; when present it is only an integrity check
	// against the server-computed price, never the price that is stored.
	TotalPrice *float64 `json:"total_price,omitempty"`

	// PaymentRef is the opaque payment-authorization token obtained by the
	// caller before booking. Stored verbatim.
	PaymentRef string `json:"payment_ref,omitempty" validate:"omitempty,max=100"`
}
