package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - The atomic seat-booking transaction
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings?email= - Booking history for a user
		r.Get("/", bookingHandler.GetUserBookings)

		// GET /api/bookings/{id} - Booking details with show info
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id}/cancel - Compensating cancellation
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
