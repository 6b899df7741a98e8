package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTheater(r chi.Router, theaterHandler *adaptor.TheaterHandler) {
	r.Route("/api/theaters", func(r chi.Router) {
		// GET /api/theaters - List theaters (paginated)
		r.Get("/", theaterHandler.GetTheaters)

		// POST /api/theaters - Register a theater
		r.Post("/", theaterHandler.CreateTheater)

		// GET /api/theaters/{id} - Theater details
		r.Get("/{id}", theaterHandler.GetTheaterByID)

		// DELETE /api/theaters/{id} - Remove a theater
		r.Delete("/{id}", theaterHandler.DeleteTheater)
	})
}
