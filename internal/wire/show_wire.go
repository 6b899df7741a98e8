package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShow(r chi.Router, showHandler *adaptor.ShowHandler) {
	r.Route("/api/shows", func(r chi.Router) {
		// GET /api/shows?movie_id=&theater_id= - List shows with filters
		r.Get("/", showHandler.GetShows)

		// POST /api/shows - Schedule a show and generate its seat grid
		r.Post("/", showHandler.CreateShow)

		// GET /api/shows/{id} - Show details with live availability
		r.Get("/{id}", showHandler.GetShowByID)

		// GET /api/shows/{id}/seats - Seat map, cached in Redis
		r.Get("/{id}/seats", showHandler.GetShowSeats)

		// DELETE /api/shows/{id} - Remove a show
		r.Delete("/{id}", showHandler.DeleteShow)
	})
}
