package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/api/movies", func(r chi.Router) {
		// GET /api/movies - List movies (paginated)
		r.Get("/", movieHandler.GetMovies)

		// POST /api/movies - Add a movie to the catalog
		r.Post("/", movieHandler.CreateMovie)

		// GET /api/movies/{id} - Movie details
		r.Get("/{id}", movieHandler.GetMovieByID)

		// DELETE /api/movies/{id} - Remove a movie
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})
}
