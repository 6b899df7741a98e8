package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Genre           string    `json:"genre"`
	DurationMinutes int       `json:"duration_minutes"`
	Rating          string    `json:"rating,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:              movie.ID.String(),
		Title:           movie.Title,
		Genre:           movie.Genre,
		DurationMinutes: movie.DurationMinutes,
		Rating:          movie.Rating,
		CreatedAt:       movie.CreatedAt,
	}
}
