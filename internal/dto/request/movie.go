package request

type CreateMovieRequest struct {
	Title           string `json:"title" validate:"required,min=1,max=200"`
	Genre           string `json:"genre" validate:"required,min=2,max=50"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	Rating          string `json:"rating" validate:"omitempty,max=10"`
}
