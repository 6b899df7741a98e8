package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type TheaterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func TheaterToResponse(theater *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:        theater.ID.String(),
		Name:      theater.Name,
		City:      theater.City,
		Address:   theater.Address,
		CreatedAt: theater.CreatedAt,
	}
}
