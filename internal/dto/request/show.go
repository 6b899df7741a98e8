package request

type CreateShowRequest struct {
	MovieID   string  `json:"movie_id" validate:"required,uuid4"`
	TheaterID string  `json:"theater_id" validate:"required,uuid4"`
	StartsAt  string  `json:"starts_at" validate:"required"` // RFC 3339
	Capacity  int     `json:"capacity" validate:"required,gt=0,max=500"`
	BasePrice float64 `json:"base_price" validate:"required,gt=0"`
}
