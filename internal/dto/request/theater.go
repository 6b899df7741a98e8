package request

type CreateTheaterRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	City    string `json:"city" validate:"required,min=1,max=100"`
	Address string `json:"address" validate:"omitempty,max=300"`
}
