package usecase

import (
	"movie-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

// priceTolerance is the rounding slack allowed between a client-supplied
// total and the server-side price.
var priceTolerance = decimal.NewFromFloat(0.01)

// PricePolicy computes the server-side price of a seat selection. The
// booking coordinator never trusts a client-supplied total; a client value
// is only an optional integrity check against this policy's result.
type PricePolicy interface {
	PriceFor(show *entity.Show, seats []*entity.Seat) decimal.Decimal
}

// basePricePolicy charges the show's base price per seat.
type basePricePolicy struct{}

func NewBasePricePolicy() PricePolicy {
	return basePricePolicy{}
}

func (basePricePolicy) PriceFor(show *entity.Show, seats []*entity.Seat) decimal.Decimal {
	return show.BasePrice.Mul(decimal.NewFromInt(int64(len(seats)))).Round(2)
}
