package usecase

import (
	"movie-booking/internal/data/repository"
	"movie-booking/internal/queue"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Movie   MovieService
	Theater TheaterService
	Show    ShowService
	Booking BookingService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
	seatCache *cache.SeatCache,
	publisher queue.Publisher,
) *Service {
	return &Service{
		Movie:   NewMovieService(repo, log),
		Theater: NewTheaterService(repo, log),
		Show:    NewShowService(repo, seatCache, log),
		Booking: NewBookingService(repo, config, log, seatCache, publisher),
	}
}
