package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const seatsPerRow = 10

type ShowService interface {
	GetShows(ctx context.Context, movieID, theaterID string) ([]response.ShowResponse, error)
	GetShowByID(ctx context.Context, showID string) (*response.ShowResponse, error)
	GetShowSeats(ctx context.Context, showID string) (*response.ShowSeatsResponse, error)
	CreateShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowResponse, error)
	DeleteShow(ctx context.Context, showID string) error
}

type showService struct {
	repo      *repository.Repository
	seatCache *cache.SeatCache
	log       *zap.Logger
}

func NewShowService(repo *repository.Repository, seatCache *cache.SeatCache, log *zap.Logger) ShowService {
	return &showService{
		repo:      repo,
		seatCache: seatCache,
		log:       log.With(zap.String("service", "show")),
	}
}

func (s *showService) GetShows(ctx context.Context, movieID, theaterID string) ([]response.ShowResponse, error) {
	var movieFilter, theaterFilter *uuid.UUID

	if movieID != "" {
		id, err := uuid.Parse(movieID)
		if err != nil {
			return nil, fmt.Errorf("%w: movie id %s", ErrInvalidRequest, movieID)
		}
		movieFilter = &id
	}
	if theaterID != "" {
		id, err := uuid.Parse(theaterID)
		if err != nil {
			return nil, fmt.Errorf("%w: theater id %s", ErrInvalidRequest, theaterID)
		}
		theaterFilter = &id
	}

	shows, err := s.repo.Show.FindAll(ctx, movieFilter, theaterFilter)
	if err != nil {
		s.log.Error("Failed to get shows", zap.Error(err))
		return nil, &StorageError{Op: "load shows", Err: err}
	}

	showResponses := make([]response.ShowResponse, len(shows))
	for i, show := range shows {
		showResponses[i] = response.ShowToResponse(show)
	}
	return showResponses, nil
}

func (s *showService) GetShowByID(ctx context.Context, showID string) (*response.ShowResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("%w: show id %s", ErrInvalidRequest, showID)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "load show", Err: err}
	}
	if show == nil {
		return nil, fmt.Errorf("%w: show %s", ErrShowNotFound, showID)
	}

	resp := response.ShowToResponse(show)
	return &resp, nil
}

// GetShowSeats returns the seat map for a show, served from the Redis
// cache when a fresh copy exists. Bookings and cancellations invalidate
// the cached payload, so a hit is never staler than the cache TTL.
func (s *showService) GetShowSeats(ctx context.Context, showID string) (*response.ShowSeatsResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, fmt.Errorf("%w: show id %s", ErrInvalidRequest, showID)
	}

	if payload, ok := s.seatCache.Get(ctx, id); ok {
		var cached response.ShowSeatsResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		s.log.Warn("Discarding malformed seat cache entry", zap.String("show_id", showID))
		s.seatCache.Invalidate(ctx, id)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "load show", Err: err}
	}
	if show == nil {
		return nil, fmt.Errorf("%w: show %s", ErrShowNotFound, showID)
	}

	seats, err := s.repo.Seat.FindByShowID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get show seats", zap.String("show_id", showID), zap.Error(err))
		return nil, &StorageError{Op: "load seats", Err: err}
	}

	seatResponses := make([]response.SeatResponse, len(seats))
	for i, seat := range seats {
		seatResponses[i] = response.SeatToResponse(seat)
	}

	resp := &response.ShowSeatsResponse{
		ShowID: showID,
		Seats:  seatResponses,
	}

	if payload, err := json.Marshal(resp); err == nil {
		s.seatCache.Set(ctx, id, payload)
	}
	return resp, nil
}

func (s *showService) CreateShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create show validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("%w: movie id %s", ErrInvalidRequest, req.MovieID)
	}
	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("%w: theater id %s", ErrInvalidRequest, req.TheaterID)
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("%w: starts_at must be RFC 3339", ErrInvalidRequest)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, &StorageError{Op: "load movie", Err: err}
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie %s", ErrNotFound, req.MovieID)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return nil, &StorageError{Op: "load theater", Err: err}
	}
	if theater == nil {
		return nil, fmt.Errorf("%w: theater %s", ErrNotFound, req.TheaterID)
	}

	now := time.Now()
	show := &entity.Show{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:        movieID,
		TheaterID:      theaterID,
		StartsAt:       startsAt,
		Capacity:       req.Capacity,
		AvailableSeats: req.Capacity,
		BasePrice:      decimal.NewFromFloat(req.BasePrice).Round(2),
	}

	if err := s.repo.Show.Create(ctx, show); err != nil {
		return nil, &StorageError{Op: "create show", Err: err}
	}

	seats := generateSeatGrid(show.ID, req.Capacity, now)
	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		return nil, &StorageError{Op: "create seats", Err: err}
	}

	s.log.Info("Show created",
		zap.String("show_id", show.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.Int("capacity", req.Capacity),
	)

	resp := response.ShowToResponse(show)
	return &resp, nil
}

func (s *showService) DeleteShow(ctx context.Context, showID string) error {
	id, err := uuid.Parse(showID)
	if err != nil {
		return fmt.Errorf("%w: show id %s", ErrInvalidRequest, showID)
	}

	show, err := s.repo.Show.FindByID(ctx, id)
	if err != nil {
		return &StorageError{Op: "load show", Err: err}
	}
	if show == nil {
		return fmt.Errorf("%w: show %s", ErrShowNotFound, showID)
	}

	if err := s.repo.Show.Delete(ctx, id); err != nil {
		return &StorageError{Op: "delete show", Err: err}
	}

	s.seatCache.Invalidate(ctx, id)
	s.log.Info("Show deleted", zap.String("show_id", showID))
	return nil
}

// generateSeatGrid lays seats out in rows of ten, labelled A1..A10,
// B1..B10 and so on, with rows continuing AA, AB.. past Z.
func generateSeatGrid(showID uuid.UUID, capacity int, now time.Time) []*entity.Seat {
	seats := make([]*entity.Seat, 0, capacity)
	for i := 0; i < capacity; i++ {
		row := i / seatsPerRow
		number := i%seatsPerRow + 1
		seats = append(seats, &entity.Seat{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			ShowID: showID,
			Label:  fmt.Sprintf("%s%d", rowLabel(row), number),
			Booked: false,
		})
	}
	return seats
}

func rowLabel(row int) string {
	label := ""
	for row >= 0 {
		label = string(rune('A'+row%26)) + label
		row = row/26 - 1
	}
	return label
}
