package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TheaterService interface {
	GetTheaters(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TheaterResponse], error)
	GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterResponse, error)
	CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error)
	DeleteTheater(ctx context.Context, theaterID string) error
}

type theaterService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTheaterService(repo *repository.Repository, log *zap.Logger) TheaterService {
	return &theaterService{
		repo: repo,
		log:  log.With(zap.String("service", "theater")),
	}
}

func (s *theaterService) GetTheaters(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TheaterResponse], error) {
	theaters, err := s.repo.Theater.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get theaters", zap.Error(err))
		return nil, &StorageError{Op: "load theaters", Err: err}
	}

	total, err := s.repo.Theater.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count theaters", zap.Error(err))
		return nil, &StorageError{Op: "count theaters", Err: err}
	}

	theaterResponses := make([]response.TheaterResponse, len(theaters))
	for i, theater := range theaters {
		theaterResponses[i] = response.TheaterToResponse(theater)
	}

	return response.NewPaginatedResponse(theaterResponses, req.Page, req.PerPage, total), nil
}

func (s *theaterService) GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("%w: theater id %s", ErrInvalidRequest, theaterID)
	}

	theater, err := s.repo.Theater.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "load theater", Err: err}
	}
	if theater == nil {
		return nil, fmt.Errorf("%w: theater %s", ErrNotFound, theaterID)
	}

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create theater validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	theater := &entity.Theater{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    req.Name,
		City:    req.City,
		Address: req.Address,
	}

	if err := s.repo.Theater.Create(ctx, theater); err != nil {
		return nil, &StorageError{Op: "create theater", Err: err}
	}

	s.log.Info("Theater created",
		zap.String("theater_id", theater.ID.String()),
		zap.String("name", theater.Name),
	)

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) DeleteTheater(ctx context.Context, theaterID string) error {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return fmt.Errorf("%w: theater id %s", ErrInvalidRequest, theaterID)
	}

	theater, err := s.repo.Theater.FindByID(ctx, id)
	if err != nil {
		return &StorageError{Op: "load theater", Err: err}
	}
	if theater == nil {
		return fmt.Errorf("%w: theater %s", ErrNotFound, theaterID)
	}

	if err := s.repo.Theater.Delete(ctx, id); err != nil {
		return &StorageError{Op: "delete theater", Err: err}
	}

	s.log.Info("Theater deleted", zap.String("theater_id", theaterID))
	return nil
}
