package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/queue"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking is the single entry point of the seat-booking
	// transaction. It either commits fully, returning the new booking, or
	// fails with no seat, inventory or booking mutation.
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// CancelBooking is the compensating transaction: it frees the
	// booking's seats, restores the inventory counter and flips the
	// booking to cancelled. Cancelling an unknown or already-cancelled
	// booking returns ErrNotFound.
	CancelBooking(ctx context.Context, bookingID string) error

	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
	GetUserBookings(ctx context.Context, email string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo      *repository.Repository
	ledger    *seatLedger
	inventory *showInventory
	locks     *showLocks
	pricing   PricePolicy
	seatCache *cache.SeatCache
	publisher queue.Publisher
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
	seatCache *cache.SeatCache,
	publisher queue.Publisher,
) BookingService {
	return &bookingService{
		repo:      repo,
		ledger:    newSeatLedger(repo.Seat, log),
		inventory: newShowInventory(repo.Show, log),
		locks: newShowLocks(
			config.Booking.LockRetries,
			time.Duration(config.Booking.LockBackoffMS)*time.Millisecond,
		),
		pricing:   NewBasePricePolicy(),
		seatCache: seatCache,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request shape
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, utils.FormatValidationErrors(errs))
	}

	showID, err := uuid.Parse(req.ShowID)
	if err != nil {
		return nil, fmt.Errorf("%w: show id %s", ErrInvalidRequest, req.ShowID)
	}

	seatIDs, err := parseSeatIDs(req.SeatIDs)
	if err != nil {
		return nil, err
	}

	// Resolve or create the user; the directory is idempotent on email.
	user, err := s.repo.User.FindOrCreateByEmail(ctx, req.User.Email, req.User.Name, req.User.Phone)
	if err != nil {
		return nil, &StorageError{Op: "resolve user", Err: err}
	}

	// Everything from here to commit is serialized per show. Requests for
	// other shows proceed independently.
	release, err := s.locks.Acquire(ctx, showID)
	if err != nil {
		return nil, err
	}
	defer release()

	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, &StorageError{Op: "load show", Err: err}
	}
	if show == nil {
		return nil, fmt.Errorf("%w: %s", ErrShowNotFound, req.ShowID)
	}

	// Server-side price, checked against the optional client total before
	// any state is touched.
	seats, err := s.ledger.Verify(ctx, showID, seatIDs)
	if err != nil {
		return nil, err
	}

	total := s.pricing.PriceFor(show, seats)
	if req.TotalPrice != nil {
		clientTotal := decimal.NewFromFloat(*req.TotalPrice)
		if clientTotal.Sub(total).Abs().GreaterThan(priceTolerance) {
			return nil, fmt.Errorf("%w: client sent %s, server computed %s",
				ErrPriceMismatch, clientTotal.StringFixed(2), total.StringFixed(2))
		}
	}

	token, err := s.ledger.TryReserve(ctx, showID, seatIDs)
	if err != nil {
		return nil, err
	}

	// The reservation is live; from here the attempt must reach a definite
	// commit or full rollback even if the caller's deadline fires.
	store := context.WithoutCancel(ctx)

	if err := s.inventory.Decrement(store, showID, len(seatIDs)); err != nil {
		if relErr := s.ledger.Release(store, showID, token.SeatIDs); relErr != nil {
			s.log.Error("Rollback of seat reservation failed",
				zap.Error(relErr),
				zap.String("show_id", showID.String()),
			)
		}
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:    utils.GenerateOrderID(),
		UserID:     user.ID,
		ShowID:     showID,
		TotalPrice: total,
		Status:     entity.BookingStatusActive,
		PaymentRef: req.PaymentRef,
		SeatIDs:    seatIDs,
	}

	if err := s.repo.Booking.Create(store, booking); err != nil {
		s.rollbackReservation(store, showID, token.SeatIDs)
		return nil, &StorageError{Op: "persist booking", Err: err}
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("show_id", showID.String()),
		zap.Int("seat_count", len(seatIDs)),
		zap.String("total_price", total.StringFixed(2)),
	)

	seatLabels := make([]string, len(seats))
	for i, seat := range seats {
		seatLabels[i] = seat.Label
	}

	s.seatCache.Invalidate(store, showID)
	s.publishConfirmed(booking, seatLabels)

	return bookingToResponse(booking, seatLabels), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: booking id %s", ErrInvalidRequest, bookingID)
	}

	// First fetch is only to learn the show; the authoritative status check
	// happens under the show lock.
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return &StorageError{Op: "load booking", Err: err}
	}
	if booking == nil {
		return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	release, err := s.locks.Acquire(ctx, booking.ShowID)
	if err != nil {
		return err
	}
	defer release()

	booking, err = s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return &StorageError{Op: "load booking", Err: err}
	}
	if booking == nil || booking.Status != entity.BookingStatusActive {
		return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	// Best effort, for the cancellation event only.
	seatLabels, _ := s.seatLabels(ctx, booking.SeatIDs)

	store := context.WithoutCancel(ctx)

	if err := s.ledger.Release(store, booking.ShowID, booking.SeatIDs); err != nil {
		return err
	}

	if err := s.inventory.Increment(store, booking.ShowID, len(booking.SeatIDs)); err != nil {
		// Put the seats back so the ledger and counter stay in agreement.
		if rbErr := s.ledger.rebook(store, booking.SeatIDs); rbErr != nil {
			s.log.Error("Rollback of seat release failed",
				zap.Error(rbErr),
				zap.String("booking_id", bookingID),
			)
		}
		return err
	}

	if err := s.repo.Booking.UpdateStatus(store, booking.ID, entity.BookingStatusCancelled); err != nil {
		if rbErr := s.ledger.rebook(store, booking.SeatIDs); rbErr != nil {
			s.log.Error("Rollback of seat release failed",
				zap.Error(rbErr),
				zap.String("booking_id", bookingID),
			)
		}
		if rbErr := s.inventory.Decrement(store, booking.ShowID, len(booking.SeatIDs)); rbErr != nil {
			s.log.Error("Rollback of inventory increment failed",
				zap.Error(rbErr),
				zap.String("booking_id", bookingID),
			)
		}
		return &StorageError{Op: "mark booking cancelled", Err: err}
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
		zap.Int("seat_count", len(booking.SeatIDs)),
	)

	s.seatCache.Invalidate(store, booking.ShowID)
	s.publishCancelled(booking, seatLabels)

	return nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking id %s", ErrInvalidRequest, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "load booking", Err: err}
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	seatLabels, err := s.seatLabels(ctx, booking.SeatIDs)
	if err != nil {
		return nil, err
	}

	var details response.ShowDetails
	show, _ := s.repo.Show.FindByID(ctx, booking.ShowID)
	if show != nil {
		details.StartsAt = show.StartsAt
		details.BasePrice = show.BasePrice

		movie, _ := s.repo.Movie.FindByID(ctx, show.MovieID)
		if movie != nil {
			details.MovieTitle = movie.Title
		}

		theater, _ := s.repo.Theater.FindByID(ctx, show.TheaterID)
		if theater != nil {
			details.TheaterName = theater.Name
		}
	}

	return &response.BookingDetailResponse{
		BookingResponse: *bookingToResponse(booking, seatLabels),
		ShowDetails:     details,
	}, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, email string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, &StorageError{Op: "load user", Err: err}
	}
	if user == nil {
		return response.NewPaginatedResponse([]response.BookingResponse{}, req.Page, req.PerPage, 0), nil
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, user.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, &StorageError{Op: "load bookings", Err: err}
	}

	total, err := s.repo.Booking.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, &StorageError{Op: "count bookings", Err: err}
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		seatLabels, err := s.seatLabels(ctx, booking.SeatIDs)
		if err != nil {
			return nil, err
		}
		bookingResponses[i] = *bookingToResponse(booking, seatLabels)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

// ==================== HELPERS ====================

// parseSeatIDs rejects unparseable and duplicate seat ids before any state
// is touched.
func parseSeatIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no seats requested", ErrInvalidRequest)
	}

	seatIDs := make([]uuid.UUID, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: seat id %s", ErrInvalidRequest, s)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate seat %s", ErrInvalidRequest, s)
		}
		seen[id] = true
		seatIDs[i] = id
	}

	return seatIDs, nil
}

// rollbackReservation undoes a reserve+decrement pair after a persistence
// failure. Failures here are logged loudly; they mean manual repair.
func (s *bookingService) rollbackReservation(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID) {
	if err := s.ledger.Release(ctx, showID, seatIDs); err != nil {
		s.log.Error("Rollback of seat reservation failed",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
	}
	if err := s.inventory.Increment(ctx, showID, len(seatIDs)); err != nil {
		s.log.Error("Rollback of inventory decrement failed",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
	}
}

func (s *bookingService) seatLabels(ctx context.Context, seatIDs []uuid.UUID) ([]string, error) {
	seats, err := s.repo.Seat.FindByIDs(ctx, seatIDs)
	if err != nil {
		return nil, &StorageError{Op: "load seats", Err: err}
	}

	byID := make(map[uuid.UUID]string, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat.Label
	}

	labels := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		labels[i] = byID[id]
	}
	return labels, nil
}

func (s *bookingService) publishConfirmed(booking *entity.Booking, seatLabels []string) {
	if s.publisher == nil {
		return
	}

	event := queue.BookingConfirmedEvent{
		BookingID:  booking.ID.String(),
		OrderID:    booking.OrderID,
		UserID:     booking.UserID.String(),
		ShowID:     booking.ShowID.String(),
		SeatLabels: seatLabels,
		TotalPrice: booking.TotalPrice.StringFixed(2),
		CreatedAt:  booking.CreatedAt.UTC().Format(time.RFC3339),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
			s.log.Warn("Booking confirmed event not delivered",
				zap.Error(err),
				zap.String("booking_id", event.BookingID),
			)
		}
	}()
}

func (s *bookingService) publishCancelled(booking *entity.Booking, seatLabels []string) {
	if s.publisher == nil {
		return
	}

	event := queue.BookingCancelledEvent{
		BookingID:   booking.ID.String(),
		OrderID:     booking.OrderID,
		ShowID:      booking.ShowID.String(),
		SeatLabels:  seatLabels,
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishBookingCancelled(ctx, event); err != nil {
			s.log.Warn("Booking cancelled event not delivered",
				zap.Error(err),
				zap.String("booking_id", event.BookingID),
			)
		}
	}()
}

func bookingToResponse(booking *entity.Booking, seatLabels []string) *response.BookingResponse {
	return &response.BookingResponse{
		ID:         booking.ID.String(),
		OrderID:    booking.OrderID,
		UserID:     booking.UserID.String(),
		ShowID:     booking.ShowID.String(),
		SeatLabels: seatLabels,
		TotalSeats: len(booking.SeatIDs),
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		PaymentRef: booking.PaymentRef,
		CreatedAt:  booking.CreatedAt,
	}
}
