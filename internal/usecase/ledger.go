package usecase

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationToken identifies a successfully reserved seat set within one
// booking transaction.
type ReservationToken struct {
	ID      uuid.UUID
	ShowID  uuid.UUID
	SeatIDs []uuid.UUID
}

// seatLedger is the authoritative booked/free state per seat. All seat
// mutations in the system go through TryReserve and Release; callers must
// hold the show's lock for the duration of a reserve/release pair.
type seatLedger struct {
	seats repository.SeatRepository
	log   *zap.Logger
}

func newSeatLedger(seats repository.SeatRepository, log *zap.Logger) *seatLedger {
	return &seatLedger{
		seats: seats,
		log:   log.With(zap.String("component", "seat_ledger")),
	}
}

// Verify checks that every seat in seatIDs exists, belongs to showID and is
// currently free, without touching any state. Seats are returned in request
// order.
func (l *seatLedger) Verify(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Seat, error) {
	found, err := l.seats.FindByIDs(ctx, seatIDs)
	if err != nil {
		return nil, &StorageError{Op: "load seats", Err: err}
	}

	byID := make(map[uuid.UUID]*entity.Seat, len(found))
	for _, seat := range found {
		byID[seat.ID] = seat
	}

	seats := make([]*entity.Seat, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		seat, ok := byID[seatID]
		if !ok {
			return nil, &SeatNotFoundError{SeatID: seatID}
		}
		if seat.ShowID != showID {
			return nil, fmt.Errorf("%w: seat %s belongs to another show", ErrInvalidRequest, seatID.String())
		}
		if seat.Booked {
			return nil, &SeatAlreadyBookedError{SeatID: seat.ID, Label: seat.Label}
		}
		seats = append(seats, seat)
	}

	return seats, nil
}

// TryReserve marks every seat in seatIDs booked as a single step, after
// re-validating the whole set. Any conflict leaves all seats untouched.
func (l *seatLedger) TryReserve(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID) (*ReservationToken, error) {
	if _, err := l.Verify(ctx, showID, seatIDs); err != nil {
		return nil, err
	}

	if err := l.seats.SetBooked(ctx, seatIDs, true); err != nil {
		return nil, &StorageError{Op: "reserve seats", Err: err}
	}

	return &ReservationToken{
		ID:      uuid.New(),
		ShowID:  showID,
		SeatIDs: seatIDs,
	}, nil
}

// Release marks the seats free again. Releasing an already-free seat is a
// no-op, which makes rollback and cancellation idempotent.
func (l *seatLedger) Release(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID) error {
	if err := l.seats.SetBooked(ctx, seatIDs, false); err != nil {
		l.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("show_id", showID.String()),
			zap.Int("count", len(seatIDs)),
		)
		return &StorageError{Op: "release seats", Err: err}
	}
	return nil
}

// rebook restores the booked flag after a partially-unwound cancellation.
// Only the coordinator's rollback paths use it.
func (l *seatLedger) rebook(ctx context.Context, seatIDs []uuid.UUID) error {
	if err := l.seats.SetBooked(ctx, seatIDs, true); err != nil {
		return &StorageError{Op: "rebook seats", Err: err}
	}
	return nil
}
