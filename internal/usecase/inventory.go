package usecase

import (
	"context"

	"movie-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// showInventory owns the available-seat counter. Nothing else writes it;
// the counter moves only in lockstep with the seat ledger, under the same
// per-show lock.
type showInventory struct {
	shows repository.ShowRepository
	log   *zap.Logger
}

func newShowInventory(shows repository.ShowRepository, log *zap.Logger) *showInventory {
	return &showInventory{
		shows: shows,
		log:   log.With(zap.String("component", "show_inventory")),
	}
}

// Decrement subtracts n from the show's available-seat counter. With the
// ledger having just confirmed n free seats, a guard failure here means the
// counter and the ledger disagree; that is logged as a consistency fault and
// surfaced, never swallowed.
func (i *showInventory) Decrement(ctx context.Context, showID uuid.UUID, n int) error {
	applied, err := i.shows.AdjustAvailability(ctx, showID, -n)
	if err != nil {
		return &StorageError{Op: "decrement inventory", Err: err}
	}
	if !applied {
		i.log.Error("Inventory decrement refused, ledger and counter disagree",
			zap.String("show_id", showID.String()),
			zap.Int("requested", n),
		)
		return ErrInsufficient
	}
	return nil
}

// Increment returns n seats to the counter on cancellation or rollback. An
// attempt to push the counter past capacity is an internal-consistency
// fault and is surfaced rather than clamped.
func (i *showInventory) Increment(ctx context.Context, showID uuid.UUID, n int) error {
	applied, err := i.shows.AdjustAvailability(ctx, showID, n)
	if err != nil {
		return &StorageError{Op: "increment inventory", Err: err}
	}
	if !applied {
		i.log.Error("Inventory increment would exceed capacity",
			zap.String("show_id", showID.String()),
			zap.Int("requested", n),
		)
		return ErrInsufficient
	}
	return nil
}
