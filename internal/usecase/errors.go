package usecase

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Machine-readable error codes surfaced by the HTTP layer. Every booking
// failure maps to exactly one of these.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeShowNotFound   = "SHOW_NOT_FOUND"
	CodeSeatNotFound   = "SEAT_NOT_FOUND"
	CodeAlreadyBooked  = "SEAT_ALREADY_BOOKED"
	CodeInsufficient   = "INSUFFICIENT_INVENTORY"
	CodePriceMismatch  = "PRICE_MISMATCH"
	CodeStorageError   = "STORAGE_ERROR"
	CodeContention     = "CONTENTION"
	CodeNotFound       = "NOT_FOUND"
)

var (
	// ErrInvalidRequest covers malformed input: empty or duplicate seat
	// sets, seats mixed across shows, unparseable ids.
	ErrInvalidRequest = errors.New("invalid request")

	ErrShowNotFound = errors.New("show not found")

	// ErrInsufficient means the seat ledger and the show inventory
	// disagree. The invariant available = capacity - booked was violated
	// somewhere; this is an internal-consistency fault, not a user error.
	ErrInsufficient = errors.New("seat ledger and show inventory disagree")

	ErrPriceMismatch = errors.New("client total does not match server-side price")

	// ErrContention is returned when the per-show lock could not be taken
	// within the retry budget.
	ErrContention = errors.New("show is under heavy contention, retry later")

	// ErrNotFound covers lookups of records that do not exist, including
	// cancellation of an unknown or already-cancelled booking.
	ErrNotFound = errors.New("record not found")
)

// SeatNotFoundError reports a requested seat id that does not exist under
// the requested show.
type SeatNotFoundError struct {
	SeatID uuid.UUID
}

func (e *SeatNotFoundError) Error() string {
	return fmt.Sprintf("seat %s not found", e.SeatID.String())
}

// SeatAlreadyBookedError reports the first requested seat that is already
// booked. The whole reservation is aborted with no state change.
type SeatAlreadyBookedError struct {
	SeatID uuid.UUID
	Label  string
}

func (e *SeatAlreadyBookedError) Error() string {
	return fmt.Sprintf("seat %s is already booked", e.Label)
}

// StorageError wraps a persistence-layer failure. By the time it surfaces,
// all ledger and inventory effects of the attempt have been rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ErrorCode maps any error returned by the booking services to its
// machine-readable code. Unknown errors map to CodeStorageError.
func ErrorCode(err error) string {
	var seatNotFound *SeatNotFoundError
	var alreadyBooked *SeatAlreadyBookedError

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrShowNotFound):
		return CodeShowNotFound
	case errors.As(err, &seatNotFound):
		return CodeSeatNotFound
	case errors.As(err, &alreadyBooked):
		return CodeAlreadyBooked
	case errors.Is(err, ErrInsufficient):
		return CodeInsufficient
	case errors.Is(err, ErrPriceMismatch):
		return CodePriceMismatch
	case errors.Is(err, ErrContention):
		return CodeContention
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	default:
		return CodeStorageError
	}
}
