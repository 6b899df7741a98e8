package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeatLedger_ReserveAndRelease(t *testing.T) {
	env := newTestEnv(10, 50000)
	ledger := newSeatLedger(env.seats, zap.NewNop())
	ctx := context.Background()

	token, err := ledger.TryReserve(ctx, env.show.ID, env.seatIDs[:3])
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, env.show.ID, token.ShowID)
	assert.Equal(t, 3, env.seats.bookedCount(env.show.ID))

	// A second reservation over the same seats fails whole.
	_, err = ledger.TryReserve(ctx, env.show.ID, env.seatIDs[2:5])
	var alreadyBooked *SeatAlreadyBookedError
	require.ErrorAs(t, err, &alreadyBooked)
	assert.Equal(t, 3, env.seats.bookedCount(env.show.ID))

	require.NoError(t, ledger.Release(ctx, env.show.ID, token.SeatIDs))
	assert.Equal(t, 0, env.seats.bookedCount(env.show.ID))
}

func TestSeatLedger_ReleaseIdempotent(t *testing.T) {
	env := newTestEnv(10, 50000)
	ledger := newSeatLedger(env.seats, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, ledger.Release(ctx, env.show.ID, env.seatIDs[:2]))
	require.NoError(t, ledger.Release(ctx, env.show.ID, env.seatIDs[:2]))
	assert.Equal(t, 0, env.seats.bookedCount(env.show.ID))
}

func TestSeatLedger_VerifyMissingSeat(t *testing.T) {
	env := newTestEnv(10, 50000)
	ledger := newSeatLedger(env.seats, zap.NewNop())

	phantom := uuid.New()
	_, err := ledger.Verify(context.Background(), env.show.ID, []uuid.UUID{phantom})

	var notFound *SeatNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, phantom, notFound.SeatID)
}

func TestSeatLedger_VerifyWrongShow(t *testing.T) {
	env := newTestEnv(10, 50000)
	ledger := newSeatLedger(env.seats, zap.NewNop())

	_, err := ledger.Verify(context.Background(), uuid.New(), env.seatIDs[:1])
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSeatLedger_VerifyKeepsRequestOrder(t *testing.T) {
	env := newTestEnv(10, 50000)
	ledger := newSeatLedger(env.seats, zap.NewNop())

	reversed := []uuid.UUID{env.seatIDs[2], env.seatIDs[0], env.seatIDs[1]}
	seats, err := ledger.Verify(context.Background(), env.show.ID, reversed)
	require.NoError(t, err)
	require.Len(t, seats, 3)
	assert.Equal(t, "A3", seats[0].Label)
	assert.Equal(t, "A1", seats[1].Label)
	assert.Equal(t, "A2", seats[2].Label)
}

func TestShowInventory_GuardsRange(t *testing.T) {
	env := newTestEnv(10, 50000)
	inventory := newShowInventory(env.shows, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, inventory.Decrement(ctx, env.show.ID, 10))

	// Counter is empty; any further decrement is a consistency fault.
	err := inventory.Decrement(ctx, env.show.ID, 1)
	assert.ErrorIs(t, err, ErrInsufficient)

	require.NoError(t, inventory.Increment(ctx, env.show.ID, 10))

	// Counter is full; an increment past capacity is refused.
	err = inventory.Increment(ctx, env.show.ID, 1)
	assert.ErrorIs(t, err, ErrInsufficient)
}
