package usecase

import (
	"context"
	"testing"

	"movie-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMovieService_CRUD(t *testing.T) {
	env := newTestEnv(10, 50000)
	service := NewMovieService(env.repo, zap.NewNop())
	ctx := context.Background()

	created, err := service.CreateMovie(ctx, &request.CreateMovieRequest{
		Title:           "Laskar Pelangi",
		Genre:           "Drama",
		DurationMinutes: 124,
		Rating:          "PG",
	})
	require.NoError(t, err)
	assert.Equal(t, "Laskar Pelangi", created.Title)

	got, err := service.GetMovieByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	page, err := service.GetMovies(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)

	require.NoError(t, service.DeleteMovie(ctx, created.ID))

	_, err = service.GetMovieByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieService_Validation(t *testing.T) {
	env := newTestEnv(10, 50000)
	service := NewMovieService(env.repo, zap.NewNop())
	ctx := context.Background()

	_, err := service.CreateMovie(ctx, &request.CreateMovieRequest{Genre: "Drama"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = service.GetMovieByID(ctx, "junk")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	err = service.DeleteMovie(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTheaterService_CRUD(t *testing.T) {
	env := newTestEnv(10, 50000)
	service := NewTheaterService(env.repo, zap.NewNop())
	ctx := context.Background()

	created, err := service.CreateTheater(ctx, &request.CreateTheaterRequest{
		Name:    "Paris Van Java",
		City:    "Bandung",
		Address: "Jl. Sukajadi No. 137",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bandung", created.City)

	got, err := service.GetTheaterByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	page, err := service.GetTheaters(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	require.NoError(t, service.DeleteTheater(ctx, created.ID))

	_, err = service.GetTheaterByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
