package repository

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowRepository interface {
	Create(ctx context.Context, show *entity.Show) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error)
	FindAll(ctx context.Context, movieID, theaterID *uuid.UUID) ([]*entity.Show, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustAvailability adds delta (which may be negative) to the show's
	// available-seat counter. The update is guarded so the counter can never
	// leave the [0, capacity] range; it reports whether the guarded update
	// was applied. Only the show inventory calls this.
	AdjustAvailability(ctx context.Context, id uuid.UUID, delta int) (bool, error)
}

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

func (r *showRepository) Create(ctx context.Context, show *entity.Show) error {
	query := `
		INSERT INTO shows (id, movie_id, theater_id, starts_at, capacity, available_seats, base_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		show.ID,
		show.MovieID,
		show.TheaterID,
		show.StartsAt,
		show.Capacity,
		show.AvailableSeats,
		show.BasePrice,
		show.CreatedAt,
		show.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create show",
			zap.Error(err),
			zap.String("movie_id", show.MovieID.String()),
			zap.String("theater_id", show.TheaterID.String()),
		)
		return fmt.Errorf("create show: %w", err)
	}

	return nil
}

func (r *showRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	query := `
		SELECT id, movie_id, theater_id, starts_at, capacity, available_seats, base_price, created_at, updated_at
		FROM shows
		WHERE id = $1
	`

	var show entity.Show
	err := r.db.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.MovieID,
		&show.TheaterID,
		&show.StartsAt,
		&show.Capacity,
		&show.AvailableSeats,
		&show.BasePrice,
		&show.CreatedAt,
		&show.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show by ID",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, fmt.Errorf("find show by ID %s: %w", id.String(), err)
	}

	return &show, nil
}

func (r *showRepository) FindAll(ctx context.Context, movieID, theaterID *uuid.UUID) ([]*entity.Show, error) {
	query := `
		SELECT id, movie_id, theater_id, starts_at, capacity, available_seats, base_price, created_at, updated_at
		FROM shows
		WHERE ($1::uuid IS NULL OR movie_id = $1)
		  AND ($2::uuid IS NULL OR theater_id = $2)
		ORDER BY starts_at
	`

	rows, err := r.db.Query(ctx, query, movieID, theaterID)
	if err != nil {
		r.log.Error("Failed to find shows", zap.Error(err))
		return nil, fmt.Errorf("find shows: %w", err)
	}
	defer rows.Close()

	var shows []*entity.Show
	for rows.Next() {
		var show entity.Show
		err := rows.Scan(
			&show.ID,
			&show.MovieID,
			&show.TheaterID,
			&show.StartsAt,
			&show.Capacity,
			&show.AvailableSeats,
			&show.BasePrice,
			&show.CreatedAt,
			&show.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan show row", zap.Error(err))
			return nil, fmt.Errorf("scan show row: %w", err)
		}
		shows = append(shows, &show)
	}

	return shows, nil
}

func (r *showRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM shows WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete show",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return fmt.Errorf("delete show %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("show %s not found", id.String())
	}

	return nil
}

func (r *showRepository) AdjustAvailability(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	query := `
		UPDATE shows
		SET available_seats = available_seats + $2, updated_at = NOW()
		WHERE id = $1
		  AND available_seats + $2 >= 0
		  AND available_seats + $2 <= capacity
	`

	result, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		r.log.Error("Failed to adjust show availability",
			zap.Error(err),
			zap.String("show_id", id.String()),
			zap.Int("delta", delta),
		)
		return false, fmt.Errorf("adjust availability of show %s by %d: %w", id.String(), delta, err)
	}

	return result.RowsAffected() > 0, nil
}
