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

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByShowID(ctx context.Context, showID uuid.UUID) ([]*entity.Seat, error)
	// FindByIDs returns the seats that exist among ids, in no particular
	// order. Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)
	// SetBooked flips the booked flag on every seat in ids as one statement.
	SetBooked(ctx context.Context, ids []uuid.UUID, booked bool) error
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO seats (id, show_id, label, booked, created_at, updated_at) VALUES `
	args := []interface{}{}

	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		args = append(args,
			seat.ID,
			seat.ShowID,
			seat.Label,
			seat.Booked,
			seat.CreatedAt,
			seat.UpdatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create batch seats: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByShowID(ctx context.Context, showID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, show_id, label, booked, created_at, updated_at
		FROM seats
		WHERE show_id = $1
		ORDER BY label
	`

	rows, err := r.db.Query(ctx, query, showID)
	if err != nil {
		r.log.Error("Failed to find seats by show ID",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("find seats by show ID %s: %w", showID.String(), err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, show_id, label, booked, created_at, updated_at
		FROM seats
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("find seats by IDs: %w", err)
	}
	defer rows.Close()

	return scanSeats(rows)
}

func (r *seatRepository) SetBooked(ctx context.Context, ids []uuid.UUID, booked bool) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE seats SET booked = $2, updated_at = NOW() WHERE id = ANY($1)`

	_, err := r.db.Exec(ctx, query, ids, booked)
	if err != nil {
		r.log.Error("Failed to set seats booked flag",
			zap.Error(err),
			zap.Int("count", len(ids)),
			zap.Bool("booked", booked),
		)
		return fmt.Errorf("set %d seats booked=%t: %w", len(ids), booked, err)
	}

	return nil
}

func scanSeats(rows pgx.Rows) ([]*entity.Seat, error) {
	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.ShowID,
			&seat.Label,
			&seat.Booked,
			&seat.CreatedAt,
			&seat.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}
	return seats, nil
}
