package entity

import "github.com/google/uuid"

// Seat belongs to exactly one show. Booked is mutated only by the seat
// ledger, never directly by handlers or services.
type Seat struct {
	Base
	ShowID uuid.UUID `db:"show_id"`
	Label  string    `db:"label"` // A1, A2, B1, etc.
	Booked bool      `db:"booked"`
}
