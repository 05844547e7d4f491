package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
)

type GuestRepository struct {
	db *sql.DB
}

func NewGuestRepository(db *sql.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) GetByID(ctx context.Context, guestID uuid.UUID) (*domain.Guest, error) {
	query := `
	SELECT id, full_name, phone, is_blacklisted, needs_ground_floor, wants_ac, wants_balcony, preferred_bed_type
	FROM guests
	WHERE id = $1
	`

	var g domain.Guest
	var bedType sql.NullString

	err := r.db.QueryRowContext(ctx, query, guestID).Scan(
		&g.ID, &g.FullName, &g.Phone, &g.Blacklisted,
		&g.NeedsGroundFloor, &g.WantsAC, &g.WantsBalcony, &bedType,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("guest %s: %w", guestID, domain.ErrNotFound)
		}
		return nil, err
	}

	g.PreferredBedType = bedType.String

	return &g, nil
}
