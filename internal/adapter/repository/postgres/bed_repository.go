package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
)

type BedRepository struct {
	db *sql.DB
}

func NewBedRepository(db *sql.DB) *BedRepository {
	return &BedRepository{db: db}
}

func (r *BedRepository) GetByID(ctx context.Context, bedID uuid.UUID) (*domain.Bed, error) {
	query := `
	SELECT id, room_id, bed_number, bed_type, status, version, reserved_by_booking_id, reserved_at
	FROM beds
	WHERE id = $1
	`

	var bed domain.Bed
	var reservedBy sql.NullString
	var reservedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, bedID).Scan(
		&bed.ID,
		&bed.RoomID,
		&bed.BedNumber,
		&bed.BedType,
		&bed.Status,
		&bed.Version,
		&reservedBy,
		&reservedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("bed %s: %w", bedID, domain.ErrNotFound)
		}
		return nil, err
	}

	bed.ReservedByBookingID = parseNullUUID(reservedBy)
	bed.ReservedAt = timeOrNil(reservedAt)

	return &bed, nil
}

func (r *BedRepository) GetRoomByID(ctx context.Context, roomID uuid.UUID) (*domain.Room, error) {
	query := `
	SELECT r.id, r.hostel_id, r.room_type, r.floor_number, r.has_ac, r.has_balcony, r.capacity,
		(SELECT COUNT(*) FROM beds b WHERE b.room_id = r.id AND b.status IN ('reserved', 'occupied'))
	FROM rooms r
	WHERE r.id = $1
	`

	var room domain.Room
	err := r.db.QueryRowContext(ctx, query, roomID).Scan(
		&room.ID,
		&room.HostelID,
		&room.RoomType,
		&room.FloorNumber,
		&room.HasAC,
		&room.HasBalcony,
		&room.Capacity,
		&room.Occupied,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("room %s: %w", roomID, domain.ErrNotFound)
		}
		return nil, err
	}

	return &room, nil
}

func (r *BedRepository) GetCandidates(ctx context.Context, hostelID uuid.UUID, roomType string) ([]domain.BedCandidate, error) {
	query := `
	SELECT b.id, b.room_id, b.bed_number, b.bed_type, b.status, b.version,
		r.id, r.hostel_id, r.room_type, r.floor_number, r.has_ac, r.has_balcony, r.capacity,
		(SELECT COUNT(*) FROM beds o WHERE o.room_id = r.id AND o.status IN ('reserved', 'occupied'))
	FROM beds b
	JOIN rooms r ON r.id = b.room_id
	WHERE r.hostel_id = $1 AND r.room_type = $2 AND b.status = 'available'
	ORDER BY b.bed_number
	`

	rows, err := r.db.QueryContext(ctx, query, hostelID, roomType)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var candidates []domain.BedCandidate
	for rows.Next() {
		var c domain.BedCandidate
		if err := rows.Scan(
			&c.Bed.ID, &c.Bed.RoomID, &c.Bed.BedNumber, &c.Bed.BedType, &c.Bed.Status, &c.Bed.Version,
			&c.Room.ID, &c.Room.HostelID, &c.Room.RoomType, &c.Room.FloorNumber,
			&c.Room.HasAC, &c.Room.HasBalcony, &c.Room.Capacity, &c.Room.Occupied,
		); err != nil {
			return nil, err
		}

		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

func (r *BedRepository) CountAvailable(ctx context.Context, hostelID uuid.UUID, roomType string) (int, error) {
	query := `
	SELECT COUNT(*)
	FROM beds b
	JOIN rooms r ON r.id = b.room_id
	WHERE r.hostel_id = $1 AND r.room_type = $2 AND b.status = 'available'
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, hostelID, roomType).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// ReserveBed is the compare-and-set guarding concurrent onboarding runs: the
// write only lands if the bed is still available at the recorded version.
func (r *BedRepository) ReserveBed(ctx context.Context, bedID, bookingID uuid.UUID, currentVersion int) error {
	query := `
	UPDATE beds
	SET status = $1,
		reserved_by_booking_id = $2,
		reserved_at = $3,
		version = version + 1
	WHERE id = $4 AND version = $5 AND status = 'available'
	`

	result, err := r.db.ExecContext(ctx, query, domain.BedReserved, bookingID, time.Now().UTC(), bedID, currentVersion)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrBedTaken
	}

	return nil
}

func (r *BedRepository) ReleaseBed(ctx context.Context, bedID uuid.UUID) error {
	query := `
	UPDATE beds
	SET status = 'available',
		reserved_by_booking_id = NULL,
		reserved_at = NULL,
		version = version + 1
	WHERE id = $1 AND status = 'reserved'
	`

	_, err := r.db.ExecContext(ctx, query, bedID)

	return err
}
