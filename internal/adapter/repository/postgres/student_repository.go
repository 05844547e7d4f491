package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
)

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, p *domain.StudentProfile) error {
	query := `
	INSERT INTO student_profiles (id, guest_id, booking_id, hostel_id, room_id, bed_id, check_in_date, is_active, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.GuestID, p.BookingID, p.HostelID, p.RoomID, p.BedID, p.CheckInDate, p.IsActive, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert student profile: %w", err)
	}

	return nil
}

func (r *StudentRepository) GetActiveByGuest(ctx context.Context, guestID uuid.UUID) (*domain.StudentProfile, error) {
	query := `
	SELECT id, guest_id, booking_id, hostel_id, room_id, bed_id, check_in_date, is_active, created_at
	FROM student_profiles
	WHERE guest_id = $1 AND is_active = TRUE
	`

	var p domain.StudentProfile
	err := r.db.QueryRowContext(ctx, query, guestID).Scan(
		&p.ID, &p.GuestID, &p.BookingID, &p.HostelID, &p.RoomID, &p.BedID, &p.CheckInDate, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}

func (r *StudentRepository) Delete(ctx context.Context, profileID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM student_profiles WHERE id = $1`, profileID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("student profile %s: %w", profileID, domain.ErrNotFound)
	}

	return nil
}
