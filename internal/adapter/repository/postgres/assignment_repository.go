package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
)

type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentColumns = `
	id, booking_id, room_id, bed_id, is_active, assigned_at, deactivated_at, deactivation_reason
`

func (r *AssignmentRepository) Create(ctx context.Context, a *domain.BookingAssignment, h *domain.AssignmentHistory) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `
	INSERT INTO booking_assignments (` + assignmentColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.ExecContext(ctx, query,
		a.ID, a.BookingID, a.RoomID, a.BedID, a.IsActive, a.AssignedAt, a.DeactivatedAt, a.DeactivationReason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}

	if err := insertAssignmentHistory(ctx, tx, h); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *AssignmentRepository) GetByID(ctx context.Context, assignmentID uuid.UUID) (*domain.BookingAssignment, error) {
	query := `
	SELECT ` + assignmentColumns + `
	FROM booking_assignments
	WHERE id = $1
	`

	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, assignmentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("assignment %s: %w", assignmentID, domain.ErrNotFound)
		}
		return nil, err
	}

	return a, nil
}

func (r *AssignmentRepository) GetActiveByBooking(ctx context.Context, bookingID uuid.UUID) (*domain.BookingAssignment, error) {
	query := `
	SELECT ` + assignmentColumns + `
	FROM booking_assignments
	WHERE booking_id = $1 AND is_active = TRUE
	`

	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return a, nil
}

func (r *AssignmentRepository) HasActiveForBed(ctx context.Context, bedID uuid.UUID) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM booking_assignments
		WHERE bed_id = $1 AND is_active = TRUE
	)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, bedID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *AssignmentRepository) Deactivate(ctx context.Context, a *domain.BookingAssignment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
	UPDATE booking_assignments
	SET is_active = FALSE, deactivated_at = $2, deactivation_reason = $3
	WHERE id = $1
	`, a.ID, a.DeactivatedAt, a.DeactivationReason)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	UPDATE beds
	SET status = 'available',
		reserved_by_booking_id = NULL,
		reserved_at = NULL,
		version = version + 1
	WHERE id = $1 AND status = 'reserved'
	`, a.BedID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *AssignmentRepository) Reactivate(ctx context.Context, a *domain.BookingAssignment, bedVersion int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
	UPDATE beds
	SET status = 'reserved',
		reserved_by_booking_id = $2,
		reserved_at = NOW(),
		version = version + 1
	WHERE id = $1 AND version = $3 AND status = 'available'
	`, a.BedID, a.BookingID, bedVersion)
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

	_, err = tx.ExecContext(ctx, `
	UPDATE booking_assignments
	SET is_active = TRUE, deactivated_at = NULL, deactivation_reason = ''
	WHERE id = $1
	`, a.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *AssignmentRepository) Reassign(ctx context.Context, a *domain.BookingAssignment, h *domain.AssignmentHistory, oldBedID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
	UPDATE booking_assignments
	SET room_id = $2, bed_id = $3
	WHERE id = $1
	`, a.ID, a.RoomID, a.BedID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	UPDATE beds
	SET status = 'available',
		reserved_by_booking_id = NULL,
		reserved_at = NULL,
		version = version + 1
	WHERE id = $1 AND status = 'reserved'
	`, oldBedID)
	if err != nil {
		return err
	}

	if err := insertAssignmentHistory(ctx, tx, h); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *AssignmentRepository) Delete(ctx context.Context, assignmentID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	var bedID uuid.UUID
	err = tx.QueryRowContext(ctx, `
	SELECT bed_id FROM booking_assignments WHERE id = $1
	`, assignmentID).Scan(&bedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("assignment %s: %w", assignmentID, domain.ErrNotFound)
		}
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM booking_assignments WHERE id = $1`, assignmentID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	UPDATE beds
	SET status = 'available',
		reserved_by_booking_id = NULL,
		reserved_at = NULL,
		version = version + 1
	WHERE id = $1 AND status = 'reserved'
	`, bedID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *AssignmentRepository) GetHistory(ctx context.Context, bookingID uuid.UUID) ([]domain.AssignmentHistory, error) {
	query := `
	SELECT id, booking_id, change_type, from_room_id, from_bed_id, to_room_id, to_bed_id, reason, changed_at
	FROM assignment_history
	WHERE booking_id = $1
	ORDER BY changed_at
	`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var history []domain.AssignmentHistory
	for rows.Next() {
		var h domain.AssignmentHistory
		var fromRoom, fromBed sql.NullString

		if err := rows.Scan(&h.ID, &h.BookingID, &h.ChangeType, &fromRoom, &fromBed, &h.ToRoomID, &h.ToBedID, &h.Reason, &h.ChangedAt); err != nil {
			return nil, err
		}

		h.FromRoomID = parseNullUUID(fromRoom)
		h.FromBedID = parseNullUUID(fromBed)

		history = append(history, h)
	}

	return history, rows.Err()
}

func insertAssignmentHistory(ctx context.Context, tx *sql.Tx, h *domain.AssignmentHistory) error {
	query := `
	INSERT INTO assignment_history (id, booking_id, change_type, from_room_id, from_bed_id, to_room_id, to_bed_id, reason, changed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.ExecContext(ctx, query,
		h.ID, h.BookingID, h.ChangeType,
		uuidOrNil(h.FromRoomID), uuidOrNil(h.FromBedID),
		h.ToRoomID, h.ToBedID, h.Reason, h.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert assignment history: %w", err)
	}

	return nil
}

func scanAssignment(row rowScanner) (*domain.BookingAssignment, error) {
	var a domain.BookingAssignment
	var deactivatedAt sql.NullTime
	var reason sql.NullString

	err := row.Scan(&a.ID, &a.BookingID, &a.RoomID, &a.BedID, &a.IsActive, &a.AssignedAt, &deactivatedAt, &reason)
	if err != nil {
		return nil, err
	}

	a.DeactivatedAt = timeOrNil(deactivatedAt)
	a.DeactivationReason = reason.String

	return &a, nil
}
