package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, reference, visitor_id, hostel_id, room_type_requested,
	preferred_check_in_date, stay_duration_months, quoted_rent_monthly,
	total_amount, security_deposit, advance_amount, advance_paid,
	payment_reference, status, approved_by, approved_at, rejected_by,
	rejected_at, rejection_reason, cancelled_by, cancelled_at,
	cancellation_reason, expires_at, converted_to_student,
	student_profile_id, conversion_date, created_at
`

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking, h *domain.BookingStatusHistory) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `
	INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
	`

	_, err = tx.ExecContext(ctx, query,
		b.ID, b.Reference, b.VisitorID, b.HostelID, b.RoomTypeRequested,
		b.PreferredCheckIn, b.StayDurationMonths, b.QuotedRentMonthly,
		b.TotalAmount, b.SecurityDeposit, b.AdvanceAmount, b.AdvancePaid,
		b.PaymentReference, b.Status, uuidOrNil(b.ApprovedBy), b.ApprovedAt,
		uuidOrNil(b.RejectedBy), b.RejectedAt, b.RejectionReason,
		uuidOrNil(b.CancelledBy), b.CancelledAt, b.CancellationReason,
		b.ExpiresAt, b.ConvertedToStudent, uuidOrNil(b.StudentProfileID),
		b.ConversionDate, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := insertStatusHistory(ctx, tx, h); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE id = $1 AND deleted_at IS NULL
	`

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("booking %s: %w", bookingID, domain.ErrNotFound)
		}
		return nil, err
	}

	return b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *domain.Booking, h *domain.BookingStatusHistory) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `
	UPDATE bookings
	SET status = $2,
		advance_paid = $3,
		payment_reference = $4,
		approved_by = $5,
		approved_at = $6,
		rejected_by = $7,
		rejected_at = $8,
		rejection_reason = $9,
		cancelled_by = $10,
		cancelled_at = $11,
		cancellation_reason = $12,
		expires_at = $13,
		converted_to_student = $14,
		student_profile_id = $15,
		conversion_date = $16
	WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := tx.ExecContext(ctx, query,
		b.ID, b.Status, b.AdvancePaid, b.PaymentReference,
		uuidOrNil(b.ApprovedBy), b.ApprovedAt,
		uuidOrNil(b.RejectedBy), b.RejectedAt, b.RejectionReason,
		uuidOrNil(b.CancelledBy), b.CancelledAt, b.CancellationReason,
		b.ExpiresAt, b.ConvertedToStudent, uuidOrNil(b.StudentProfileID),
		b.ConversionDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", b.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("booking %s: %w", b.ID, domain.ErrNotFound)
	}

	if err := insertStatusHistory(ctx, tx, h); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) FindActiveByHostelRoomType(ctx context.Context, hostelID uuid.UUID, roomType string) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE hostel_id = $1
		AND room_type_requested = $2
		AND status IN ('approved', 'confirmed', 'checked_in')
		AND deleted_at IS NULL
	`

	rows, err := r.db.QueryContext(ctx, query, hostelID, roomType)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) GetExpiredPending(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `
	SELECT id FROM bookings
	WHERE status = 'pending' AND expires_at < $1 AND deleted_at IS NULL
	LIMIT 100
	`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *BookingRepository) ExpireBooking(ctx context.Context, bookingID uuid.UUID, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
	UPDATE bookings
	SET status = 'expired'
	WHERE id = $1 AND status = 'pending' AND deleted_at IS NULL
	`, bookingID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		// Already left pending; nothing to sweep.
		return nil
	}

	h := &domain.BookingStatusHistory{
		ID:         uuid.New(),
		BookingID:  bookingID,
		FromStatus: domain.BookingPending,
		ToStatus:   domain.BookingExpired,
		Reason:     "booking hold expired",
		ChangedAt:  now,
	}
	if err := insertStatusHistory(ctx, tx, h); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *BookingRepository) GetStatusHistory(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingStatusHistory, error) {
	query := `
	SELECT id, booking_id, from_status, to_status, actor_id, reason, changed_at
	FROM booking_status_history
	WHERE booking_id = $1
	ORDER BY changed_at
	`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var history []domain.BookingStatusHistory
	for rows.Next() {
		var h domain.BookingStatusHistory
		var fromStatus sql.NullString
		var actorID sql.NullString

		if err := rows.Scan(&h.ID, &h.BookingID, &fromStatus, &h.ToStatus, &actorID, &h.Reason, &h.ChangedAt); err != nil {
			return nil, err
		}

		h.FromStatus = domain.BookingStatus(fromStatus.String)
		if actorID.Valid && actorID.String != "" {
			uid, _ := uuid.Parse(actorID.String)
			h.ActorID = &uid
		}

		history = append(history, h)
	}

	return history, rows.Err()
}

func insertStatusHistory(ctx context.Context, tx *sql.Tx, h *domain.BookingStatusHistory) error {
	query := `
	INSERT INTO booking_status_history (id, booking_id, from_status, to_status, actor_id, reason, changed_at)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	`

	_, err := tx.ExecContext(ctx, query, h.ID, h.BookingID, string(h.FromStatus), h.ToStatus, uuidOrNil(h.ActorID), h.Reason, h.ChangedAt)
	if err != nil {
		return fmt.Errorf("failed to insert status history: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var paymentReference, rejectionReason, cancellationReason sql.NullString
	var approvedBy, rejectedBy, cancelledBy, studentProfileID sql.NullString
	var approvedAt, rejectedAt, cancelledAt, expiresAt, conversionDate sql.NullTime

	err := row.Scan(
		&b.ID, &b.Reference, &b.VisitorID, &b.HostelID, &b.RoomTypeRequested,
		&b.PreferredCheckIn, &b.StayDurationMonths, &b.QuotedRentMonthly,
		&b.TotalAmount, &b.SecurityDeposit, &b.AdvanceAmount, &b.AdvancePaid,
		&paymentReference, &b.Status, &approvedBy, &approvedAt, &rejectedBy,
		&rejectedAt, &rejectionReason, &cancelledBy, &cancelledAt,
		&cancellationReason, &expiresAt, &b.ConvertedToStudent,
		&studentProfileID, &conversionDate, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.PaymentReference = paymentReference.String
	b.RejectionReason = rejectionReason.String
	b.CancellationReason = cancellationReason.String
	b.ApprovedBy = parseNullUUID(approvedBy)
	b.RejectedBy = parseNullUUID(rejectedBy)
	b.CancelledBy = parseNullUUID(cancelledBy)
	b.StudentProfileID = parseNullUUID(studentProfileID)
	b.ApprovedAt = timeOrNil(approvedAt)
	b.RejectedAt = timeOrNil(rejectedAt)
	b.CancelledAt = timeOrNil(cancelledAt)
	b.ExpiresAt = timeOrNil(expiresAt)
	b.ConversionDate = timeOrNil(conversionDate)

	return &b, nil
}

func parseNullUUID(v sql.NullString) *uuid.UUID {
	if !v.Valid || v.String == "" {
		return nil
	}
	uid, err := uuid.Parse(v.String)
	if err != nil {
		return nil
	}
	return &uid
}

func timeOrNil(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func uuidOrNil(v *uuid.UUID) any {
	if v == nil {
		return nil
	}
	return *v
}
