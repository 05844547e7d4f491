package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
)

type CancellationRepository struct {
	db *sql.DB
}

func NewCancellationRepository(db *sql.DB) *CancellationRepository {
	return &CancellationRepository{db: db}
}

func (r *CancellationRepository) Create(ctx context.Context, c *domain.BookingCancellation) error {
	query := `
	INSERT INTO booking_cancellations
		(id, booking_id, advance_paid, cancellation_charge, charge_percentage,
		refundable_amount, refund_status, refund_transaction_id, refund_breakdown, cancelled_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.BookingID, c.AdvancePaid, c.CancellationCharge, c.ChargePercentage,
		c.RefundableAmount, c.RefundStatus, c.RefundTransactionID, nullableJSON(c.RefundBreakdown), c.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cancellation: %w", err)
	}

	return nil
}

func (r *CancellationRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingCancellation, error) {
	query := `
	SELECT id, booking_id, advance_paid, cancellation_charge, charge_percentage,
		refundable_amount, refund_status, refund_transaction_id, refund_breakdown, cancelled_at
	FROM booking_cancellations
	WHERE booking_id = $1
	`

	var c domain.BookingCancellation
	var transactionID sql.NullString
	var breakdown []byte

	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(
		&c.ID, &c.BookingID, &c.AdvancePaid, &c.CancellationCharge, &c.ChargePercentage,
		&c.RefundableAmount, &c.RefundStatus, &transactionID, &breakdown, &c.CancelledAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cancellation for booking %s: %w", bookingID, domain.ErrNotFound)
		}
		return nil, err
	}

	c.RefundTransactionID = transactionID.String
	c.RefundBreakdown = breakdown

	return &c, nil
}

func (r *CancellationRepository) Update(ctx context.Context, c *domain.BookingCancellation) error {
	query := `
	UPDATE booking_cancellations
	SET refund_status = $2, refund_transaction_id = $3, refund_breakdown = $4
	WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, c.ID, c.RefundStatus, c.RefundTransactionID, nullableJSON(c.RefundBreakdown))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("cancellation %s: %w", c.ID, domain.ErrNotFound)
	}

	return nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
