package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hostel_booking/internal/core/domain"
	"github.com/srgjo27/hostel_booking/internal/core/ports"
)

// CalculateRefund computes the cancellation charge, the applied percentage
// and the refundable remainder for a booking cancelled at `now`. A nil
// policy means the hostel has no active policy and the advance is refunded
// in full. The charge is a percentage of the advance actually paid, so the
// refundable amount can never go negative.
func CalculateRefund(b *domain.Booking, policy *domain.CancellationPolicy, now time.Time) (charge, chargePercentage, refundable float64) {
	advance := 0.0
	if b.AdvancePaid {
		advance = b.AdvanceAmount
	}

	if policy == nil {
		return 0, 0, round2(advance)
	}

	daysBefore := int(b.PreferredCheckIn.Sub(now).Hours() / 24)
	if daysBefore < 0 {
		daysBefore = 0
	}

	chargePercentage = policy.ChargeFor(daysBefore)
	charge = round2(advance * chargePercentage / 100)
	refundable = round2(advance - charge)
	return charge, chargePercentage, refundable
}

// RefundService drives the refund sub-state machine on recorded
// cancellations: pending -> processing -> completed | failed.
type RefundService struct {
	cancellations ports.CancellationRepository
	clock         Clock
}

func NewRefundService(cancellations ports.CancellationRepository, clock Clock) *RefundService {
	return &RefundService{
		cancellations: cancellations,
		clock:         clock,
	}
}

func (s *RefundService) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingCancellation, error) {
	return s.cancellations.GetByBookingID(ctx, bookingID)
}

func (s *RefundService) InitiateRefund(ctx context.Context, bookingID uuid.UUID) (*domain.BookingCancellation, error) {
	return s.transition(ctx, bookingID, domain.RefundProcessing, nil)
}

func (s *RefundService) CompleteRefund(ctx context.Context, bookingID uuid.UUID, transactionID string) (*domain.BookingCancellation, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("refund transaction id is required: %w", domain.ErrValidation)
	}
	return s.transition(ctx, bookingID, domain.RefundCompleted, func(c *domain.BookingCancellation) {
		c.RefundTransactionID = transactionID
	})
}

func (s *RefundService) FailRefund(ctx context.Context, bookingID uuid.UUID, reason string) (*domain.BookingCancellation, error) {
	now := s.clock.Now()
	return s.transition(ctx, bookingID, domain.RefundFailed, func(c *domain.BookingCancellation) {
		breakdown, _ := json.Marshal(map[string]string{
			"failure_reason": reason,
			"failed_at":      now.Format(time.RFC3339),
		})
		c.RefundBreakdown = breakdown
	})
}

func (s *RefundService) transition(ctx context.Context, bookingID uuid.UUID, to domain.RefundStatus, mutate func(*domain.BookingCancellation)) (*domain.BookingCancellation, error) {
	c, err := s.cancellations.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !c.RefundStatus.CanTransitionTo(to) {
		return nil, &domain.RefundTransitionError{From: c.RefundStatus, To: to}
	}

	from := c.RefundStatus
	c.RefundStatus = to
	if mutate != nil {
		mutate(c)
	}

	if err := s.cancellations.Update(ctx, c); err != nil {
		c.RefundStatus = from
		return nil, err
	}

	return c, nil
}
