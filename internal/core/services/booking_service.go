package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/hostel_booking/internal/core/domain"
	"github.com/srgjo27/hostel_booking/internal/core/ports"
)

type CreateBookingRequest struct {
	VisitorID          string  `json:"visitor_id" validate:"required,uuid4"`
	HostelID           string  `json:"hostel_id" validate:"required,uuid4"`
	RoomType           string  `json:"room_type" validate:"required"`
	PreferredCheckIn   string  `json:"preferred_check_in_date" validate:"required,datetime=2006-01-02"`
	StayDurationMonths int     `json:"stay_duration_months" validate:"required,min=1,max=24"`
	QuotedRentMonthly  float64 `json:"quoted_rent_monthly" validate:"gte=0"`
	TotalAmount        float64 `json:"total_amount" validate:"gte=0"`
	SecurityDeposit    float64 `json:"security_deposit" validate:"gte=0"`
	AdvanceAmount      float64 `json:"advance_amount" validate:"gte=0"`
}

type BookingService struct {
	bookings      ports.BookingRepository
	availability  *AvailabilityService
	assignments   *AssignmentService
	policies      ports.PolicyRepository
	cancellations ports.CancellationRepository
	notifs        ports.NotificationSender
	cache         *redis.Client
	clock         Clock

	holdDuration  time.Duration
	sweepInterval time.Duration
}

const (
	defaultHoldDuration  = 48 * time.Hour
	defaultSweepInterval = 1 * time.Minute
)

type BookingServiceOption func(*BookingService)

// WithHoldDuration overrides how long a pending booking holds its slot
// before the expiry sweep reclaims it.
func WithHoldDuration(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.holdDuration = d
		}
	}
}

func WithSweepInterval(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

func NewBookingService(
	bookings ports.BookingRepository,
	availability *AvailabilityService,
	assignments *AssignmentService,
	policies ports.PolicyRepository,
	cancellations ports.CancellationRepository,
	notifs ports.NotificationSender,
	cache *redis.Client,
	clock Clock,
	opts ...BookingServiceOption,
) *BookingService {
	svc := &BookingService{
		bookings:      bookings,
		availability:  availability,
		assignments:   assignments,
		policies:      policies,
		cancellations: cancellations,
		notifs:        notifs,
		cache:         cache,
		clock:         clock,
		holdDuration:  defaultHoldDuration,
		sweepInterval: defaultSweepInterval,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	visitorID, err := uuid.Parse(req.VisitorID)
	if err != nil {
		return nil, fmt.Errorf("invalid visitor id: %w", domain.ErrValidation)
	}

	hostelID, err := uuid.Parse(req.HostelID)
	if err != nil {
		return nil, fmt.Errorf("invalid hostel id: %w", domain.ErrValidation)
	}

	checkIn, err := time.Parse("2006-01-02", req.PreferredCheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in date: %w", domain.ErrValidation)
	}

	if req.StayDurationMonths < MinStayMonths || req.StayDurationMonths > MaxStayMonths {
		return nil, fmt.Errorf("stay duration %d months is out of range: %w", req.StayDurationMonths, domain.ErrValidation)
	}

	if req.QuotedRentMonthly < 0 || req.TotalAmount < 0 || req.SecurityDeposit < 0 || req.AdvanceAmount < 0 {
		return nil, fmt.Errorf("amounts must be non-negative: %w", domain.ErrValidation)
	}

	if req.AdvanceAmount > req.TotalAmount {
		return nil, fmt.Errorf("advance %.2f exceeds total %.2f: %w", req.AdvanceAmount, req.TotalAmount, domain.ErrValidation)
	}

	now := s.clock.Now()
	if checkIn.Before(now.Truncate(24 * time.Hour)) {
		return nil, fmt.Errorf("check-in date is in the past: %w", domain.ErrValidation)
	}

	ok, err := s.availability.CheckAvailability(ctx, hostelID, req.RoomType, checkIn, req.StayDurationMonths)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no availability for %s/%s in the requested window: %w", hostelID, req.RoomType, domain.ErrConflict)
	}

	expiresAt := now.Add(s.holdDuration)

	b := &domain.Booking{
		ID:                 uuid.New(),
		Reference:          newReference(now),
		VisitorID:          visitorID,
		HostelID:           hostelID,
		RoomTypeRequested:  req.RoomType,
		PreferredCheckIn:   checkIn,
		StayDurationMonths: req.StayDurationMonths,
		QuotedRentMonthly:  req.QuotedRentMonthly,
		TotalAmount:        req.TotalAmount,
		SecurityDeposit:    req.SecurityDeposit,
		AdvanceAmount:      req.AdvanceAmount,
		Status:             domain.BookingPending,
		ExpiresAt:          &expiresAt,
		CreatedAt:          now,
	}

	history := &domain.BookingStatusHistory{
		ID:        uuid.New(),
		BookingID: b.ID,
		ToStatus:  domain.BookingPending,
		Reason:    "booking request created",
		ChangedAt: now,
	}

	if err := s.bookings.Create(ctx, b, history); err != nil {
		return nil, err
	}

	s.invalidateWindow(ctx, b)
	s.notify(ctx, domain.NotifyBookingCreated, b.VisitorID, b)

	return b, nil
}

func newReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("HB-%s-%s", now.Format("20060102"), suffix)
}

func (s *BookingService) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *BookingService) GetStatusHistory(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingStatusHistory, error) {
	return s.bookings.GetStatusHistory(ctx, bookingID)
}

// FindConflicts lists the active bookings blocking a change to this booking's
// window, excluding the booking itself.
func (s *BookingService) FindConflicts(ctx context.Context, bookingID uuid.UUID, checkIn time.Time, durationMonths int) ([]domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.availability.FindConflictingBookings(ctx, b.HostelID, b.RoomTypeRequested, checkIn, durationMonths, b.ID)
}

func (s *BookingService) Approve(ctx context.Context, bookingID, approverID uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	err = s.transition(ctx, b, domain.BookingApproved, &approverID, "booking approved", func(b *domain.Booking) {
		b.ApprovedBy = &approverID
		b.ApprovedAt = &now
		b.ExpiresAt = nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.NotifyBookingApproved, b.VisitorID, b)
	return b, nil
}

func (s *BookingService) Reject(ctx context.Context, bookingID, actorID uuid.UUID, reason string) (*domain.Booking, error) {
	if reason == "" {
		return nil, fmt.Errorf("rejection reason is required: %w", domain.ErrValidation)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	err = s.transition(ctx, b, domain.BookingRejected, &actorID, reason, func(b *domain.Booking) {
		b.RejectedBy = &actorID
		b.RejectedAt = &now
		b.RejectionReason = reason
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.NotifyBookingRejected, b.VisitorID, b)
	return b, nil
}

// ConfirmPayment acknowledges a completed advance payment and moves the
// booking to confirmed. Amount validation belongs to the payment subsystem.
func (s *BookingService) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, paymentReference string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	err = s.transition(ctx, b, domain.BookingConfirmed, nil, "advance payment confirmed", func(b *domain.Booking) {
		b.AdvancePaid = true
		b.PaymentReference = paymentReference
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

// Cancel moves the booking to cancelled, releases any bed still held by an
// active assignment and, when an advance was paid, records the cancellation
// with the refund computed from the hostel's active policy.
func (s *BookingService) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, reason string) (*domain.Booking, error) {
	if reason == "" {
		return nil, fmt.Errorf("cancellation reason is required: %w", domain.ErrValidation)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	policy, err := s.policies.GetActivePolicy(ctx, b.HostelID, now)
	if err != nil {
		return nil, err
	}
	charge, pct, refundable := CalculateRefund(b, policy, now)

	err = s.transition(ctx, b, domain.BookingCancelled, &actorID, reason, func(b *domain.Booking) {
		b.CancelledBy = &actorID
		b.CancelledAt = &now
		b.CancellationReason = reason
	})
	if err != nil {
		return nil, err
	}

	if b.AdvancePaid {
		cancellation := &domain.BookingCancellation{
			ID:                 uuid.New(),
			BookingID:          b.ID,
			AdvancePaid:        b.AdvanceAmount,
			CancellationCharge: charge,
			ChargePercentage:   pct,
			RefundableAmount:   refundable,
			RefundStatus:       domain.RefundPending,
			CancelledAt:        now,
		}
		if err := s.cancellations.Create(ctx, cancellation); err != nil {
			log.Printf("Failed to record cancellation for booking %s: %v", b.ID, err)
			return nil, err
		}
	}

	s.releaseAssignment(ctx, b)

	s.notify(ctx, domain.NotifyBookingCancelled, b.VisitorID, b)
	return b, nil
}

// releaseAssignment frees the bed still reserved by a cancelled booking's
// active assignment. The cancel transition has already committed, so a
// failure here is logged for operational retry rather than surfaced.
func (s *BookingService) releaseAssignment(ctx context.Context, b *domain.Booking) {
	if s.assignments == nil {
		return
	}

	a, err := s.assignments.GetActiveByBooking(ctx, b.ID)
	if err != nil {
		log.Printf("Failed to look up assignment for cancelled booking %s: %v", b.ID, err)
		return
	}
	if a == nil {
		return
	}

	if err := s.assignments.Deactivate(ctx, b.ID, "booking cancelled"); err != nil {
		log.Printf("Failed to release bed for cancelled booking %s: %v", b.ID, err)
	}
}

// ConvertToStudent moves a confirmed booking to checked_in, recording the
// student profile created by the onboarding workflow. This is the hook the
// orchestrator calls at its final step.
func (s *BookingService) ConvertToStudent(ctx context.Context, bookingID, studentProfileID uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ConvertedToStudent {
		return nil, fmt.Errorf("booking %s was already converted: %w", b.Reference, domain.ErrConflict)
	}

	now := s.clock.Now()
	err = s.transition(ctx, b, domain.BookingCheckedIn, nil, "converted to student", func(b *domain.Booking) {
		b.ConvertedToStudent = true
		b.StudentProfileID = &studentProfileID
		b.ConversionDate = &now
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (s *BookingService) MarkCompleted(ctx context.Context, bookingID uuid.UUID, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "booking completed"
	}

	if err := s.transition(ctx, b, domain.BookingCompleted, nil, reason, nil); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *BookingService) MarkNoShow(ctx context.Context, bookingID, actorID uuid.UUID, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, b, domain.BookingNoShow, &actorID, reason, nil); err != nil {
		return nil, err
	}

	return b, nil
}

// transition applies one guarded state change: guard check, status plus
// metadata mutation, history row, all persisted in a single repository
// transaction. On persistence failure the in-memory booking is reverted.
func (s *BookingService) transition(ctx context.Context, b *domain.Booking, to domain.BookingStatus, actor *uuid.UUID, reason string, mutate func(*domain.Booking)) error {
	if !b.Status.CanTransitionTo(to) {
		return &domain.TransitionError{From: b.Status, To: to}
	}

	from := b.Status
	snapshot := *b

	b.Status = to
	if mutate != nil {
		mutate(b)
	}

	history := &domain.BookingStatusHistory{
		ID:         uuid.New(),
		BookingID:  b.ID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actor,
		Reason:     reason,
		ChangedAt:  s.clock.Now(),
	}

	if err := s.bookings.UpdateStatus(ctx, b, history); err != nil {
		*b = snapshot
		return err
	}

	s.invalidateWindow(ctx, b)
	return nil
}

func (s *BookingService) invalidateWindow(ctx context.Context, b *domain.Booking) {
	if s.cache == nil {
		return
	}
	key := activeWindowKey(b.HostelID, b.RoomTypeRequested)
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		log.Printf("Failed to invalidate availability cache %s: %v", key, err)
	}
}

func (s *BookingService) notify(ctx context.Context, kind string, recipient uuid.UUID, b *domain.Booking) {
	if s.notifs == nil {
		return
	}
	payload := map[string]string{
		"booking_id": b.ID.String(),
		"reference":  b.Reference,
		"status":     string(b.Status),
	}
	if err := s.notifs.Send(ctx, kind, recipient, payload); err != nil {
		log.Printf("Notification %s for booking %s failed: %v", kind, b.ID, err)
	}
}

// RunExpirySweep periodically moves overdue pending bookings to expired.
// Expiry is sweep-driven only; reads never check expires_at themselves.
func (s *BookingService) RunExpirySweep(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	log.Printf("Expiry sweep started: checking pending bookings every %s...", s.sweepInterval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Expiry sweep stopped.")
			return
		case <-ticker.C:
			s.processExpiredBookings(ctx)
		}
	}
}

func (s *BookingService) processExpiredBookings(ctx context.Context) {
	now := s.clock.Now()

	ids, err := s.bookings.GetExpiredPending(ctx, now)
	if err != nil {
		log.Printf("Error fetching expired bookings: %v", err)
		return
	}

	if len(ids) == 0 {
		return
	}

	log.Printf("Found %d expired bookings. Sweeping...", len(ids))

	for _, id := range ids {
		if err := s.bookings.ExpireBooking(ctx, id, now); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			log.Printf("Failed to expire booking %s: %v", id, err)
			continue
		}
		log.Printf("Booking %s expired.", id)
	}
}

// round2 keeps money at two decimal places, matching the stored precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
