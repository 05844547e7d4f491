package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type RefundStatus string

const (
	RefundPending    RefundStatus = "pending"
	RefundProcessing RefundStatus = "processing"
	RefundCompleted  RefundStatus = "completed"
	RefundFailed     RefundStatus = "failed"
)

var refundTransitions = map[RefundStatus][]RefundStatus{
	RefundPending:    {RefundProcessing},
	RefundProcessing: {RefundCompleted, RefundFailed},
	RefundCompleted:  {},
	RefundFailed:     {},
}

func (s RefundStatus) CanTransitionTo(target RefundStatus) bool {
	for _, t := range refundTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// BookingCancellation is created at most once per booking, when the cancel
// transition fires on a booking that had paid an advance.
type BookingCancellation struct {
	ID                  uuid.UUID
	BookingID           uuid.UUID
	AdvancePaid         float64
	CancellationCharge  float64
	ChargePercentage    float64
	RefundableAmount    float64
	RefundStatus        RefundStatus
	RefundTransactionID string
	RefundBreakdown     json.RawMessage
	CancelledAt         time.Time
}

type PolicyTier struct {
	DaysBeforeCheckIn int     `json:"days_before_checkin"`
	ChargePercentage  float64 `json:"charge_percentage"`
}

// CancellationPolicy is per-hostel and time-versioned. Tiers are ordered
// descending by DaysBeforeCheckIn.
type CancellationPolicy struct {
	ID             uuid.UUID
	HostelID       uuid.UUID
	EffectiveFrom  time.Time
	EffectiveUntil *time.Time
	Tiers          []PolicyTier
}

// ChargeFor returns the charge percentage of the first tier the lead time
// still qualifies for, walking tiers from the most lenient down. A booking
// cancelled too close to check-in to match any tier is charged in full.
func (p *CancellationPolicy) ChargeFor(daysBefore int) float64 {
	for _, tier := range p.Tiers {
		if daysBefore >= tier.DaysBeforeCheckIn {
			return tier.ChargePercentage
		}
	}
	return 100
}
