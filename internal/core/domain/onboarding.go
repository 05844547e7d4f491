package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type ChecklistItem string

const (
	ChecklistBookingValidated      ChecklistItem = "booking_validated"
	ChecklistDocumentsVerified     ChecklistItem = "documents_verified"
	ChecklistPaymentVerified       ChecklistItem = "payment_verified"
	ChecklistBackgroundCheckDone   ChecklistItem = "background_check_completed"
	ChecklistAccommodationAssigned ChecklistItem = "accommodation_assigned"
	ChecklistProfileCreated        ChecklistItem = "profile_created"
	ChecklistAccessProvisioned     ChecklistItem = "access_provisioned"
	ChecklistConversionCompleted   ChecklistItem = "conversion_completed"
)

var ChecklistItems = []ChecklistItem{
	ChecklistBookingValidated,
	ChecklistDocumentsVerified,
	ChecklistPaymentVerified,
	ChecklistBackgroundCheckDone,
	ChecklistAccommodationAssigned,
	ChecklistProfileCreated,
	ChecklistAccessProvisioned,
	ChecklistConversionCompleted,
}

// OnboardingContext is the working memory of a single onboarding run. It is
// never persisted. The run's steps write it while progress queries read it
// from other goroutines, so checklist state and notes are only touched
// through the locked accessors.
type OnboardingContext struct {
	BookingID     uuid.UUID
	StudentUserID uuid.UUID
	HostelID      uuid.UUID
	CheckInDate   time.Time

	AssignedRoomID   *uuid.UUID
	AssignedBedID    *uuid.UUID
	StudentProfileID *uuid.UUID

	mu                sync.RWMutex
	checklist         map[ChecklistItem]bool
	validationErrors  []string
	warnings          []string
	recommendations   []string
	verificationScore float64
}

func NewOnboardingContext(bookingID uuid.UUID) *OnboardingContext {
	checklist := make(map[ChecklistItem]bool, len(ChecklistItems))
	for _, item := range ChecklistItems {
		checklist[item] = false
	}
	return &OnboardingContext{
		BookingID: bookingID,
		checklist: checklist,
	}
}

func (c *OnboardingContext) MarkDone(item ChecklistItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checklist[item] = true
}

func (c *OnboardingContext) AddValidationErrors(errs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validationErrors = append(c.validationErrors, errs...)
}

func (c *OnboardingContext) AddWarning(w string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, w)
}

func (c *OnboardingContext) AddRecommendations(recs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recommendations = append(c.recommendations, recs...)
}

func (c *OnboardingContext) SetVerificationScore(score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verificationScore = score
}

func (c *OnboardingContext) VerificationScore() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.verificationScore
}

func (c *OnboardingContext) ValidationErrors() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.validationErrors...)
}

func (c *OnboardingContext) Warnings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.warnings...)
}

func (c *OnboardingContext) Recommendations() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.recommendations...)
}

// Progress reports the completion percentage over the checklist milestones.
func (c *OnboardingContext) Progress() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	done := 0
	for _, item := range ChecklistItems {
		if c.checklist[item] {
			done++
		}
	}
	return float64(done) / float64(len(ChecklistItems)) * 100
}

func (c *OnboardingContext) ChecklistCopy() map[ChecklistItem]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[ChecklistItem]bool, len(c.checklist))
	for k, v := range c.checklist {
		out[k] = v
	}
	return out
}

// OnboardingResult is what the orchestrator hands back to its caller. A
// failed run carries the step that failed and everything rolled back; a
// successful run may still carry warnings for degraded optional features.
type OnboardingResult struct {
	BookingID        uuid.UUID
	Succeeded        bool
	FailedStep       string
	ValidationErrors []string
	Warnings         []string
	Checklist        map[ChecklistItem]bool
	Progress         float64
	StudentProfileID *uuid.UUID
}
