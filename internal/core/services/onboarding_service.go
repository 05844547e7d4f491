package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/hostel_booking/internal/core/domain"
	"github.com/srgjo27/hostel_booking/internal/core/ports"
)

const (
	defaultStepTimeout       = 15 * time.Second
	defaultExternalTimeout   = 60 * time.Second
	defaultMinVerification   = 0.7
	defaultProgressRetention = time.Hour
)

// OnboardingService converts a confirmed booking into an active student
// record through a sequenced, rollback-capable step pipeline. Steps commit
// independently, so failure of a required step compensates completed side
// effects in reverse order instead of aborting one surrounding transaction.
type OnboardingService struct {
	bookingSvc  *BookingService
	assignments *AssignmentService
	guests      ports.GuestRepository
	students    ports.StudentRepository
	beds        ports.BedRepository
	payments    ports.PaymentProvider
	documents   ports.DocumentProvider
	background  ports.BackgroundChecker
	access      ports.AccessProvisioner
	notifs      ports.NotificationSender
	clock       Clock

	stepTimeout       time.Duration
	externalTimeout   time.Duration
	minVerification   float64
	progressRetention time.Duration

	mu   sync.RWMutex
	runs map[uuid.UUID]*runEntry
}

// runEntry keeps a run's context queryable after Run returns. finishedAt is
// zero while the run executes; finished entries past the retention window are
// swept when the next run starts.
type runEntry struct {
	oc         *domain.OnboardingContext
	finishedAt time.Time
}

type OnboardingOption func(*OnboardingService)

// WithMinVerificationScore overrides the aggregate document confidence a
// booking must reach.
func WithMinVerificationScore(score float64) OnboardingOption {
	return func(s *OnboardingService) {
		if score > 0 {
			s.minVerification = score
		}
	}
}

func WithStepTimeout(d time.Duration) OnboardingOption {
	return func(s *OnboardingService) {
		if d > 0 {
			s.stepTimeout = d
		}
	}
}

// WithExternalTimeout bounds the slow collaborator calls (document
// verification, background checks).
func WithExternalTimeout(d time.Duration) OnboardingOption {
	return func(s *OnboardingService) {
		if d > 0 {
			s.externalTimeout = d
		}
	}
}

// WithProgressRetention overrides how long a finished run stays queryable
// through Progress.
func WithProgressRetention(d time.Duration) OnboardingOption {
	return func(s *OnboardingService) {
		if d > 0 {
			s.progressRetention = d
		}
	}
}

func NewOnboardingService(
	bookingSvc *BookingService,
	assignments *AssignmentService,
	guests ports.GuestRepository,
	students ports.StudentRepository,
	beds ports.BedRepository,
	payments ports.PaymentProvider,
	documents ports.DocumentProvider,
	background ports.BackgroundChecker,
	access ports.AccessProvisioner,
	notifs ports.NotificationSender,
	clock Clock,
	opts ...OnboardingOption,
) *OnboardingService {
	svc := &OnboardingService{
		bookingSvc:        bookingSvc,
		assignments:       assignments,
		guests:            guests,
		students:          students,
		beds:              beds,
		payments:          payments,
		documents:         documents,
		background:        background,
		access:            access,
		notifs:            notifs,
		clock:             clock,
		stepTimeout:       defaultStepTimeout,
		externalTimeout:   defaultExternalTimeout,
		minVerification:   defaultMinVerification,
		progressRetention: defaultProgressRetention,
		runs:              make(map[uuid.UUID]*runEntry),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Progress reports the checklist completion percentage of the most recent
// run for the booking, queryable while the run is still executing and for
// the retention window after it finishes.
func (s *OnboardingService) Progress(bookingID uuid.UUID) (float64, bool) {
	s.mu.RLock()
	entry, ok := s.runs[bookingID]
	s.mu.RUnlock()

	if !ok {
		return 0, false
	}
	return entry.oc.Progress(), true
}

// trackRun registers a fresh run and sweeps finished runs that outlived the
// retention window, so the map stays bounded by recent activity.
func (s *OnboardingService) trackRun(bookingID uuid.UUID, oc *domain.OnboardingContext) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.runs {
		if !entry.finishedAt.IsZero() && now.Sub(entry.finishedAt) > s.progressRetention {
			delete(s.runs, id)
		}
	}
	s.runs[bookingID] = &runEntry{oc: oc}
}

func (s *OnboardingService) finishRun(bookingID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.runs[bookingID]; ok {
		entry.finishedAt = s.clock.Now()
	}
}

type step struct {
	name     string
	required bool
	timeout  time.Duration
	run      func(ctx context.Context) error
	rollback func(ctx context.Context) error
}

// onboardingRun carries the mutable state of one execution. It exists for
// exactly one Run call and is discarded with it.
type onboardingRun struct {
	svc *OnboardingService
	oc  *domain.OnboardingContext

	booking           *domain.Booking
	guest             *domain.Guest
	assignment        *domain.BookingAssignment
	createdAssignment bool
	student           *domain.StudentProfile
	accessIssued      bool
}

// Run executes the full onboarding pipeline for a confirmed booking. Step
// errors never escape this boundary; the result object distinguishes "failed
// and rolled back" from "succeeded with degraded optional features".
func (s *OnboardingService) Run(ctx context.Context, bookingID uuid.UUID) (*domain.OnboardingResult, error) {
	oc := domain.NewOnboardingContext(bookingID)
	s.trackRun(bookingID, oc)
	defer s.finishRun(bookingID)

	r := &onboardingRun{svc: s, oc: oc}

	var completed []step
	for _, st := range r.steps() {
		timeout := st.timeout
		if timeout <= 0 {
			timeout = s.stepTimeout
		}

		stepCtx, cancel := context.WithTimeout(ctx, timeout)
		err := st.run(stepCtx)
		cancel()

		if err != nil {
			if !st.required {
				warn := fmt.Sprintf("%s: %v", st.name, err)
				oc.AddWarning(warn)
				log.Printf("Onboarding %s: optional step degraded: %s", bookingID, warn)
				continue
			}

			stepErr := &domain.StepError{Step: st.name, Err: err}
			oc.AddValidationErrors(stepErr.Error())
			log.Printf("Onboarding %s: %v, rolling back %d completed steps", bookingID, stepErr, len(completed))
			r.rollback(ctx, completed)

			return r.result(false, st.name), nil
		}

		if st.rollback != nil {
			completed = append(completed, st)
		}
	}

	return r.result(true, ""), nil
}

// rollback compensates completed steps in reverse order. Handlers are
// idempotent, so a handler observing partially applied or already-undone
// work still succeeds.
func (r *onboardingRun) rollback(ctx context.Context, completed []step) {
	for i := len(completed) - 1; i >= 0; i-- {
		st := completed[i]
		if err := st.rollback(ctx); err != nil {
			log.Printf("Onboarding %s: rollback of %q failed: %v", r.oc.BookingID, st.name, err)
		}
	}
}

func (r *onboardingRun) result(succeeded bool, failedStep string) *domain.OnboardingResult {
	return &domain.OnboardingResult{
		BookingID:        r.oc.BookingID,
		Succeeded:        succeeded,
		FailedStep:       failedStep,
		ValidationErrors: r.oc.ValidationErrors(),
		Warnings:         r.oc.Warnings(),
		Checklist:        r.oc.ChecklistCopy(),
		Progress:         r.oc.Progress(),
		StudentProfileID: r.oc.StudentProfileID,
	}
}

func (r *onboardingRun) steps() []step {
	ext := r.svc.externalTimeout
	return []step{
		{name: "initialize_context", required: true, run: r.initializeContext},
		{name: "validate_eligibility", required: true, run: r.validateEligibility},
		{name: "verify_documents", required: true, timeout: ext, run: r.verifyDocuments},
		{name: "validate_payment", required: true, run: r.validatePayment},
		{name: "background_check", required: false, timeout: ext, run: r.backgroundCheck},
		{name: "assign_accommodation", required: true, run: r.assignAccommodation, rollback: r.rollbackAssignment},
		{name: "create_student_profile", required: true, run: r.createStudentProfile, rollback: r.rollbackStudentProfile},
		{name: "setup_digital_services", required: false, run: r.setupDigitalServices, rollback: r.rollbackAccess},
		{name: "optional_extras", required: false, run: r.optionalExtras},
		{name: "finalize_conversion", required: true, run: r.finalizeConversion},
		{name: "send_completion_notice", required: false, run: r.sendCompletionNotice},
	}
}

// Step 1: load the booking, assert it is confirmed and that the guest has no
// active student profile, then seed the context.
func (r *onboardingRun) initializeContext(ctx context.Context) error {
	b, err := r.svc.bookingSvc.GetByID(ctx, r.oc.BookingID)
	if err != nil {
		return err
	}

	if b.Status != domain.BookingConfirmed {
		return &domain.TransitionError{From: b.Status, To: domain.BookingCheckedIn}
	}

	guest, err := r.svc.guests.GetByID(ctx, b.VisitorID)
	if err != nil {
		return err
	}

	existing, err := r.svc.students.GetActiveByGuest(ctx, guest.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("guest %s already has an active student profile: %w", guest.ID, domain.ErrConflict)
	}

	r.booking = b
	r.guest = guest
	r.oc.StudentUserID = b.VisitorID
	r.oc.HostelID = b.HostelID
	r.oc.CheckInDate = b.PreferredCheckIn
	return nil
}

// Step 2: the critical checks are missing ID/photo documents, zero capacity
// and a blacklisted guest; missing optional documents only warn.
func (r *onboardingRun) validateEligibility(ctx context.Context) error {
	var critical []string

	if r.guest.Blacklisted {
		critical = append(critical, "guest is blacklisted")
	}

	docs, err := r.svc.documents.GetDocumentsForGuest(ctx, r.guest.ID)
	if err != nil {
		return err
	}

	byType := make(map[string]bool, len(docs))
	for _, d := range docs {
		byType[d.DocType] = true
	}
	if !byType[domain.DocumentIDProof] {
		critical = append(critical, "missing id proof document")
	}
	if !byType[domain.DocumentPhoto] {
		critical = append(critical, "missing photo document")
	}
	if !byType[domain.DocumentAddressProof] {
		r.oc.AddWarning("missing optional address proof document")
	}

	free, err := r.svc.beds.CountAvailable(ctx, r.booking.HostelID, r.booking.RoomTypeRequested)
	if err != nil {
		return err
	}
	if free == 0 {
		critical = append(critical, fmt.Sprintf("no %s capacity in hostel", r.booking.RoomTypeRequested))
	}

	if len(critical) > 0 {
		r.oc.AddValidationErrors(critical...)
		return fmt.Errorf("booking is not eligible: %v: %w", critical, domain.ErrValidation)
	}

	r.oc.MarkDone(domain.ChecklistBookingValidated)
	return nil
}

// Step 3: every document is verified individually with its own timeout; the
// aggregate confidence must reach the configured minimum. A shortfall with
// zero hard failures only warns.
func (r *onboardingRun) verifyDocuments(ctx context.Context) error {
	docs, err := r.svc.documents.GetDocumentsForGuest(ctx, r.guest.ID)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		return fmt.Errorf("guest has no documents to verify: %w", domain.ErrValidation)
	}

	var total float64
	hardFailures := 0
	for _, doc := range docs {
		docCtx, cancel := context.WithTimeout(ctx, r.svc.externalTimeout)
		res, err := r.svc.documents.VerifyDocument(docCtx, doc)
		cancel()
		if err != nil {
			return fmt.Errorf("verification of %s failed: %w", doc.DocType, err)
		}

		total += res.ConfidenceScore
		if res.Status == domain.DocumentFailed {
			hardFailures++
			r.oc.AddWarning(fmt.Sprintf("document %s failed verification", doc.DocType))
		}
	}

	score := total / float64(len(docs))
	r.oc.SetVerificationScore(score)

	if score < r.svc.minVerification {
		if hardFailures > 0 {
			return fmt.Errorf("verification score %.2f below minimum %.2f with %d failed documents: %w",
				score, r.svc.minVerification, hardFailures, domain.ErrValidation)
		}
		r.oc.AddWarning(fmt.Sprintf("verification score %.2f below minimum %.2f", score, r.svc.minVerification))
		return nil
	}

	if hardFailures == 0 {
		r.oc.MarkDone(domain.ChecklistDocumentsVerified)
	}
	return nil
}

// Step 4: the advance must be covered by completed payments; a security
// deposit shortfall only warns.
func (r *onboardingRun) validatePayment(ctx context.Context) error {
	payments, err := r.svc.payments.GetPaymentsForBooking(ctx, r.booking.ID)
	if err != nil {
		return err
	}

	var advancePaid, depositPaid float64
	for _, p := range payments {
		if p.PaymentStatus != domain.PaymentCompleted {
			continue
		}
		switch p.PaymentType {
		case domain.PaymentTypeAdvance:
			advancePaid += p.Amount
		case domain.PaymentTypeDeposit:
			depositPaid += p.Amount
		}
	}

	if advancePaid < r.booking.AdvanceAmount {
		return fmt.Errorf("advance paid %.2f is below required %.2f: %w", advancePaid, r.booking.AdvanceAmount, domain.ErrValidation)
	}

	if depositPaid < r.booking.SecurityDeposit {
		r.oc.AddWarning(fmt.Sprintf("security deposit short by %.2f", r.booking.SecurityDeposit-depositPaid))
	}

	r.oc.MarkDone(domain.ChecklistPaymentVerified)
	return nil
}

// Step 5: never aborts; a failed check only degrades the score and adds
// recommendations.
func (r *onboardingRun) backgroundCheck(ctx context.Context) error {
	res, err := r.svc.background.Check(ctx, r.guest.ID)
	if err != nil {
		return err
	}

	if !res.Passed {
		r.oc.AddWarning(fmt.Sprintf("background check flagged guest (score %.2f)", res.Score))
		r.oc.AddRecommendations(res.Recommendations...)
	}

	r.oc.MarkDone(domain.ChecklistBackgroundCheckDone)
	return nil
}

// Step 6: reuse a live pre-assignment when its bed is still reserved for
// this booking; otherwise score and reserve a fresh bed. Only a bed reserved
// by this run is deleted on rollback.
func (r *onboardingRun) assignAccommodation(ctx context.Context) error {
	existing, err := r.svc.assignments.GetActiveByBooking(ctx, r.booking.ID)
	if err != nil {
		return err
	}

	if existing != nil {
		bed, err := r.svc.beds.GetByID(ctx, existing.BedID)
		if err != nil {
			return err
		}
		if bed.Status == domain.BedReserved && bed.ReservedByBookingID != nil && *bed.ReservedByBookingID == r.booking.ID {
			r.assignment = existing
			r.oc.AssignedRoomID = &existing.RoomID
			r.oc.AssignedBedID = &existing.BedID
			r.oc.MarkDone(domain.ChecklistAccommodationAssigned)
			return nil
		}

		// Pre-assignment went stale; park it and fall through to scoring.
		if err := r.svc.assignments.Deactivate(ctx, r.booking.ID, "bed no longer reserved at onboarding"); err != nil {
			return err
		}
	}

	a, err := r.svc.assignments.AutoAssign(ctx, r.booking.ID, r.booking.HostelID, r.booking.RoomTypeRequested, r.guest)
	if err != nil {
		return err
	}

	r.assignment = a
	r.createdAssignment = true
	r.oc.AssignedRoomID = &a.RoomID
	r.oc.AssignedBedID = &a.BedID
	r.oc.MarkDone(domain.ChecklistAccommodationAssigned)
	return nil
}

func (r *onboardingRun) rollbackAssignment(ctx context.Context) error {
	if !r.createdAssignment || r.assignment == nil {
		return nil
	}
	if err := r.svc.assignments.Remove(ctx, r.assignment); err != nil {
		return err
	}
	r.assignment = nil
	r.createdAssignment = false
	return nil
}

// Step 7
func (r *onboardingRun) createStudentProfile(ctx context.Context) error {
	student := &domain.StudentProfile{
		ID:          uuid.New(),
		GuestID:     r.guest.ID,
		BookingID:   r.booking.ID,
		HostelID:    r.booking.HostelID,
		RoomID:      r.assignment.RoomID,
		BedID:       r.assignment.BedID,
		CheckInDate: r.booking.PreferredCheckIn,
		IsActive:    true,
		CreatedAt:   r.svc.clock.Now(),
	}

	if err := r.svc.students.Create(ctx, student); err != nil {
		return err
	}

	r.student = student
	r.oc.StudentProfileID = &student.ID
	r.oc.MarkDone(domain.ChecklistProfileCreated)
	return nil
}

func (r *onboardingRun) rollbackStudentProfile(ctx context.Context) error {
	if r.student == nil {
		return nil
	}
	if err := r.svc.students.Delete(ctx, r.student.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	r.student = nil
	r.oc.StudentProfileID = nil
	return nil
}

// Step 8: each capability is attempted independently; failures are warnings.
// The access milestone needs at least one of room key / access card.
func (r *onboardingRun) setupDigitalServices(ctx context.Context) error {
	keyOrCard := false
	for _, service := range domain.DigitalServices {
		if err := r.svc.access.Provision(ctx, r.student.ID, service); err != nil {
			r.oc.AddWarning(fmt.Sprintf("could not provision %s: %v", service, err))
			continue
		}
		r.accessIssued = true
		if service == domain.ServiceRoomKey || service == domain.ServiceAccessCard {
			keyOrCard = true
		}
	}

	if keyOrCard {
		r.oc.MarkDone(domain.ChecklistAccessProvisioned)
	} else {
		r.oc.AddWarning("neither room key nor access card could be issued")
	}
	return nil
}

func (r *onboardingRun) rollbackAccess(ctx context.Context) error {
	if !r.accessIssued || r.student == nil {
		return nil
	}
	if err := r.svc.access.Revoke(ctx, r.student.ID); err != nil {
		return err
	}
	r.accessIssued = false
	return nil
}

// Step 9: meal preferences, orientation, welcome package. Best effort only.
func (r *onboardingRun) optionalExtras(ctx context.Context) error {
	for _, kind := range []string{domain.NotifyMealPreferences, domain.NotifyOrientation, domain.NotifyWelcomePackage} {
		if err := r.svc.notifs.Send(ctx, kind, r.guest.ID, map[string]string{
			"booking_id": r.booking.ID.String(),
		}); err != nil {
			r.oc.AddWarning(fmt.Sprintf("%s: %v", kind, err))
		}
	}
	return nil
}

// Step 10: the point of no return sits at the checked_in conversion. Once
// that commits, the run can no longer fail: closing the request out as
// completed is best effort, since rolling back here would delete a profile
// the booking row already references.
func (r *onboardingRun) finalizeConversion(ctx context.Context) error {
	b, err := r.svc.bookingSvc.ConvertToStudent(ctx, r.booking.ID, r.student.ID)
	if err != nil {
		return err
	}

	r.booking = b
	r.oc.MarkDone(domain.ChecklistConversionCompleted)

	b, err = r.svc.bookingSvc.MarkCompleted(ctx, b.ID, "onboarding completed")
	if err != nil {
		r.oc.AddWarning(fmt.Sprintf("could not close out booking: %v", err))
		return nil
	}

	r.booking = b
	return nil
}

// Step 11
func (r *onboardingRun) sendCompletionNotice(ctx context.Context) error {
	return r.svc.notifs.Send(ctx, domain.NotifyOnboardingCompleted, r.guest.ID, map[string]string{
		"booking_id": r.booking.ID.String(),
		"student_id": r.student.ID.String(),
	})
}
