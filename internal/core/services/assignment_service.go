package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/hostel_booking/internal/core/domain"
	"github.com/srgjo27/hostel_booking/internal/core/ports"
)

const (
	maxReserveAttempts = 3

	candidateBedsTTL = 30 * time.Second
)

func candidateBedsKey(hostelID uuid.UUID, roomType string) string {
	return fmt.Sprintf("available_beds:%s:%s", hostelID, roomType)
}

type AssignmentService struct {
	assignments ports.AssignmentRepository
	beds        ports.BedRepository
	cache       *redis.Client
	clock       Clock
}

func NewAssignmentService(assignments ports.AssignmentRepository, beds ports.BedRepository, cache *redis.Client, clock Clock) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		beds:        beds,
		cache:       cache,
		clock:       clock,
	}
}

// Assign locks the given bed for the booking. The bed reservation is a
// compare-and-set on the bed's version, so two bookings racing for the same
// bed cannot both win.
func (s *AssignmentService) Assign(ctx context.Context, bookingID, roomID, bedID uuid.UUID) (*domain.BookingAssignment, error) {
	existing, err := s.assignments.GetActiveByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("booking %s already has an active assignment: %w", bookingID, domain.ErrConflict)
	}

	bed, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return nil, err
	}

	if bed.RoomID != roomID {
		return nil, fmt.Errorf("bed %s does not belong to room %s: %w", bedID, roomID, domain.ErrValidation)
	}

	if !bed.IsAvailable() {
		return nil, fmt.Errorf("bed %s is %s: %w", bed.BedNumber, bed.Status, domain.ErrConflict)
	}

	taken, err := s.assignments.HasActiveForBed(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("bed %s is held by another active assignment: %w", bed.BedNumber, domain.ErrConflict)
	}

	if err := s.beds.ReserveBed(ctx, bedID, bookingID, bed.Version); err != nil {
		if errors.Is(err, domain.ErrBedTaken) {
			return nil, fmt.Errorf("bed %s: %w", bed.BedNumber, domain.ErrConflict)
		}
		return nil, err
	}

	return s.createAssignment(ctx, bookingID, roomID, bedID)
}

func (s *AssignmentService) createAssignment(ctx context.Context, bookingID, roomID, bedID uuid.UUID) (*domain.BookingAssignment, error) {
	now := s.clock.Now()

	a := &domain.BookingAssignment{
		ID:         uuid.New(),
		BookingID:  bookingID,
		RoomID:     roomID,
		BedID:      bedID,
		IsActive:   true,
		AssignedAt: now,
	}

	h := &domain.AssignmentHistory{
		ID:         uuid.New(),
		BookingID:  bookingID,
		ChangeType: domain.AssignmentInitial,
		ToRoomID:   roomID,
		ToBedID:    bedID,
		ChangedAt:  now,
	}

	if err := s.assignments.Create(ctx, a, h); err != nil {
		// The bed was reserved before the insert; give it back.
		if relErr := s.beds.ReleaseBed(ctx, bedID); relErr != nil {
			log.Printf("Failed to release bed %s after assignment insert failure: %v", bedID, relErr)
		}
		return nil, err
	}

	s.invalidateCandidates(ctx, roomID)
	return a, nil
}

// Reassign moves an active assignment to a new room/bed. The new bed is
// reserved first via compare-and-set, then the assignment update, history
// entry and old-bed release commit together.
func (s *AssignmentService) Reassign(ctx context.Context, bookingID, newRoomID, newBedID uuid.UUID, reason string) (*domain.BookingAssignment, error) {
	a, err := s.assignments.GetActiveByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("booking %s has no active assignment: %w", bookingID, domain.ErrNotFound)
	}

	newBed, err := s.beds.GetByID(ctx, newBedID)
	if err != nil {
		return nil, err
	}

	if newBed.RoomID != newRoomID {
		return nil, fmt.Errorf("bed %s does not belong to room %s: %w", newBedID, newRoomID, domain.ErrValidation)
	}

	if !newBed.IsAvailable() {
		return nil, fmt.Errorf("bed %s is %s: %w", newBed.BedNumber, newBed.Status, domain.ErrConflict)
	}

	if err := s.beds.ReserveBed(ctx, newBedID, bookingID, newBed.Version); err != nil {
		if errors.Is(err, domain.ErrBedTaken) {
			return nil, fmt.Errorf("bed %s: %w", newBed.BedNumber, domain.ErrConflict)
		}
		return nil, err
	}

	oldRoomID := a.RoomID
	oldBedID := a.BedID

	a.RoomID = newRoomID
	a.BedID = newBedID

	h := &domain.AssignmentHistory{
		ID:         uuid.New(),
		BookingID:  bookingID,
		ChangeType: domain.AssignmentReassignment,
		FromRoomID: &oldRoomID,
		FromBedID:  &oldBedID,
		ToRoomID:   newRoomID,
		ToBedID:    newBedID,
		Reason:     reason,
		ChangedAt:  s.clock.Now(),
	}

	if err := s.assignments.Reassign(ctx, a, h, oldBedID); err != nil {
		a.RoomID = oldRoomID
		a.BedID = oldBedID
		if relErr := s.beds.ReleaseBed(ctx, newBedID); relErr != nil {
			log.Printf("Failed to release bed %s after reassignment failure: %v", newBedID, relErr)
		}
		return nil, err
	}

	s.invalidateCandidates(ctx, oldRoomID)
	s.invalidateCandidates(ctx, newRoomID)
	return a, nil
}

// Deactivate parks the assignment without deleting it, freeing the bed. The
// row stays for the audit trail and can be reactivated later.
func (s *AssignmentService) Deactivate(ctx context.Context, bookingID uuid.UUID, reason string) error {
	a, err := s.assignments.GetActiveByBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("booking %s has no active assignment: %w", bookingID, domain.ErrNotFound)
	}

	now := s.clock.Now()
	a.IsActive = false
	a.DeactivatedAt = &now
	a.DeactivationReason = reason

	if err := s.assignments.Deactivate(ctx, a); err != nil {
		a.IsActive = true
		a.DeactivatedAt = nil
		a.DeactivationReason = ""
		return err
	}

	s.invalidateCandidates(ctx, a.RoomID)
	return nil
}

func (s *AssignmentService) Reactivate(ctx context.Context, assignmentID uuid.UUID) error {
	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}

	if a.IsActive {
		return fmt.Errorf("assignment %s is already active: %w", assignmentID, domain.ErrConflict)
	}

	bed, err := s.beds.GetByID(ctx, a.BedID)
	if err != nil {
		return err
	}

	if !bed.IsAvailable() {
		return fmt.Errorf("bed %s is %s: %w", bed.BedNumber, bed.Status, domain.ErrConflict)
	}

	a.IsActive = true
	a.DeactivatedAt = nil
	a.DeactivationReason = ""

	if err := s.assignments.Reactivate(ctx, a, bed.Version); err != nil {
		a.IsActive = false
		if errors.Is(err, domain.ErrBedTaken) {
			return fmt.Errorf("bed %s: %w", bed.BedNumber, domain.ErrConflict)
		}
		return err
	}

	s.invalidateCandidates(ctx, a.RoomID)
	return nil
}

// Remove deletes the assignment row and frees its bed. It is the rollback
// hook of the onboarding workflow and is idempotent: removing an assignment
// that is already gone succeeds.
func (s *AssignmentService) Remove(ctx context.Context, assignment *domain.BookingAssignment) error {
	if assignment == nil {
		return nil
	}

	if err := s.assignments.Delete(ctx, assignment.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	s.invalidateCandidates(ctx, assignment.RoomID)
	return nil
}

func (s *AssignmentService) GetActiveByBooking(ctx context.Context, bookingID uuid.UUID) (*domain.BookingAssignment, error) {
	return s.assignments.GetActiveByBooking(ctx, bookingID)
}

func (s *AssignmentService) GetHistory(ctx context.Context, bookingID uuid.UUID) ([]domain.AssignmentHistory, error) {
	return s.assignments.GetHistory(ctx, bookingID)
}

// AutoAssign scores every available bed for the hostel/room type and locks
// the best one. Losing the compare-and-set to a concurrent onboarding run is
// recoverable: selection retries against the refreshed pool a bounded number
// of times.
func (s *AssignmentService) AutoAssign(ctx context.Context, bookingID, hostelID uuid.UUID, roomType string, guest *domain.Guest) (*domain.BookingAssignment, error) {
	existing, err := s.assignments.GetActiveByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("booking %s already has an active assignment: %w", bookingID, domain.ErrConflict)
	}

	for attempt := 1; attempt <= maxReserveAttempts; attempt++ {
		// A lost reservation race means the pool changed; later attempts
		// bypass the cache to select against fresh rows.
		candidates, err := s.candidates(ctx, hostelID, roomType, attempt > 1)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("no available beds for %s/%s: %w", hostelID, roomType, domain.ErrConflict)
		}

		best := RankBeds(candidates, guest)[0]

		err = s.beds.ReserveBed(ctx, best.Bed.ID, bookingID, best.Bed.Version)
		if err != nil {
			if errors.Is(err, domain.ErrBedTaken) {
				log.Printf("Bed %s taken mid-selection (attempt %d/%d), retrying...", best.Bed.BedNumber, attempt, maxReserveAttempts)
				continue
			}
			return nil, err
		}

		return s.createAssignment(ctx, bookingID, best.Room.ID, best.Bed.ID)
	}

	return nil, fmt.Errorf("could not reserve a bed after %d attempts: %w", maxReserveAttempts, domain.ErrConflict)
}

// ScoreBed rates a candidate bed for a guest. Base 50, less-crowded rooms
// earn up to 20, ground floor earns 10 for guests needing it, AC/balcony/
// bed-type preference matches earn 15/5/10, capped at 100.
func ScoreBed(c domain.BedCandidate, guest *domain.Guest) float64 {
	score := 50.0
	score += (1 - c.Room.OccupancyRatio()) * 20

	if guest != nil {
		if guest.NeedsGroundFloor && c.Room.FloorNumber == 0 {
			score += 10
		}
		if guest.WantsAC && c.Room.HasAC {
			score += 15
		}
		if guest.WantsBalcony && c.Room.HasBalcony {
			score += 5
		}
		if guest.PreferredBedType != "" && guest.PreferredBedType == c.Bed.BedType {
			score += 10
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// RankBeds orders candidates by descending score; equal scores resolve to
// the lowest bed number so selection is deterministic.
func RankBeds(candidates []domain.BedCandidate, guest *domain.Guest) []domain.BedCandidate {
	ranked := make([]domain.BedCandidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := ScoreBed(ranked[i], guest), ScoreBed(ranked[j], guest)
		if si != sj {
			return si > sj
		}
		return ranked[i].Bed.BedNumber < ranked[j].Bed.BedNumber
	})

	return ranked
}

func (s *AssignmentService) candidates(ctx context.Context, hostelID uuid.UUID, roomType string, fresh bool) ([]domain.BedCandidate, error) {
	key := candidateBedsKey(hostelID, roomType)

	if !fresh && s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var cached []domain.BedCandidate
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			log.Printf("Bed cache read failed for %s: %v", key, err)
		}
	}

	rows, err := s.beds.GetCandidates(ctx, hostelID, roomType)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(rows); err == nil {
			if err := s.cache.Set(ctx, key, data, candidateBedsTTL).Err(); err != nil {
				log.Printf("Bed cache write failed for %s: %v", key, err)
			}
		}
	}

	return rows, nil
}

func (s *AssignmentService) invalidateCandidates(ctx context.Context, roomID uuid.UUID) {
	if s.cache == nil {
		return
	}

	room, err := s.beds.GetRoomByID(ctx, roomID)
	if err != nil {
		log.Printf("Failed to resolve room %s for cache invalidation: %v", roomID, err)
		return
	}

	key := candidateBedsKey(room.HostelID, room.RoomType)
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		log.Printf("Failed to invalidate bed cache %s: %v", key, err)
	}
}
