package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/srgjo27/hostel_booking/internal/core/services"
)

type OnboardingHandler struct {
	onboarding  *services.OnboardingService
	assignments *services.AssignmentService
}

func NewOnboardingHandler(onboarding *services.OnboardingService, assignments *services.AssignmentService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding, assignments: assignments}
}

func (h *OnboardingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /onboarding/{id}", h.Start)
	mux.HandleFunc("GET /onboarding/{id}/progress", h.Progress)
	mux.HandleFunc("POST /bookings/{id}/assignment", h.Assign)
	mux.HandleFunc("POST /bookings/{id}/assignment/reassign", h.Reassign)
	mux.HandleFunc("POST /bookings/{id}/assignment/deactivate", h.Deactivate)
	mux.HandleFunc("GET /bookings/{id}/assignment/history", h.AssignmentHistory)
}

// Start runs the whole onboarding pipeline synchronously. Failed runs are
// reported with 200 and Succeeded=false; they are an outcome, not a
// transport error.
func (h *OnboardingHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.onboarding.Run(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *OnboardingHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	progress, found := h.onboarding.Progress(id)
	if !found {
		writeJSONError(w, http.StatusNotFound, "no onboarding run for booking")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"booking_id": id,
		"progress":   progress,
	})
}

type assignRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid4"`
	BedID  string `json:"bed_id" validate:"required,uuid4"`
}

func (h *OnboardingHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req assignRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	roomID, _ := uuid.Parse(req.RoomID)
	bedID, _ := uuid.Parse(req.BedID)

	a, err := h.assignments.Assign(r.Context(), id, roomID, bedID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

type reassignRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid4"`
	BedID  string `json:"bed_id" validate:"required,uuid4"`
	Reason string `json:"reason" validate:"required"`
}

func (h *OnboardingHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req reassignRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	roomID, _ := uuid.Parse(req.RoomID)
	bedID, _ := uuid.Parse(req.BedID)

	a, err := h.assignments.Reassign(r.Context(), id, roomID, bedID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

type deactivateRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *OnboardingHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req deactivateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.assignments.Deactivate(r.Context(), id, req.Reason); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func (h *OnboardingHandler) AssignmentHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	history, err := h.assignments.GetHistory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}
