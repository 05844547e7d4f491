package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/srgjo27/hostel_booking/internal/core/domain"
	"github.com/srgjo27/hostel_booking/internal/core/services"
)

var validate = validator.New()

type BookingHandler struct {
	bookings *services.BookingService
	refunds  *services.RefundService
}

func NewBookingHandler(bookings *services.BookingService, refunds *services.RefundService) *BookingHandler {
	return &BookingHandler{bookings: bookings, refunds: refunds}
}

func (h *BookingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /bookings", h.CreateBooking)
	mux.HandleFunc("GET /bookings/{id}", h.GetBooking)
	mux.HandleFunc("GET /bookings/{id}/history", h.GetHistory)
	mux.HandleFunc("POST /bookings/{id}/approve", h.Approve)
	mux.HandleFunc("POST /bookings/{id}/reject", h.Reject)
	mux.HandleFunc("POST /bookings/{id}/cancel", h.Cancel)
	mux.HandleFunc("POST /bookings/{id}/confirm-payment", h.ConfirmPayment)
	mux.HandleFunc("POST /bookings/{id}/refund/initiate", h.InitiateRefund)
	mux.HandleFunc("POST /bookings/{id}/refund/complete", h.CompleteRefund)
	mux.HandleFunc("POST /bookings/{id}/refund/fail", h.FailRefund)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.bookings.CreateBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.bookings.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	history, err := h.bookings.GetStatusHistory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

type approveRequest struct {
	ApproverID string `json:"approver_id" validate:"required,uuid4"`
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req approveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	approverID, _ := uuid.Parse(req.ApproverID)
	b, err := h.bookings.Approve(r.Context(), id, approverID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

type actorReasonRequest struct {
	ActorID string `json:"actor_id" validate:"required,uuid4"`
	Reason  string `json:"reason" validate:"required"`
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req actorReasonRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	actorID, _ := uuid.Parse(req.ActorID)
	b, err := h.bookings.Reject(r.Context(), id, actorID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req actorReasonRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	actorID, _ := uuid.Parse(req.ActorID)
	b, err := h.bookings.Cancel(r.Context(), id, actorID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

type confirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference" validate:"required"`
}

func (h *BookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req confirmPaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.bookings.ConfirmPayment(r.Context(), id, req.PaymentReference)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) InitiateRefund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := h.refunds.InitiateRefund(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

type completeRefundRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

func (h *BookingHandler) CompleteRefund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req completeRefundRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.refunds.CompleteRefund(r.Context(), id, req.TransactionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

type failRefundRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *BookingHandler) FailRefund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req failRefundRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.refunds.FailRefund(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

type AvailabilityHandler struct {
	availability *services.AvailabilityService
}

func NewAvailabilityHandler(availability *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

func (h *AvailabilityHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /availability", h.CheckAvailability)
}

func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	hostelID, err := uuid.Parse(q.Get("hostel_id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid hostel_id")
		return
	}

	roomType := q.Get("room_type")
	if roomType == "" {
		writeJSONError(w, http.StatusBadRequest, "room_type is required")
		return
	}

	checkIn, err := time.Parse("2006-01-02", q.Get("check_in"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid check_in date")
		return
	}

	months, err := strconv.Atoi(q.Get("duration_months"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid duration_months")
		return
	}

	available, err := h.availability.CheckAvailability(r.Context(), hostelID, roomType, checkIn, months)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"available":       available,
		"check_in":        checkIn.Format("2006-01-02"),
		"check_out":       services.CheckOutDate(checkIn, months).Format("2006-01-02"),
		"duration_months": months,
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid booking id")
		return uuid.Nil, false
	}
	return id, true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeError(w http.ResponseWriter, err error) {
	var transitionErr *domain.TransitionError
	var refundErr *domain.RefundTransitionError

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.As(err, &transitionErr), errors.As(err, &refundErr):
		writeJSONError(w, http.StatusConflict, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}
