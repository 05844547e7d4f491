package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
)

// Client talks to the surrounding hostel platform (payments, documents,
// background checks, access provisioning, notifications) over its internal
// HTTP API. The booking core only reads state and fires requests; it owns
// none of these subsystems.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type paymentDTO struct {
	ID            uuid.UUID `json:"id"`
	BookingID     uuid.UUID `json:"booking_id"`
	Amount        float64   `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
	PaymentType   string    `json:"payment_type"`
}

func (c *Client) GetPaymentsForBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error) {
	var dtos []paymentDTO
	if err := c.get(ctx, fmt.Sprintf("/internal/bookings/%s/payments", bookingID), &dtos); err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0, len(dtos))
	for _, d := range dtos {
		payments = append(payments, domain.Payment{
			ID:            d.ID,
			BookingID:     d.BookingID,
			Amount:        d.Amount,
			PaymentStatus: d.PaymentStatus,
			PaymentType:   d.PaymentType,
		})
	}
	return payments, nil
}

type documentDTO struct {
	ID      uuid.UUID `json:"id"`
	GuestID uuid.UUID `json:"guest_id"`
	DocType string    `json:"doc_type"`
}

func (c *Client) GetDocumentsForGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Document, error) {
	var dtos []documentDTO
	if err := c.get(ctx, fmt.Sprintf("/internal/guests/%s/documents", guestID), &dtos); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(dtos))
	for _, d := range dtos {
		docs = append(docs, domain.Document{ID: d.ID, GuestID: d.GuestID, DocType: d.DocType})
	}
	return docs, nil
}

func (c *Client) VerifyDocument(ctx context.Context, doc domain.Document) (*domain.DocumentVerification, error) {
	var out struct {
		Status          string  `json:"status"`
		ConfidenceScore float64 `json:"confidence_score"`
	}
	if err := c.post(ctx, fmt.Sprintf("/internal/documents/%s/verify", doc.ID), nil, &out); err != nil {
		return nil, err
	}
	return &domain.DocumentVerification{Status: out.Status, ConfidenceScore: out.ConfidenceScore}, nil
}

func (c *Client) Check(ctx context.Context, guestID uuid.UUID) (*domain.BackgroundCheckResult, error) {
	var out struct {
		Passed          bool     `json:"passed"`
		Score           float64  `json:"score"`
		Recommendations []string `json:"recommendations"`
	}
	if err := c.post(ctx, fmt.Sprintf("/internal/guests/%s/background-check", guestID), nil, &out); err != nil {
		return nil, err
	}
	return &domain.BackgroundCheckResult{Passed: out.Passed, Score: out.Score, Recommendations: out.Recommendations}, nil
}

func (c *Client) Provision(ctx context.Context, studentID uuid.UUID, service domain.DigitalService) error {
	body := map[string]string{"service": string(service)}
	return c.post(ctx, fmt.Sprintf("/internal/students/%s/services", studentID), body, nil)
}

func (c *Client) Revoke(ctx context.Context, studentID uuid.UUID) error {
	return c.post(ctx, fmt.Sprintf("/internal/students/%s/services/revoke", studentID), nil, nil)
}

func (c *Client) Send(ctx context.Context, kind string, recipient uuid.UUID, payload map[string]string) error {
	body := map[string]any{
		"kind":      kind,
		"recipient": recipient.String(),
		"payload":   payload,
	}
	return c.post(ctx, "/internal/notifications", body, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s returned %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
