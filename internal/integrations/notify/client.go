// Package notify is the thin client for the notification delivery service.
// The booking service decides WHEN a reminder is due (notification rules);
// delivery channels and templates belong to the collaborator.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("notify client: internal error")

	// ErrInvalidResponse is returned on malformed or unexpected responses.
	ErrInvalidResponse = errors.New("notify client: invalid response")
)

// Reminder is one reminder delivery request.
type Reminder struct {
	PatientID     int64     `json:"patient_id"`
	AppointmentID int64     `json:"appointment_id"`
	StartsAt      time.Time `json:"starts_at"`
	LeadHours     int       `json:"lead_hours"`
	ServiceName   string    `json:"service_name"`
}

// Logger is the logging dependency of the client.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client posts reminders to the notification service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a notification service client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// SendReminder delivers one appointment reminder.
func (c *Client) SendReminder(ctx context.Context, reminder *Reminder) error {
	payload, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("%w: failed to encode reminder: %v", ErrInternal, err)
	}

	url := c.baseURL + "/internal/reminders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
	return nil
}
