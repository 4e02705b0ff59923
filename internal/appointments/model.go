package appointments

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bellasalong/booking-platform/internal/availability"
	"github.com/bellasalong/booking-platform/internal/clock"
)

// Status is the appointment lifecycle state.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusConfirmed || s == StatusCompleted || s == StatusCancelled
}

// Appointment is a booked visit. Rows are never deleted; cancelling flips
// the status, which removes the appointment from conflict consideration
// while keeping it for history.
type Appointment struct {
	ID         string   `json:"id"`
	CustomerID string   `json:"customer_id"`
	WorkerID   string   `json:"worker_id"`
	ServiceIDs []string `json:"service_ids"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Status     Status   `json:"status"`

	// Denormalized occupied interval in minutes since midnight, backing
	// the database exclusion constraint.
	StartMinute int `json:"-"`
	EndMinute   int `json:"-"`

	CancellationToken string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// ServiceRef accepts either a bare service ID string or an expanded object
// with an id field, and normalizes both to the ID.
type ServiceRef struct {
	ID string
}

// UnmarshalJSON implements the lenient decoding described above.
func (s *ServiceRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		return json.Unmarshal(data, &s.ID)
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.ID == "" {
		return ErrInvalidServiceRef
	}
	s.ID = obj.ID
	return nil
}

// MarshalJSON renders the normalized form.
func (s ServiceRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ID)
}

// CreateAppointmentRequest is the booking wizard's submit payload.
type CreateAppointmentRequest struct {
	CustomerName  string       `json:"customer_name"`
	CustomerEmail string       `json:"customer_email"`
	CustomerPhone string       `json:"customer_phone"`
	WorkerID      string       `json:"worker_id"`
	Services      []ServiceRef `json:"services"`
	Date          string       `json:"date"`
	Time          string       `json:"time"`
}

// Validate validates the create appointment request
func (r *CreateAppointmentRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return ErrMissingCustomer
	}
	if !strings.Contains(r.CustomerEmail, "@") {
		return ErrMissingCustomer
	}
	if r.WorkerID == "" {
		return ErrMissingWorker
	}
	if len(r.Services) == 0 {
		return ErrMissingServices
	}
	if _, err := clock.ParseDateKey(r.Date); err != nil {
		return ErrInvalidDate
	}
	if _, err := availability.ParseTime(r.Time); err != nil {
		return ErrInvalidTime
	}
	return nil
}

// ServiceIDs returns the normalized service IDs in request order.
func (r *CreateAppointmentRequest) ServiceIDs() []string {
	out := make([]string, 0, len(r.Services))
	for _, s := range r.Services {
		out = append(out, s.ID)
	}
	return out
}
