package staff

import (
	"strings"
	"time"

	"github.com/bellasalong/booking-platform/internal/clock"
)

// WorkingHoursEntry is one weekday's working window for a worker.
// A weekday with no entry means the worker is off that day.
type WorkingHoursEntry struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Validate checks the weekday name and the HH:MM window.
func (e *WorkingHoursEntry) Validate() error {
	if !clock.IsWeekday(e.DayOfWeek) {
		return ErrInvalidDayOfWeek
	}
	start, err := time.Parse("15:04", e.StartTime)
	if err != nil {
		return ErrInvalidTimeRange
	}
	end, err := time.Parse("15:04", e.EndTime)
	if err != nil {
		return ErrInvalidTimeRange
	}
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Worker is a staff member customers can book.
type Worker struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email,omitempty"`
	IsActive     bool                `json:"is_active"`
	ServiceIDs   []string            `json:"service_ids"`
	WorkingHours []WorkingHoursEntry `json:"working_hours"`
	CreatedAt    time.Time           `json:"created_at"`
}

// HoursFor returns the worker's working window for a weekday, if any.
func (w *Worker) HoursFor(dayOfWeek string) (WorkingHoursEntry, bool) {
	for _, e := range w.WorkingHours {
		if e.DayOfWeek == dayOfWeek {
			return e, true
		}
	}
	return WorkingHoursEntry{}, false
}

// OffersAll reports whether the worker offers every one of the given services.
func (w *Worker) OffersAll(serviceIDs []string) bool {
	offered := make(map[string]bool, len(w.ServiceIDs))
	for _, id := range w.ServiceIDs {
		offered[id] = true
	}
	for _, id := range serviceIDs {
		if !offered[id] {
			return false
		}
	}
	return true
}

// CreateWorkerRequest is the admin request body for creating a worker.
type CreateWorkerRequest struct {
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	ServiceIDs   []string            `json:"service_ids"`
	WorkingHours []WorkingHoursEntry `json:"working_hours"`
	IsActive     *bool               `json:"is_active"`
}

// Validate validates the create worker request
func (r *CreateWorkerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	seen := make(map[string]bool, len(r.WorkingHours))
	for i := range r.WorkingHours {
		e := &r.WorkingHours[i]
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.DayOfWeek] {
			return ErrDuplicateDayOfWeek
		}
		seen[e.DayOfWeek] = true
	}
	return nil
}

// Active defaults to true when the request omits is_active.
func (r *CreateWorkerRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}
