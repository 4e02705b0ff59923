package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage
type Repository interface {
	Create(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	GetByToken(ctx context.Context, token string) (*Appointment, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Appointment, error)
	// UpdateSchedule moves an appointment to a new date and time together
	// with its recomputed occupied interval.
	UpdateSchedule(ctx context.Context, id, date, hhmm string, startMinute, endMinute int) (*Appointment, error)
	// ListActiveByWorker returns all non-cancelled appointments for a
	// worker across all dates, optionally excluding one appointment ID.
	ListActiveByWorker(ctx context.Context, workerID, excludeID string) ([]*Appointment, error)
	// ListConfirmedByDate returns confirmed appointments on a date key.
	ListConfirmedByDate(ctx context.Context, date string) ([]*Appointment, error)
	ListByDateRange(ctx context.Context, from, to string) ([]*Appointment, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu           sync.RWMutex
	appointments map[string]*Appointment
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		appointments: make(map[string]*Appointment),
	}
}

// Create stores a new appointment
func (r *InMemoryRepository) Create(ctx context.Context, appt *Appointment) error {
	clone := *appt
	if clone.ID == "" {
		clone.ID = uuid.New().String()
	}
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.appointments[clone.ID] = &clone
	r.mu.Unlock()

	*appt = clone
	return nil
}

// GetByID retrieves an appointment by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return appt, nil
}

// GetByToken retrieves an appointment by its cancellation token
func (r *InMemoryRepository) GetByToken(ctx context.Context, token string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, appt := range r.appointments {
		if appt.CancellationToken == token {
			return appt, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

// UpdateStatus sets the status of an appointment
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	updated := *appt
	updated.Status = status
	r.appointments[id] = &updated
	return &updated, nil
}

// UpdateSchedule moves an appointment to a new date and time
func (r *InMemoryRepository) UpdateSchedule(ctx context.Context, id, date, hhmm string, startMinute, endMinute int) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	updated := *appt
	updated.Date = date
	updated.Time = hhmm
	updated.StartMinute = startMinute
	updated.EndMinute = endMinute
	r.appointments[id] = &updated
	return &updated, nil
}

// ListActiveByWorker returns non-cancelled appointments for a worker
func (r *InMemoryRepository) ListActiveByWorker(ctx context.Context, workerID, excludeID string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Appointment
	for _, appt := range r.appointments {
		if appt.WorkerID != workerID || appt.Status == StatusCancelled {
			continue
		}
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		out = append(out, appt)
	}
	sortByStart(out)
	return out, nil
}

// ListConfirmedByDate returns confirmed appointments on a date
func (r *InMemoryRepository) ListConfirmedByDate(ctx context.Context, date string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Appointment
	for _, appt := range r.appointments {
		if appt.Date == date && appt.Status == StatusConfirmed {
			out = append(out, appt)
		}
	}
	sortByStart(out)
	return out, nil
}

// ListByDateRange returns all appointments with from <= date <= to
func (r *InMemoryRepository) ListByDateRange(ctx context.Context, from, to string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Appointment
	for _, appt := range r.appointments {
		if appt.Date >= from && appt.Date <= to {
			out = append(out, appt)
		}
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(appts []*Appointment) {
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}
