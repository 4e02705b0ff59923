package appointments

import (
	"context"
	"sync"

	"github.com/bellasalong/booking-platform/internal/availability"
)

// DurationSource is the slice of the catalog the guard needs to size
// occupied intervals.
type DurationSource interface {
	DurationMap(ctx context.Context, serviceIDs []string) (map[string]int, error)
}

// Candidate is the appointment about to be written, after all defaulting.
type Candidate struct {
	WorkerID   string
	Date       string
	Time       string
	ServiceIDs []string
	Status     Status
	// ExcludeID is set on updates so the row does not conflict with itself.
	ExcludeID string
}

// Guard rejects writes that would double-book a worker.
//
// Check must run while holding the worker's lock from LockWorker so two
// in-flight bookings for the same worker cannot both pass the pre-check.
// The database exclusion constraint stays in place as a backstop for
// writes that bypass this process.
type Guard struct {
	repo      Repository
	durations DurationSource
	fallback  int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGuard creates a conflict guard over the given stores.
func NewGuard(repo Repository, durations DurationSource, fallbackDuration int) *Guard {
	return &Guard{
		repo:      repo,
		durations: durations,
		fallback:  fallbackDuration,
		locks:     make(map[string]*sync.Mutex),
	}
}

// LockWorker serializes check-then-write sequences for one worker. The
// returned function releases the lock.
func (g *Guard) LockWorker(workerID string) func() {
	g.mu.Lock()
	l, ok := g.locks[workerID]
	if !ok {
		l = &sync.Mutex{}
		g.locks[workerID] = l
	}
	g.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Check compares the candidate against every other non-cancelled
// appointment of the same worker and returns a ConflictError on overlap.
// On success it returns the candidate's occupied interval so the caller
// can persist it without recomputing durations.
//
// Cancelling never conflicts, and a candidate with missing required fields
// is skipped here since required-field validation is owned elsewhere.
// Appointments are compared by date key, not raw timestamps, so a booking
// near midnight lands on the same day it was offered on.
func (g *Guard) Check(ctx context.Context, cand *Candidate) (availability.Range, error) {
	if cand.Status == StatusCancelled {
		return availability.Range{}, nil
	}
	if cand.WorkerID == "" || cand.Date == "" || cand.Time == "" || len(cand.ServiceIDs) == 0 {
		return availability.Range{}, nil
	}

	existing, err := g.repo.ListActiveByWorker(ctx, cand.WorkerID, cand.ExcludeID)
	if err != nil {
		return availability.Range{}, err
	}

	union := availability.ServiceIDUnion(toBookings(existing), cand.ServiceIDs...)
	durations, err := g.durations.DurationMap(ctx, union)
	if err != nil {
		return availability.Range{}, err
	}

	candStart := availability.TimeToMinutes(cand.Time)
	candEnd := candStart + availability.TotalDuration(cand.ServiceIDs, durations, g.fallback)

	for _, appt := range existing {
		if appt.Date != cand.Date {
			continue
		}
		start := availability.TimeToMinutes(appt.Time)
		end := start + availability.TotalDuration(appt.ServiceIDs, durations, g.fallback)
		if candStart < end && candEnd > start {
			return availability.Range{}, &ConflictError{
				WorkerID: cand.WorkerID,
				Date:     cand.Date,
				Time:     cand.Time,
			}
		}
	}
	return availability.Range{Start: candStart, End: candEnd}, nil
}

func toBookings(appts []*Appointment) []availability.Booking {
	out := make([]availability.Booking, 0, len(appts))
	for _, a := range appts {
		out = append(out, availability.Booking{
			ID:         a.ID,
			Date:       a.Date,
			Time:       a.Time,
			ServiceIDs: a.ServiceIDs,
		})
	}
	return out
}
