package appointments

import (
	"context"

	"github.com/bellasalong/booking-platform/internal/availability"
)

// BookingSource adapts the appointment repository to the availability
// package's read-only view of a worker's schedule.
type BookingSource struct {
	Repo Repository
}

// ActiveBookings returns all non-cancelled bookings for a worker.
func (s BookingSource) ActiveBookings(ctx context.Context, workerID string) ([]availability.Booking, error) {
	appts, err := s.Repo.ListActiveByWorker(ctx, workerID, "")
	if err != nil {
		return nil, err
	}
	return toBookings(appts), nil
}
