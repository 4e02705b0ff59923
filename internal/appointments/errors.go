package appointments

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCustomer is returned when the customer name or email is missing
	ErrMissingCustomer = errors.New("customer name and a valid email are required")

	// ErrMissingWorker is returned when no worker is selected
	ErrMissingWorker = errors.New("worker is required")

	// ErrMissingServices is returned when no services are selected
	ErrMissingServices = errors.New("at least one service is required")

	// ErrInvalidDate is returned for a malformed date key
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidTime is returned for a malformed HH:MM time
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")

	// ErrInvalidServiceRef is returned when a service reference has no id
	ErrInvalidServiceRef = errors.New("service reference must be an id or an object with an id")

	// ErrPastDate is returned when booking a date or time already behind us
	ErrPastDate = errors.New("appointment time is in the past")

	// ErrWorkerServiceMismatch is returned when the worker does not offer
	// every requested service
	ErrWorkerServiceMismatch = errors.New("worker does not offer all requested services")

	// ErrAppointmentNotFound is returned when an appointment is not found
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidToken is returned when a cancellation token matches nothing
	ErrInvalidToken = errors.New("invalid cancellation token")

	// ErrAlreadyCancelled is returned when cancelling twice
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")

	// ErrAppointmentPassed is returned when cancelling after the visit
	ErrAppointmentPassed = errors.New("appointment has already passed")
)

// ConflictError reports a double-booking attempt. It aborts the write and
// is surfaced verbatim as a user-facing validation failure.
type ConflictError struct {
	WorkerID string
	Date     string
	Time     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("the selected worker already has an appointment overlapping %s on %s", e.Time, e.Date)
}
