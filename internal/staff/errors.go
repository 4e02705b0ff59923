package staff

import "errors"

var (
	// ErrInvalidName is returned when the worker name is empty
	ErrInvalidName = errors.New("worker name is required")

	// ErrInvalidDayOfWeek is returned for an unknown weekday name
	ErrInvalidDayOfWeek = errors.New("invalid day of week")

	// ErrDuplicateDayOfWeek is returned when a weekday appears twice
	ErrDuplicateDayOfWeek = errors.New("duplicate day of week in working hours")

	// ErrInvalidTimeRange is returned when start/end are malformed or inverted
	ErrInvalidTimeRange = errors.New("invalid working hours time range")

	// ErrWorkerNotFound is returned when a worker is not found
	ErrWorkerNotFound = errors.New("worker not found")
)
