package catalog

import "errors"

var (
	// ErrInvalidName is returned when the service name is empty
	ErrInvalidName = errors.New("service name is required")

	// ErrInvalidDuration is returned when the duration is not positive
	ErrInvalidDuration = errors.New("service duration must be positive")

	// ErrInvalidPrice is returned when the price is negative
	ErrInvalidPrice = errors.New("service price must not be negative")

	// ErrServiceNotFound is returned when a service is not found
	ErrServiceNotFound = errors.New("service not found")

	// ErrGroupNotFound is returned when a service group is not found
	ErrGroupNotFound = errors.New("service group not found")
)
