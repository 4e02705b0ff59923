package customers

import "errors"

var (
	// ErrInvalidName is returned when the customer name is empty
	ErrInvalidName = errors.New("customer name is required")

	// ErrInvalidEmail is returned when the email is missing or malformed
	ErrInvalidEmail = errors.New("a valid email is required")

	// ErrCustomerNotFound is returned when a customer is not found
	ErrCustomerNotFound = errors.New("customer not found")
)
