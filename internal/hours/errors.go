package hours

import "errors"

var (
	// ErrInvalidDayOfWeek is returned for an unknown weekday name
	ErrInvalidDayOfWeek = errors.New("invalid day of week")

	// ErrInvalidDate is returned for a malformed date key
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidTimeRange is returned when start/end are malformed or inverted
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrOverlappingRanges is returned when override blocks overlap
	ErrOverlappingRanges = errors.New("override time ranges must not overlap")

	// ErrOverrideNotFound is returned when an override is not found
	ErrOverrideNotFound = errors.New("schedule override not found")
)
