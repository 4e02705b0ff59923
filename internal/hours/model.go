package hours

import (
	"sort"
	"time"

	"github.com/bellasalong/booking-platform/internal/clock"
)

// BusinessHoursEntry is the salon-wide default opening window for one weekday.
type BusinessHoursEntry struct {
	DayOfWeek string `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

// Validate checks the weekday name and, for open days, the HH:MM window.
func (e *BusinessHoursEntry) Validate() error {
	if !clock.IsWeekday(e.DayOfWeek) {
		return ErrInvalidDayOfWeek
	}
	if e.IsClosed {
		return nil
	}
	return validateWindow(e.OpenTime, e.CloseTime)
}

// TimeRange is one open block inside a schedule override.
type TimeRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ScheduleOverride replaces the weekly business hours for one date.
// When present it supersedes the BusinessHoursEntry entirely. Open blocks
// come from TimeRanges when set, else from the single OpenTime/CloseTime
// pair; an open override with neither is treated as closed downstream.
type ScheduleOverride struct {
	ID         string      `json:"id"`
	Date       string      `json:"date"`
	IsClosed   bool        `json:"is_closed"`
	TimeRanges []TimeRange `json:"time_ranges,omitempty"`
	OpenTime   string      `json:"open_time,omitempty"`
	CloseTime  string      `json:"close_time,omitempty"`
	Reason     string      `json:"reason,omitempty"`
}

// CreateOverrideRequest is the admin request body for creating an override.
type CreateOverrideRequest struct {
	Date       string      `json:"date"`
	IsClosed   bool        `json:"is_closed"`
	TimeRanges []TimeRange `json:"time_ranges"`
	OpenTime   string      `json:"open_time"`
	CloseTime  string      `json:"close_time"`
	Reason     string      `json:"reason"`
}

// Validate checks the date key and that open blocks are well-formed and
// non-overlapping.
func (r *CreateOverrideRequest) Validate() error {
	if _, err := clock.ParseDateKey(r.Date); err != nil {
		return ErrInvalidDate
	}
	if r.IsClosed {
		return nil
	}
	if len(r.TimeRanges) > 0 {
		return validateRanges(r.TimeRanges)
	}
	if r.OpenTime != "" || r.CloseTime != "" {
		return validateWindow(r.OpenTime, r.CloseTime)
	}
	// Open override with no hours at all. Allowed, but downstream treats
	// the date as closed.
	return nil
}

func validateWindow(start, end string) error {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return ErrInvalidTimeRange
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return ErrInvalidTimeRange
	}
	if !s.Before(e) {
		return ErrInvalidTimeRange
	}
	return nil
}

func validateRanges(ranges []TimeRange) error {
	for _, tr := range ranges {
		if err := validateWindow(tr.StartTime, tr.EndTime); err != nil {
			return err
		}
	}
	sorted := append([]TimeRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime < sorted[j].StartTime })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartTime < sorted[i-1].EndTime {
			return ErrOverlappingRanges
		}
	}
	return nil
}
