package availability

import (
	"github.com/bellasalong/booking-platform/internal/clock"
	"github.com/bellasalong/booking-platform/internal/hours"
	"github.com/bellasalong/booking-platform/internal/staff"
)

// Range is a half-open interval in minutes since midnight.
type Range struct {
	Start int
	End   int
}

// EffectiveRanges derives the open intervals during which a worker can be
// booked on a date. An override for the exact date always replaces the
// weekly business hours; there is no merging of the two. Each open block is
// then intersected with the worker's working window for that weekday.
//
// An empty result means the worker cannot be booked that day, whether
// because the salon is closed, the worker is off, or the windows do not
// intersect.
func EffectiveRanges(dateKey string, worker *staff.Worker, business *hours.BusinessHoursEntry, override *hours.ScheduleOverride) ([]Range, error) {
	dayOfWeek, err := clock.DayOfWeek(dateKey)
	if err != nil {
		return nil, err
	}

	base := baseOpenRanges(business, override)
	if len(base) == 0 {
		return nil, nil
	}

	workerHours, ok := worker.HoursFor(dayOfWeek)
	if !ok {
		return nil, nil
	}

	out := make([]Range, 0, len(base))
	for _, block := range base {
		start := TimeToMinutes(MaxTime(block.StartTime, workerHours.StartTime))
		end := TimeToMinutes(MinTime(block.EndTime, workerHours.EndTime))
		if start >= end {
			continue
		}
		out = append(out, Range{Start: start, End: end})
	}
	return out, nil
}

// baseOpenRanges resolves the salon's open blocks for the date before the
// worker intersection. An open override carrying neither time ranges nor an
// open/close pair is a configuration gap and treated as closed.
func baseOpenRanges(business *hours.BusinessHoursEntry, override *hours.ScheduleOverride) []hours.TimeRange {
	if override != nil {
		if override.IsClosed {
			return nil
		}
		if len(override.TimeRanges) > 0 {
			return override.TimeRanges
		}
		if override.OpenTime != "" && override.CloseTime != "" {
			return []hours.TimeRange{{StartTime: override.OpenTime, EndTime: override.CloseTime}}
		}
		return nil
	}
	if business == nil || business.IsClosed {
		return nil
	}
	return []hours.TimeRange{{StartTime: business.OpenTime, EndTime: business.CloseTime}}
}
