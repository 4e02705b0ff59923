package availability

// DaySlots walks each effective range on a 15-minute (or configured) grid
// and emits every start time whose full service interval fits inside the
// range, starts no earlier than minStart, and does not overlap an existing
// booking. An exact fit where start+duration equals the range end is
// bookable. Slots come out in ascending order per range, ranges in the
// order given.
func DaySlots(effective []Range, booked []Range, duration, interval, minStart int) []string {
	if duration <= 0 || interval <= 0 {
		return []string{}
	}
	out := []string{}
	for _, r := range effective {
		for cand := r.Start; cand+duration <= r.End; cand += interval {
			if cand < minStart {
				continue
			}
			if conflictsAny(cand, cand+duration, booked) {
				continue
			}
			out = append(out, MinutesToTime(cand))
		}
	}
	return out
}

// MinStart returns the earliest bookable minute for a date. Same-day
// requests are pushed leadMinutes past the current time; any other date,
// or an unknown current time, has no restriction.
func MinStart(date, today, currentTime string, leadMinutes int) int {
	if currentTime == "" || date != today {
		return 0
	}
	return TimeToMinutes(currentTime) + leadMinutes
}

func conflictsAny(start, end int, booked []Range) bool {
	for _, b := range booked {
		if overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}
