package calendar

import "github.com/samber/mo"

// FindConflict returns the first event on date, other than exclude, whose
// interval overlaps [start, end). Intervals are half-open, so back-to-back
// events do not conflict.
func FindConflict(events []Event, date DateKey, start, end TimeOfDay, exclude mo.Option[int64]) mo.Option[Event] {
	excludedID, excluding := exclude.Get()
	for i := range events {
		e := &events[i]
		if e.Date != date {
			continue
		}
		if excluding && e.ID == excludedID {
			continue
		}
		if e.Overlaps(start, end) {
			return mo.Some(*e)
		}
	}
	return mo.None[Event]()
}

func HasConflict(events []Event, date DateKey, start, end TimeOfDay, exclude mo.Option[int64]) bool {
	return FindConflict(events, date, start, end, exclude).IsPresent()
}
