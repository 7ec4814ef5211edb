package calendar

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
)

func event(id int64, date DateKey, start, end TimeOfDay) Event {
	return Event{ID: id, Date: date, Title: "event", Color: DefaultColor, Start: start, End: end}
}

func TestHasConflict(t *testing.T) {
	const day DateKey = "2024-03-10"
	existing := []Event{
		event(1, day, Clock(10, 0, AM), Clock(11, 0, AM)),
		event(2, "2024-03-11", Clock(1, 0, PM), Clock(2, 0, PM)),
	}

	tests := []struct {
		name  string
		date  DateKey
		start TimeOfDay
		end   TimeOfDay
		want  bool
	}{
		{"contained", day, Clock(10, 30, AM), Clock(10, 45, AM), true},
		{"containing", day, Clock(9, 0, AM), Clock(12, 0, PM), true},
		{"identical", day, Clock(10, 0, AM), Clock(11, 0, AM), true},
		{"overlaps start", day, Clock(9, 30, AM), Clock(10, 1, AM), true},
		{"overlaps end", day, Clock(10, 59, AM), Clock(11, 30, AM), true},
		{"adjacent before", day, Clock(9, 0, AM), Clock(10, 0, AM), false},
		{"adjacent after", day, Clock(11, 0, AM), Clock(12, 0, PM), false},
		{"other day same time", "2024-03-12", Clock(10, 0, AM), Clock(11, 0, AM), false},
		{"pm on other event's day", "2024-03-11", Clock(1, 30, PM), Clock(1, 45, PM), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasConflict(existing, tt.date, tt.start, tt.end, mo.None[int64]())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasConflictIsSymmetricUnderContainment(t *testing.T) {
	const day DateKey = "2024-03-10"
	outer := event(1, day, Clock(10, 0, AM), Clock(11, 0, AM))
	inner := event(2, day, Clock(10, 30, AM), Clock(10, 45, AM))

	assert.True(t, HasConflict([]Event{outer}, day, inner.Start, inner.End, mo.None[int64]()))
	assert.True(t, HasConflict([]Event{inner}, day, outer.Start, outer.End, mo.None[int64]()))
}

func TestFindConflictExcludesEditedEvent(t *testing.T) {
	const day DateKey = "2024-03-10"
	existing := []Event{
		event(1, day, Clock(9, 0, AM), Clock(10, 0, AM)),
		event(2, day, Clock(10, 0, AM), Clock(11, 0, AM)),
	}

	// shrinking event 1 only overlaps itself
	assert.False(t, HasConflict(existing, day, Clock(9, 15, AM), Clock(9, 45, AM), mo.Some[int64](1)))

	// stretching event 1 into event 2 still conflicts
	got, found := FindConflict(existing, day, Clock(9, 0, AM), Clock(10, 30, AM), mo.Some[int64](1)).Get()
	assert.True(t, found)
	assert.Equal(t, int64(2), got.ID)
}

func TestFindConflictReturnsFirstInOrder(t *testing.T) {
	const day DateKey = "2024-03-10"
	existing := []Event{
		event(7, day, Clock(1, 0, PM), Clock(3, 0, PM)),
		event(3, day, Clock(12, 0, PM), Clock(2, 0, PM)),
	}
	got, found := FindConflict(existing, day, Clock(1, 30, PM), Clock(1, 45, PM), mo.None[int64]()).Get()
	assert.True(t, found)
	assert.Equal(t, int64(7), got.ID)
}
