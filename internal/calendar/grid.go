package calendar

import "time"

// DayCell is one square of the month grid. The zero value is an empty lead-in cell.
type DayCell struct {
	Day     int
	DateKey DateKey
}

func (c DayCell) IsEmpty() bool {
	return c.Day == 0
}

// Generate lays out a month for a Sunday-first grid: one empty cell per weekday
// before the 1st, then every day of the month. Trailing cells are not padded.
func Generate(year int, month time.Month) []DayCell {
	firstWeekday := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	// day 0 of next month is the last day of this one
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]DayCell, 0, firstWeekday+daysInMonth)
	for i := 0; i < firstWeekday; i++ {
		cells = append(cells, DayCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, DayCell{Day: day, DateKey: KeyFor(year, month, day)})
	}
	return cells
}

// Weeks splits cells into rows of seven, padding the last row with empty cells.
func Weeks(cells []DayCell) [][]DayCell {
	var weeks [][]DayCell
	for start := 0; start < len(cells); start += 7 {
		row := make([]DayCell, 7)
		copy(row, cells[start:min(start+7, len(cells))])
		weeks = append(weeks, row)
	}
	return weeks
}
