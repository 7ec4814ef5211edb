package calendar

import (
	"time"

	"github.com/goodsign/monday"
)

// Cursor is the month shown by the calendar, anchored to day 1.
type Cursor struct {
	Year  int
	Month time.Month
}

// CursorFor returns the month containing t.
func CursorFor(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// Next moves one month forward. Anchoring on day 1 keeps Jan 31 from skipping February.
func (c Cursor) Next() Cursor {
	return c.add(1)
}

func (c Cursor) Previous() Cursor {
	return c.add(-1)
}

func (c Cursor) add(months int) Cursor {
	return CursorFor(c.First().AddDate(0, months, 0))
}

// First is local midnight of the 1st.
func (c Cursor) First() time.Time {
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.Local)
}

// Days generates the grid cells for the month.
func (c Cursor) Days() []DayCell {
	return Generate(c.Year, c.Month)
}

// Contains reports whether date falls in the cursor's month.
func (c Cursor) Contains(date DateKey) bool {
	t, err := date.Time()
	if err != nil {
		return false
	}
	return t.Year() == c.Year && t.Month() == c.Month
}

// Title renders the month heading, e.g. "March 2024", in the given locale
// ("en_US", "de_DE", ...). Unknown locales fall back to English.
func (c Cursor) Title(locale string) string {
	loc := monday.Locale(locale)
	if !isSupportedLocale(loc) {
		loc = monday.LocaleEnUS
	}
	return monday.Format(c.First(), "January 2006", loc)
}

func isSupportedLocale(loc monday.Locale) bool {
	for _, l := range monday.ListLocales() {
		if l == loc {
			return true
		}
	}
	return false
}
