package calendar

import (
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

// DateKey identifies a calendar day as YYYY-MM-DD. It joins events to grid cells.
type DateKey string

// KeyFor builds the key for year, month, day without normalizing overflow.
func KeyFor(year int, month time.Month, day int) DateKey {
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", year, int(month), day))
}

// KeyOf returns the key of t's calendar day in t's location.
func KeyOf(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// ParseDateKey validates s and returns it as a DateKey.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(dateKeyLayout, s)
	if err != nil {
		return "", validationError(MsgInvalidDateKeyFmt)
	}
	return KeyOf(t), nil
}

// Time returns local midnight of the day.
func (k DateKey) Time() (time.Time, error) {
	return time.ParseInLocation(dateKeyLayout, string(k), time.Local)
}

// Before compares days; YYYY-MM-DD keys sort lexically.
func (k DateKey) Before(other DateKey) bool {
	return k < other
}

func (k DateKey) String() string {
	return string(k)
}
