package calendar

import (
	"regexp"
	"strings"
)

const DefaultColor = "#ff4d4d"

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidColor reports whether c is a #RRGGBB hex color.
func ValidColor(c string) bool {
	return hexColorRe.MatchString(c)
}

type Event struct {
	ID          int64     `json:"id" yaml:"id"` // zero until the store assigns one
	Date        DateKey   `json:"date" yaml:"date"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string    `json:"color" yaml:"color"`
	Start       TimeOfDay `json:"startTime" yaml:"startTime"`
	End         TimeOfDay `json:"endTime" yaml:"endTime"`
	Static      bool      `json:"isStatic,omitempty" yaml:"isStatic,omitempty"`
}

// Validate checks the fields of a single event. Overlap with other events is
// the store's concern.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return validationError(MsgTitleRequired)
	}
	if _, err := ParseDateKey(string(e.Date)); err != nil {
		return err
	}
	if e.Color != "" && !ValidColor(e.Color) {
		return validationError(MsgInvalidColor)
	}
	if err := e.Start.Validate(); err != nil {
		return err
	}
	if err := e.End.Validate(); err != nil {
		return err
	}
	if !e.Start.Before(e.End) {
		return validationError(MsgEndBeforeStart)
	}
	return nil
}

// Overlaps reports whether e and [start, end) share any minute.
func (e *Event) Overlaps(start, end TimeOfDay) bool {
	return e.Start.MinuteOfDay() < end.MinuteOfDay() && e.End.MinuteOfDay() > start.MinuteOfDay()
}

// TimeRange renders "9:00 AM - 10:00 AM".
func (e *Event) TimeRange() string {
	return e.Start.String() + " - " + e.End.String()
}
