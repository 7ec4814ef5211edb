package calendar

import (
	"strconv"
	"strings"
)

// Form holds the editor fields as typed. Hours and minutes stay strings
// until Submit so that half-typed input never reaches the store.
type Form struct {
	Title       string
	Description string
	Color       string

	StartHours   string
	StartMinutes string
	StartPeriod  string

	EndHours   string
	EndMinutes string
	EndPeriod  string
}

// NewForm returns the blank editor: 12:00 AM to 12:00 PM in the default color.
func NewForm() Form {
	return Form{
		Color:        DefaultColor,
		StartHours:   "12",
		StartMinutes: "00",
		StartPeriod:  string(AM),
		EndHours:     "12",
		EndMinutes:   "00",
		EndPeriod:    string(PM),
	}
}

// FormFor pre-fills the editor from an existing event.
func FormFor(e Event) Form {
	return Form{
		Title:        e.Title,
		Description:  e.Description,
		Color:        e.Color,
		StartHours:   strconv.Itoa(e.Start.Hours),
		StartMinutes: padMinutes(e.Start.Minutes),
		StartPeriod:  string(e.Start.Period),
		EndHours:     strconv.Itoa(e.End.Hours),
		EndMinutes:   padMinutes(e.End.Minutes),
		EndPeriod:    string(e.End.Period),
	}
}

func padMinutes(m int) string {
	if m < 10 {
		return "0" + strconv.Itoa(m)
	}
	return strconv.Itoa(m)
}

// Event converts the form into an event on date. id is zero for a new event.
func (f Form) Event(date DateKey, id int64) (Event, error) {
	start, err := parseClockFields(f.StartHours, f.StartMinutes, f.StartPeriod)
	if err != nil {
		return Event{}, err
	}
	end, err := parseClockFields(f.EndHours, f.EndMinutes, f.EndPeriod)
	if err != nil {
		return Event{}, err
	}

	color := strings.TrimSpace(f.Color)
	if color == "" {
		color = DefaultColor
	}

	return Event{
		ID:          id,
		Date:        date,
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Color:       color,
		Start:       start,
		End:         end,
	}, nil
}

func parseClockFields(hours, minutes, period string) (TimeOfDay, error) {
	h, err := strconv.Atoi(strings.TrimSpace(hours))
	if err != nil {
		return TimeOfDay{}, validationError(MsgInvalidTimeOfDay)
	}
	m, err := strconv.Atoi(strings.TrimSpace(minutes))
	if err != nil {
		return TimeOfDay{}, validationError(MsgInvalidTimeOfDay)
	}
	p, err := ParsePeriod(period)
	if err != nil {
		return TimeOfDay{}, validationError(MsgInvalidTimeOfDay)
	}
	t := TimeOfDay{Hours: h, Minutes: m, Period: p}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// Submit saves the form for date. editingID is zero when adding. On any error
// the store is left untouched and the error carries the message to show inline.
func Submit(store *Store, f Form, date DateKey, editingID int64) (Event, error) {
	e, err := f.Event(date, editingID)
	if err != nil {
		return Event{}, err
	}
	if editingID != 0 {
		return store.Update(e)
	}
	return store.Add(e)
}
