// Package ics writes events as an iCalendar (RFC 5545) stream.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/cwarden/calmate/internal/calendar"
)

const ProductID = "-//calmate//NONSGML v1.0//EN"

const (
	propColor  = "X-CALMATE-COLOR"
	propStatic = "X-CALMATE-STATIC"
)

// uidSpace scopes the name-based UIDs so that re-exporting the same event
// yields the same UID.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/cwarden/calmate"))

var ErrNoEvents = errors.New("no events to export")

// UID returns the stable iCalendar UID of an event.
func UID(e calendar.Event) string {
	return uuid.NewSHA1(uidSpace, []byte(strconv.FormatInt(e.ID, 10))).String()
}

// Encode writes events as one VCALENDAR. Event times are floating local
// times; stamp becomes DTSTAMP.
func Encode(w io.Writer, events []calendar.Event, stamp time.Time) error {
	if len(events) == 0 {
		return ErrNoEvents
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(ical.PropVersion, "2.0")

	for _, e := range events {
		ev, err := NewEvent(e, stamp)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, ev.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func NewEvent(e calendar.Event, stamp time.Time) (*ical.Event, error) {
	day, err := e.Date.Time()
	if err != nil {
		return nil, fmt.Errorf("event %d: %w", e.ID, err)
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, UID(e))
	event.Props.SetText(ical.PropSummary, e.Title)
	if e.Description != "" {
		event.Props.SetText(ical.PropDescription, e.Description)
	}
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, at(day, e.Start))
	event.Props.SetDateTime(ical.PropDateTimeEnd, at(day, e.End))
	if e.Color != "" {
		event.Props.SetText(propColor, e.Color)
	}
	if e.Static {
		event.Props.SetText(propStatic, "TRUE")
	}
	return event, nil
}

func at(day time.Time, t calendar.TimeOfDay) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, t.MinuteOfDay(), 0, 0, time.Local)
}
