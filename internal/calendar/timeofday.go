package calendar

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Period string

const (
	AM Period = "AM"
	PM Period = "PM"
)

// ParsePeriod accepts "am"/"pm" in any case.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AM":
		return AM, nil
	case "PM":
		return PM, nil
	}
	return "", fmt.Errorf("invalid period %q", s)
}

// TimeOfDay is a 12-hour wall clock time.
type TimeOfDay struct {
	Hours   int    `json:"hours" yaml:"hours"`
	Minutes int    `json:"minutes" yaml:"minutes"`
	Period  Period `json:"period" yaml:"period"`
}

const minutesPerDay = 24 * 60

// Clock builds a TimeOfDay without validation.
func Clock(hours, minutes int, period Period) TimeOfDay {
	return TimeOfDay{Hours: hours, Minutes: minutes, Period: period}
}

func (t TimeOfDay) Validate() error {
	if t.Hours < 1 || t.Hours > 12 || t.Minutes < 0 || t.Minutes > 59 {
		return validationError(MsgInvalidTimeOfDay)
	}
	if t.Period != AM && t.Period != PM {
		return validationError(MsgInvalidTimeOfDay)
	}
	return nil
}

// MinuteOfDay converts t to minutes since midnight, 0..1439.
func (t TimeOfDay) MinuteOfDay() int {
	total := t.Hours*60 + t.Minutes
	if t.Period == PM && t.Hours != 12 {
		total += 12 * 60
	}
	if t.Period == AM && t.Hours == 12 {
		total -= 12 * 60
	}
	return total
}

// Before reports whether t is strictly earlier than u on the same day.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.MinuteOfDay() < u.MinuteOfDay()
}

// FromMinutes is the inverse of Minutes.
func FromMinutes(m int) (TimeOfDay, error) {
	if m < 0 || m >= minutesPerDay {
		return TimeOfDay{}, fmt.Errorf("minute of day %d out of range", m)
	}
	hour24, minute := m/60, m%60
	period := AM
	if hour24 >= 12 {
		period = PM
	}
	hours := hour24 % 12
	if hours == 0 {
		hours = 12
	}
	return TimeOfDay{Hours: hours, Minutes: minute, Period: period}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d %s", t.Hours, t.Minutes, t.Period)
}

// Format renders t with a Go time layout such as "3:04 PM" or "15:04". An
// empty layout falls back to String.
func (t TimeOfDay) Format(layout string) string {
	if layout == "" {
		return t.String()
	}
	return time.Date(2000, 1, 1, 0, t.MinuteOfDay(), 0, 0, time.UTC).Format(layout)
}

var (
	clockRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?$`)
	named   = map[string]int{
		"noon":     12 * 60,
		"midnight": 0,
	}
)

// ParseTimeOfDay accepts "9:30 AM", "9:30am", "2pm", "14:00", "noon" and "midnight".
// A time without a period is read on the 24-hour clock.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if m, ok := named[lower]; ok {
		return FromMinutes(m)
	}

	matches := clockRe.FindStringSubmatch(lower)
	if matches == nil {
		return TimeOfDay{}, fmt.Errorf("cannot parse time %q", s)
	}

	hour, _ := strconv.Atoi(matches[1])
	minute := 0
	if matches[2] != "" {
		minute, _ = strconv.Atoi(matches[2])
	}

	if matches[3] == "" {
		if hour > 23 || minute > 59 {
			return TimeOfDay{}, fmt.Errorf("cannot parse time %q", s)
		}
		return FromMinutes(hour*60 + minute)
	}

	period := AM
	if strings.HasPrefix(matches[3], "p") {
		period = PM
	}
	t := TimeOfDay{Hours: hour, Minutes: minute, Period: period}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, fmt.Errorf("cannot parse time %q: %w", s, err)
	}
	return t, nil
}

// rawTimeOfDay tolerates the seed format, where hours and minutes are
// strings ("12", "00") as often as numbers.
type rawTimeOfDay struct {
	Hours   flexInt `json:"hours" yaml:"hours"`
	Minutes flexInt `json:"minutes" yaml:"minutes"`
	Period  string  `json:"period" yaml:"period"`
}

func (r rawTimeOfDay) toTimeOfDay() (TimeOfDay, error) {
	p, err := ParsePeriod(r.Period)
	if err != nil {
		return TimeOfDay{}, err
	}
	return TimeOfDay{Hours: int(r.Hours), Minutes: int(r.Minutes), Period: p}, nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw rawTimeOfDay
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := raw.toTimeOfDay()
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *TimeOfDay) UnmarshalYAML(node *yaml.Node) error {
	var raw rawTimeOfDay
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := raw.toTimeOfDay()
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected number or numeric string: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("expected number or numeric string: %w", err)
	}
	*f = flexInt(n)
	return nil
}

func (f *flexInt) UnmarshalYAML(node *yaml.Node) error {
	n, err := strconv.Atoi(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: expected number: %w", node.Line, err)
	}
	*f = flexInt(n)
	return nil
}
