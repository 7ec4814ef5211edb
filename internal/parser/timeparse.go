package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cwarden/calmate/internal/calendar"
)

var (
	weekdayRe   = regexp.MustCompile(`^(next|this)\s+(mon|monday|tue|tuesday|wed|wednesday|thu|thursday|fri|friday|sat|saturday|sun|sunday)\b`)
	inRe        = regexp.MustCompile(`^in\s+(\d+)\s+(day|days|week|weeks|month|months)\b`)
	fromNowRe   = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months)\s+from\s+(now|today)`)
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
	dateRe      = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	shortDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})`)
	monthNameRe = regexp.MustCompile(`^(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|september|oct|october|nov|november|dec|december)\s+(\d{1,2})(?:,?\s+(\d{4}))?`)
)

type DateParser struct {
	now      time.Time
	location *time.Location
}

func NewDateParser() *DateParser {
	return &DateParser{
		now:      time.Now(),
		location: time.Local,
	}
}

func (p *DateParser) SetNow(now time.Time) {
	p.now = now
}

// Parse reads a whole date expression: "today", "tomorrow", "next friday",
// "in 3 days", "2024-03-10", "3/10/2024", "3/10", "march 10, 2024". An empty
// input means today.
func (p *DateParser) Parse(input string) (calendar.DateKey, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return calendar.KeyOf(p.today()), nil
	}

	date, rest, ok := p.parseRelativeDate(input)
	if !ok {
		date, rest, ok = p.parseAbsoluteDate(input)
	}
	if !ok {
		return "", fmt.Errorf("cannot parse date %q", input)
	}
	if rest != "" {
		return "", fmt.Errorf("unexpected text %q after date", rest)
	}
	return calendar.KeyOf(date), nil
}

func (p *DateParser) parseRelativeDate(input string) (time.Time, string, bool) {
	lower := strings.ToLower(input)

	if strings.HasPrefix(lower, "today") {
		return p.today(), strings.TrimSpace(input[5:]), true
	}

	if strings.HasPrefix(lower, "tomorrow") || strings.HasPrefix(lower, "tmrw") {
		prefixLen := 8
		if strings.HasPrefix(lower, "tmrw") {
			prefixLen = 4
		}
		return p.today().AddDate(0, 0, 1), strings.TrimSpace(input[prefixLen:]), true
	}

	if strings.HasPrefix(lower, "yesterday") {
		return p.today().AddDate(0, 0, -1), strings.TrimSpace(input[9:]), true
	}

	if matches := weekdayRe.FindStringSubmatch(lower); matches != nil {
		isNext := matches[1] == "next"
		weekday := p.parseWeekday(matches[2])
		date := p.findNextWeekday(weekday, isNext)
		return date, strings.TrimSpace(input[len(matches[0]):]), true
	}

	if matches := inRe.FindStringSubmatch(lower); matches != nil {
		n, _ := strconv.Atoi(matches[1])
		return p.addUnits(n, matches[2]), strings.TrimSpace(input[len(matches[0]):]), true
	}

	if matches := fromNowRe.FindStringSubmatch(lower); matches != nil {
		n, _ := strconv.Atoi(matches[1])
		return p.addUnits(n, matches[2]), strings.TrimSpace(input[len(matches[0]):]), true
	}

	return time.Time{}, input, false
}

func (p *DateParser) addUnits(n int, unit string) time.Time {
	date := p.today()
	switch {
	case strings.HasPrefix(unit, "day"):
		date = date.AddDate(0, 0, n)
	case strings.HasPrefix(unit, "week"):
		date = date.AddDate(0, 0, n*7)
	case strings.HasPrefix(unit, "month"):
		date = date.AddDate(0, n, 0)
	}
	return date
}

func (p *DateParser) parseAbsoluteDate(input string) (time.Time, string, bool) {
	// YYYY-MM-DD
	if matches := isoDateRe.FindStringSubmatch(input); matches != nil {
		year, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		day, _ := strconv.Atoi(matches[3])
		return p.date(year, month, day, input[len(matches[0]):])
	}

	// MM/DD/YYYY or MM-DD-YYYY
	if matches := dateRe.FindStringSubmatch(input); matches != nil {
		month, _ := strconv.Atoi(matches[1])
		day, _ := strconv.Atoi(matches[2])
		year, _ := strconv.Atoi(matches[3])
		return p.date(year, month, day, input[len(matches[0]):])
	}

	// MM/DD or MM-DD (current year)
	if matches := shortDateRe.FindStringSubmatch(input); matches != nil {
		month, _ := strconv.Atoi(matches[1])
		day, _ := strconv.Atoi(matches[2])
		return p.date(p.now.Year(), month, day, input[len(matches[0]):])
	}

	// Month DD, YYYY or Month DD
	if matches := monthNameRe.FindStringSubmatch(strings.ToLower(input)); matches != nil {
		month := p.parseMonth(matches[1])
		day, _ := strconv.Atoi(matches[2])
		year := p.now.Year()
		if matches[3] != "" {
			year, _ = strconv.Atoi(matches[3])
		}
		return p.date(year, int(month), day, input[len(matches[0]):])
	}

	return time.Time{}, input, false
}

// date rejects days that time.Date would silently roll over, like 2/30.
func (p *DateParser) date(year, month, day int, rest string) (time.Time, string, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, rest, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.location)
	if t.Day() != day {
		return time.Time{}, rest, false
	}
	return t, strings.TrimSpace(rest), true
}

// parseWeekday accepts a full English weekday name or its first three letters.
func (p *DateParser) parseWeekday(s string) time.Weekday {
	s = strings.ToLower(s)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if name := strings.ToLower(d.String()); s == name || s == name[:3] {
			return d
		}
	}
	return time.Sunday
}

// parseMonth accepts a full English month name or its first three letters.
func (p *DateParser) parseMonth(s string) time.Month {
	s = strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		if name := strings.ToLower(m.String()); s == name || s == name[:3] {
			return m
		}
	}
	return time.January
}

func (p *DateParser) findNextWeekday(target time.Weekday, skipThisWeek bool) time.Time {
	date := p.today()
	daysUntilTarget := int(target - date.Weekday())

	if daysUntilTarget <= 0 || skipThisWeek {
		daysUntilTarget += 7
	}

	return date.AddDate(0, 0, daysUntilTarget)
}

func (p *DateParser) today() time.Time {
	y, m, d := p.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.location)
}
