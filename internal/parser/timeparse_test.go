package parser

import (
	"testing"
	"time"

	"github.com/cwarden/calmate/internal/calendar"
)

func newTestParser() *DateParser {
	parser := NewDateParser()
	// a Friday
	parser.SetNow(time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local))
	return parser
}

func TestParseRelativeDates(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input    string
		expected calendar.DateKey
	}{
		{"", "2024-03-15"},
		{"today", "2024-03-15"},
		{"Tomorrow", "2024-03-16"},
		{"tmrw", "2024-03-16"},
		{"yesterday", "2024-03-14"},
		{"next monday", "2024-03-18"},
		{"this friday", "2024-03-22"},
		{"next fri", "2024-03-22"},
		{"in 3 days", "2024-03-18"},
		{"in 1 month", "2024-04-15"},
		{"2 weeks from now", "2024-03-29"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Date mismatch: got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParseAbsoluteDates(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		input    string
		expected calendar.DateKey
	}{
		{"2024-03-10", "2024-03-10"},
		{"2024-3-9", "2024-03-09"},
		{"12/25/2024", "2024-12-25"},
		{"12-25-2024", "2024-12-25"},
		{"3/10", "2024-03-10"},
		{"march 10, 2025", "2025-03-10"},
		{"Dec 1", "2024-12-01"},
		{"2/29/2024", "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Date mismatch: got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	parser := newTestParser()

	inputs := []string{
		"garbage",
		"2/30/2024",
		"2/29/2023",
		"13/01/2024",
		"0/10",
		"tomorrow lunch",
		"2024-03-10 extra",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if got, err := parser.Parse(input); err == nil {
				t.Errorf("expected error, got %s", got)
			}
		})
	}
}
