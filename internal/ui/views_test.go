package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwarden/calmate/internal/calendar"
)

func TestViewBeforeWindowSize(t *testing.T) {
	env := newTestEnv(t)
	env.model.width = 0
	if got := env.model.View(); got != "Loading..." {
		t.Errorf("View() = %q", got)
	}
}

func TestMonthViewShowsEvents(t *testing.T) {
	env := newTestEnv(t)
	env.addEvent(t, "2024-03-10", "Breakfast", calendar.Clock(8, 0, calendar.AM), calendar.Clock(9, 0, calendar.AM))
	env.addEvent(t, "2024-03-10", "Meeting", calendar.Clock(10, 0, calendar.AM), calendar.Clock(11, 0, calendar.AM))
	env.addEvent(t, "2024-03-10", "Gym", calendar.Clock(6, 0, calendar.PM), calendar.Clock(7, 0, calendar.PM))

	view := env.model.View()

	for _, want := range []string{"March 2024", "Sun", "Sat", "Breakfast", "Meeting", "+1 more", "31"} {
		if !strings.Contains(view, want) {
			t.Errorf("month view missing %q", want)
		}
	}
	if strings.Contains(view, "Gym") {
		t.Error("third event should be folded into +1 more")
	}

	env.cfg.MaxCellEvents = 3
	view = env.model.View()
	if !strings.Contains(view, "Gym") || strings.Contains(view, "more") {
		t.Error("raising max_cell_events should show all three")
	}
}

func TestMonthViewLocale(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Locale = "de_DE"
	if view := env.model.View(); !strings.Contains(view, "März 2024") {
		t.Errorf("expected German month title")
	}
}

func TestMonthViewLeadingBlanks(t *testing.T) {
	env := newTestEnv(t)
	view := env.model.View()

	// March 2024 starts on a Friday: the first row holds only 1 and 2
	lines := strings.Split(view, "\n")
	var first string
	for _, line := range lines {
		if strings.Contains(line, " 1 ") || strings.HasSuffix(strings.TrimRight(line, " "), " 1") {
			first = line
			break
		}
	}
	if first == "" {
		t.Fatal("no row with day 1")
	}
	if strings.Index(first, " 1") < 5*minCellWidth {
		t.Errorf("day 1 not in the Friday column: %q", first)
	}
}

func TestDayViewListsEvents(t *testing.T) {
	env := newTestEnv(t)
	env.store.LoadSeed([]calendar.Event{{
		ID:          1,
		Date:        "2024-03-10",
		Title:       "Team sync",
		Description: "Quarterly planning with the whole team, bring the roadmap and the budget numbers for review",
		Color:       "#3366ff",
		Start:       calendar.Clock(10, 0, calendar.AM),
		End:         calendar.Clock(11, 0, calendar.AM),
	}})
	env.addEvent(t, "2024-03-10", "Lunch", calendar.Clock(12, 0, calendar.PM), calendar.Clock(1, 0, calendar.PM))
	env.selectDay(t, "2024-03-10")
	env.model.Update(tea.WindowSizeMsg{Width: 50, Height: 30})

	env.press("v")
	view := env.model.View()

	for _, want := range []string{"Sunday, Mar 10, 2024", "10:00 AM - 11:00 AM", "Team sync", "[static]", "12:00 PM - 1:00 PM", "Lunch", "roadmap"} {
		if !strings.Contains(view, want) {
			t.Errorf("day view missing %q", want)
		}
	}

	// the sync comes first: insertion order
	if strings.Index(view, "Team sync") > strings.Index(view, "Lunch") {
		t.Error("events not in insertion order")
	}

	for _, line := range strings.Split(view, "\n") {
		line = strings.TrimRight(line, " ")
		if strings.Contains(line, "roadmap") && len(line) > 50 {
			t.Errorf("description not wrapped: %q", line)
		}
	}
}

func TestDayViewTimeFormat(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.TimeFormat = "15:04"
	env.addEvent(t, "2024-03-10", "Late", calendar.Clock(11, 0, calendar.PM), calendar.Clock(11, 30, calendar.PM))
	env.selectDay(t, "2024-03-10")
	env.press("v")

	if view := env.model.View(); !strings.Contains(view, "23:00 - 23:30") {
		t.Errorf("24h time format not applied")
	}
}

func TestDayViewPastAndEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.selectDay(t, "2024-03-01")
	env.press("v")

	view := env.model.View()
	if !strings.Contains(view, "past date") {
		t.Error("past marker missing")
	}
	if !strings.Contains(view, "No events") {
		t.Error("empty state missing")
	}

	cmd := env.press("e")
	if cmd == nil || env.model.message != "No event selected" {
		t.Errorf("message = %q", env.model.message)
	}
}

func TestStatusBar(t *testing.T) {
	env := newTestEnv(t)
	env.addEvent(t, "2024-03-05", "One", calendar.Clock(8, 0, calendar.AM), calendar.Clock(9, 0, calendar.AM))

	bar := env.model.renderStatusBar()
	if !strings.Contains(bar, "Tuesday, Mar 5, 2024") || !strings.Contains(bar, "1 event") {
		t.Errorf("status bar = %q", bar)
	}
	if !strings.Contains(bar, "? for help") {
		t.Errorf("hint missing: %q", bar)
	}

	env.model.showMessage("Saved")
	if bar := env.model.renderStatusBar(); !strings.Contains(bar, "Saved") {
		t.Errorf("message missing: %q", bar)
	}
}

func TestGotoView(t *testing.T) {
	env := newTestEnv(t)
	env.press("g")
	env.typeText("3/1")
	if view := env.model.View(); !strings.Contains(view, "Go to Date") || !strings.Contains(view, "3/1") {
		t.Errorf("goto view = %q", view)
	}

	env.press("backspace", "esc")
	if env.model.mode != ViewMonth {
		t.Errorf("esc did not close goto")
	}
	if env.model.gotoInput != "3/" {
		t.Errorf("gotoInput = %q", env.model.gotoInput)
	}
}
