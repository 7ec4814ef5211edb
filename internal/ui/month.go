package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/calmate/internal/calendar"
)

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

const minCellWidth = 8

func (m *Model) handleMonthKeys(action string) (tea.Model, tea.Cmd) {
	switch action {
	case "next_day":
		m.moveSelection(1)
	case "prev_day":
		m.moveSelection(-1)
	case "next_week":
		m.moveSelection(7)
	case "prev_week":
		m.moveSelection(-7)
	case "next_month":
		m.changeMonth(m.cursor.Next())
	case "prev_month":
		m.changeMonth(m.cursor.Previous())
	case "view_day":
		m.mode = ViewDay
		m.dayIndex = 0
	}
	return m, nil
}

// moveSelection shifts the selected day; the visible month follows it.
func (m *Model) moveSelection(days int) {
	m.selected = m.selected.AddDate(0, 0, days)
	if !m.cursor.Contains(calendar.KeyOf(m.selected)) {
		m.cursor = calendar.CursorFor(m.selected)
	}
	m.dayIndex = 0
}

// changeMonth shows c and keeps the selected day of month, clamped to the
// length of the new month.
func (m *Model) changeMonth(c calendar.Cursor) {
	day := m.selected.Day()
	if last := len(daysOnly(c.Days())); day > last {
		day = last
	}
	m.cursor = c
	m.selected = time.Date(c.Year, c.Month, day, 0, 0, 0, 0, time.Local)
	m.dayIndex = 0
}

func (m *Model) viewMonth() string {
	cellWidth := max(minCellWidth, (m.width-2)/7)

	var sections []string
	title := m.cursor.Title(m.config.Locale)
	sections = append(sections, lipgloss.PlaceHorizontal(cellWidth*7, lipgloss.Center, m.styles.Header.Render(title)))

	header := make([]string, len(weekdayNames))
	for i, name := range weekdayNames {
		style := m.styles.Normal
		if i == 0 || i == 6 {
			style = m.styles.Weekend
		}
		header[i] = style.Width(cellWidth).Render(" " + name)
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, week := range calendar.Weeks(m.cursor.Days()) {
		cells := make([]string, len(week))
		for i, cell := range week {
			cells[i] = m.renderCell(cell, cellWidth)
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	sections = append(sections, "", m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCell draws one day: the day number, up to max_cell_events titles in
// their event color and a "+N more" line for the rest.
func (m *Model) renderCell(cell calendar.DayCell, width int) string {
	limit := m.config.MaxCellEvents
	lines := make([]string, 0, limit+2)

	if cell.IsEmpty() {
		for len(lines) < limit+2 {
			lines = append(lines, "")
		}
		return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
	}

	dayStyle := m.styles.Normal
	switch {
	case cell.DateKey == calendar.KeyOf(m.selected):
		dayStyle = m.styles.Selected
	case cell.DateKey == m.today:
		dayStyle = m.styles.Today
	case m.store.IsPast(cell.DateKey):
		dayStyle = m.styles.Past
	}
	lines = append(lines, dayStyle.Render(fmt.Sprintf("%2d", cell.Day)))

	events := m.store.QueryByDate(cell.DateKey)
	for i, e := range events {
		if i == limit {
			break
		}
		lines = append(lines, eventStyle(e).Render(truncateText(e.Title, width-1)))
	}
	if hidden := len(events) - limit; hidden > 0 {
		lines = append(lines, m.styles.Help.Render(fmt.Sprintf("+%d more", hidden)))
	}

	for len(lines) < limit+2 {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func daysOnly(cells []calendar.DayCell) []calendar.DayCell {
	out := make([]calendar.DayCell, 0, len(cells))
	for _, c := range cells {
		if !c.IsEmpty() {
			out = append(out, c)
		}
	}
	return out
}
