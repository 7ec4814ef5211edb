package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/cwarden/calmate/internal/calendar"
)

func (m *Model) handleDayKeys(msg tea.KeyMsg, action string) (tea.Model, tea.Cmd) {
	events := m.store.QueryByDate(calendar.KeyOf(m.selected))

	if msg.String() == "esc" {
		m.mode = ViewMonth
		return m, nil
	}

	switch action {
	case "next_week", "next_day":
		if m.dayIndex < len(events)-1 {
			m.dayIndex++
		}

	case "prev_week", "prev_day":
		if m.dayIndex > 0 {
			m.dayIndex--
		}

	case "next_month", "prev_month":
		// month keys step through days here
		step := 1
		if action == "prev_month" {
			step = -1
		}
		m.moveSelection(step)

	case "edit_event":
		if len(events) == 0 {
			return m, m.showMessage("No event selected")
		}
		e := events[m.dayIndex]
		m.openEditor(e.Date, &e)

	case "delete_event":
		if len(events) == 0 {
			return m, m.showMessage("No event selected")
		}
		e := events[m.dayIndex]
		if m.config.ConfirmDelete {
			m.pendingDelete = e.ID
			m.message = fmt.Sprintf("Delete %q? (y/n)", e.Title)
			// Outdated timeouts must not clear the prompt.
			m.messageSeq++
			return m, nil
		}
		return m, m.deleteEvent(e.ID)
	}

	return m, nil
}

func (m *Model) clampDayIndex() {
	n := len(m.store.QueryByDate(calendar.KeyOf(m.selected)))
	if m.dayIndex >= n {
		m.dayIndex = max(0, n-1)
	}
}

func (m *Model) viewDay() string {
	date := calendar.KeyOf(m.selected)
	events := m.store.QueryByDate(date)

	var sections []string
	sections = append(sections, m.styles.Header.Render(m.selected.Format(m.config.DateFormat)))
	if m.store.IsPast(date) {
		sections = append(sections, m.styles.Past.Render("(past date: events cannot be changed)"))
	}
	sections = append(sections, "")

	if len(events) == 0 {
		sections = append(sections, m.styles.Help.Render("No events. Press n to add one."))
	}

	wrapWidth := max(20, m.width-8)
	for i, e := range events {
		marker := "  "
		if i == m.dayIndex {
			marker = "> "
		}

		span := fmt.Sprintf("%s - %s", e.Start.Format(m.config.TimeFormat), e.End.Format(m.config.TimeFormat))
		line := marker + span + "  " + eventStyle(e).Render(e.Title)
		if m.store.IsStatic(e) {
			line += m.styles.Help.Render(" [static]")
		}
		if i == m.dayIndex {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		sections = append(sections, line)

		if desc := strings.TrimSpace(e.Description); desc != "" {
			wrapped := wordwrap.String(desc, wrapWidth)
			sections = append(sections, m.styles.Normal.Render(indent.String(wrapped, 6)))
		}
	}

	sections = append(sections, "", m.styles.Help.Render("n new  e edit  d delete  esc back"))
	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
