package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/calmate/internal/calendar"
)

func (m *Model) viewHelp() string {
	help := []string{
		m.styles.Header.Render("calmate Help"),
		"",
		m.styles.Normal.Render("Month view:"),
		m.styles.Help.Render("  h/l/←/→   - Previous/next day"),
		m.styles.Help.Render("  k/j/↑/↓   - Previous/next week"),
		m.styles.Help.Render("  </>       - Previous/next month"),
		m.styles.Help.Render("  t         - Today"),
		m.styles.Help.Render("  g         - Go to date"),
		m.styles.Help.Render("  enter/v   - Open day"),
		"",
		m.styles.Normal.Render("Day view:"),
		m.styles.Help.Render("  j/k       - Select event"),
		m.styles.Help.Render("  </>       - Previous/next day"),
		m.styles.Help.Render("  e         - Edit event"),
		m.styles.Help.Render("  d         - Delete event"),
		m.styles.Help.Render("  esc       - Back to month"),
		"",
		m.styles.Normal.Render("Anywhere:"),
		m.styles.Help.Render("  n         - New event on selected day"),
		m.styles.Help.Render("  ?         - Toggle help"),
		m.styles.Help.Render("  q         - Quit"),
		"",
		m.styles.Help.Render("Press any key to return..."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

func (m *Model) handleGotoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = m.prevMode
		return m, nil

	case tea.KeyEnter:
		m.mode = m.prevMode
		m.parser.SetNow(m.todayTime())
		date, err := m.parser.Parse(m.gotoInput)
		if err != nil {
			return m, m.showMessage(fmt.Sprintf("Invalid date: %v", err))
		}
		t, err := date.Time()
		if err != nil {
			return m, m.showMessage(fmt.Sprintf("Invalid date: %v", err))
		}
		m.jumpTo(t)
		return m, nil

	case tea.KeyBackspace:
		if r := []rune(m.gotoInput); len(r) > 0 {
			m.gotoInput = string(r[:len(r)-1])
		}

	case tea.KeyRunes, tea.KeySpace:
		m.gotoInput += string(msg.Runes)
	}

	return m, nil
}

func (m *Model) viewGoto() string {
	sections := []string{
		m.styles.Header.Render("Go to Date"),
		"",
		m.styles.Normal.Render("Enter a date (e.g. '2024-03-10', '3/10', 'next friday'):"),
		m.styles.Input.Render(m.gotoInput + "█"),
		"",
		m.styles.Help.Render("Enter to jump, Esc to cancel"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderStatusBar() string {
	count := len(m.store.QueryByDate(calendar.KeyOf(m.selected)))
	left := fmt.Sprintf(" %s | %s", m.selected.Format(m.config.DateFormat), pluralize(count, "event"))

	right := "? for help | q to quit"
	if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left+middle) + right
}
